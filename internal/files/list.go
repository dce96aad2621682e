package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pagetui/internal/errors"
	"pagetui/internal/log"
	"pagetui/pkg/types"
)

// ListOptions controls which entries a listing keeps.
type ListOptions struct {
	ShowHidden bool
	DirsOnly   bool
	Filter     Filter
}

// List reads dir and returns its entries: a ".." parent entry first
// (except at the filesystem root), then directories, then files, each
// group sorted by name. Filters apply to files only.
func List(dir string, opts ListOptions) ([]types.FileEntry, error) {
	logger := log.LogWithFields(log.F("directory", dir))

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileError("failed to read directory", dir, errors.FileNotFound, err)
		}
		return nil, errors.NewFileError("failed to read directory", dir, errors.FileAccessDenied, err)
	}

	var dirs, regular []types.FileEntry
	for _, de := range dirEntries {
		path := filepath.Join(dir, de.Name())
		info, err := de.Info()
		if err != nil {
			logger.With(log.F("file", de.Name()), log.F("error", err)).Debug("Skipping unreadable entry")
			continue
		}
		entry := types.NewFileEntry(path, info)
		// Follow symlinks so linked directories stay navigable.
		if info.Mode()&os.ModeSymlink != 0 {
			if target, err := os.Stat(path); err == nil {
				entry.IsDir = target.IsDir()
			}
		}
		if entry.IsHidden() && !opts.ShowHidden {
			continue
		}
		if entry.IsDir {
			dirs = append(dirs, entry)
			continue
		}
		if opts.DirsOnly || !opts.Filter.Allows(entry.Name) {
			continue
		}
		regular = append(regular, entry)
	}

	byName := func(list []types.FileEntry) {
		sort.Slice(list, func(i, j int) bool {
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		})
	}
	byName(dirs)
	byName(regular)

	entries := make([]types.FileEntry, 0, len(dirs)+len(regular)+1)
	if parent := filepath.Dir(dir); parent != dir {
		entries = append(entries, types.FileEntry{Name: "..", Path: parent, IsDir: true})
	}
	entries = append(entries, dirs...)
	entries = append(entries, regular...)
	logger.Debugf("Listed %d entries", len(entries))
	return entries, nil
}

// ReadText reads a file for display and reports it as a post file error on
// failure.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewConfigError("Failed to read post file", path, errors.InvalidConfig, err)
	}
	return string(data), nil
}

// HomeDir returns the user's home directory, or the working directory
// when it cannot be determined.
func HomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
