package types

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileEntry represents a file or directory in a picker listing.
type FileEntry struct {
	Name  string
	Path  string
	Ctime time.Time
	Size  int64
	IsDir bool
}

// NewFileEntry builds an entry from a path and its stat result.
func NewFileEntry(path string, info os.FileInfo) FileEntry {
	return FileEntry{
		Name:  info.Name(),
		Path:  path,
		Ctime: info.ModTime(),
		Size:  info.Size(),
		IsDir: info.IsDir(),
	}
}

// Title returns the name without a markdown extension.
func (f FileEntry) Title() string {
	return strings.TrimSuffix(f.Name, ".md")
}

// IsHidden reports whether the entry is a dotfile. The parent entry ".."
// is never hidden.
func (f FileEntry) IsHidden() bool {
	return f.Name != ".." && strings.HasPrefix(f.Name, ".")
}

// Ext returns the lower-cased extension without the dot.
func (f FileEntry) Ext() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(f.Name)), ".")
}
