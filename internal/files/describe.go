package files

import (
	"os"
	"strings"
	"time"

	"pagetui/internal/errors"
	"pagetui/internal/log"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	exif.RegisterParsers(mknote.All...)
}

// Description is the metadata shown beside a file's content.
type Description struct {
	Size        string
	ContentType string
	Modified    time.Time
	CameraModel string
	TakenAt     string
}

// Describe stats path and sniffs its content type. Images are checked for
// EXIF camera data.
func Describe(path string) (Description, error) {
	logger := log.LogWithFields(log.F("path", path))

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Description{}, errors.NewFileError("failed to stat file", path, errors.FileNotFound, err)
		}
		return Description{}, errors.NewFileError("failed to stat file", path, errors.FileAccessDenied, err)
	}

	d := Description{
		Size:     humanize.Bytes(uint64(info.Size())),
		Modified: info.ModTime(),
	}
	if info.IsDir() {
		d.ContentType = "inode/directory"
		return d, nil
	}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return d, errors.NewFileError("failed to detect content type", path, errors.FileReadFailed, err)
	}
	d.ContentType = mime.String()

	if strings.HasPrefix(d.ContentType, "image/jpeg") || strings.HasPrefix(d.ContentType, "image/tiff") {
		file, err := os.Open(path)
		if err != nil {
			return d, nil
		}
		defer file.Close()

		x, err := exif.Decode(file)
		if err != nil {
			logger.Debugf("No EXIF data: %v", err)
			return d, nil
		}
		if model, err := x.Get(exif.Model); err == nil {
			d.CameraModel, _ = model.StringVal()
		}
		if dt, err := x.Get(exif.DateTimeOriginal); err == nil {
			d.TakenAt, _ = dt.StringVal()
		}
	}
	return d, nil
}

// Summary renders the description as "size · type" with camera details
// appended when present.
func (d Description) Summary() string {
	parts := []string{d.Size}
	if d.ContentType != "" {
		parts = append(parts, d.ContentType)
	}
	if d.CameraModel != "" {
		parts = append(parts, d.CameraModel)
	}
	if d.TakenAt != "" {
		parts = append(parts, d.TakenAt)
	}
	return strings.Join(parts, " · ")
}

// Age renders a timestamp relative to now, like "3 minutes ago".
func Age(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}
