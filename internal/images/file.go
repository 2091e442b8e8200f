package images

import (
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/lehigh-university-libraries/idcapture/internal/models"
)

// NewImageFile records what we know about an image. Format checks are not
// enforced here; an undecodable header is only logged.
func NewImageFile(name, contentType string, data []byte) *models.ImageFile {
	f := &models.ImageFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}
	f.ContentType = ContentType(f)

	info, err := Probe(data)
	if err != nil {
		slog.Warn("Failed to get image dimensions", "file", name, "error", err)
		return f
	}
	f.Width, f.Height, f.Format = info.Width, info.Height, info.Format
	return f
}

// Load reads an image from disk
func Load(path string) (*models.ImageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to read image %s: %w", path, ErrEmptyFile)
	}
	return NewImageFile(filepath.Base(path), mime.TypeByExtension(filepath.Ext(path)), data), nil
}
