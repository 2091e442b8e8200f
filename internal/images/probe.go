package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"github.com/lehigh-university-libraries/idcapture/internal/models"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyFile is returned when a file carries no bytes
var ErrEmptyFile = errors.New("file is empty")

// Info describes a decoded image header
type Info struct {
	Format string
	Width  int
	Height int
}

// Probe decodes only the image header to report format and dimensions
func Probe(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, ErrEmptyFile
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("failed to decode image header: %w", err)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// ContentType returns the declared MIME type, or sniffs one from the bytes
func ContentType(file *models.ImageFile) string {
	if ct := strings.TrimSpace(file.ContentType); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	return http.DetectContentType(file.Data)
}

// DataURI renders the file as a data: URI suitable for an <img> preview
func DataURI(file *models.ImageFile) (string, error) {
	if file == nil {
		return "", fmt.Errorf("failed to read file: no file")
	}
	if len(file.Data) == 0 {
		return "", fmt.Errorf("failed to read file %s: %w", file.Name, ErrEmptyFile)
	}
	return "data:" + ContentType(file) + ";base64," + base64.StdEncoding.EncodeToString(file.Data), nil
}
