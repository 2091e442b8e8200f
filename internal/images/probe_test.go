package images

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/idcapture/internal/models"
	"golang.org/x/image/bmp"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	return img
}

func TestProbe(t *testing.T) {
	var pngBuf, bmpBuf bytes.Buffer
	if err := png.Encode(&pngBuf, testImage()); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	if err := bmp.Encode(&bmpBuf, testImage()); err != nil {
		t.Fatalf("bmp encode: %v", err)
	}

	tests := []struct {
		name   string
		data   []byte
		format string
	}{
		{name: "png", data: pngBuf.Bytes(), format: "png"},
		{name: "bmp", data: bmpBuf.Bytes(), format: "bmp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Probe(tt.data)
			if err != nil {
				t.Fatalf("Probe returned error: %v", err)
			}
			if info.Format != tt.format || info.Width != 4 || info.Height != 3 {
				t.Errorf("unexpected info %+v", info)
			}
		})
	}
}

func TestProbeErrors(t *testing.T) {
	if _, err := Probe(nil); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("Expected ErrEmptyFile, got %v", err)
	}
	if _, err := Probe([]byte("not an image")); err == nil {
		t.Error("Expected decode error")
	}
}

func TestDataURI(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatalf("png encode: %v", err)
	}

	tests := []struct {
		name   string
		file   *models.ImageFile
		prefix string
	}{
		{
			name:   "declared type wins",
			file:   &models.ImageFile{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("abc")},
			prefix: "data:image/jpeg;base64,YWJj",
		},
		{
			name:   "sniffs octet-stream",
			file:   &models.ImageFile{Name: "a.png", ContentType: "application/octet-stream", Data: buf.Bytes()},
			prefix: "data:image/png;base64,",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, err := DataURI(tt.file)
			if err != nil {
				t.Fatalf("DataURI returned error: %v", err)
			}
			if !strings.HasPrefix(uri, tt.prefix) {
				t.Errorf("Expected prefix %q, got %q", tt.prefix, uri)
			}
		})
	}

	if _, err := DataURI(&models.ImageFile{Name: "empty.jpg"}); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("Expected ErrEmptyFile, got %v", err)
	}
}
