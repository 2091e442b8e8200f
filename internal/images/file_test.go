package images

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatalf("png encode: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "card.png")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if f.Name != "card.png" || f.ContentType != "image/png" || f.Format != "png" {
		t.Errorf("unexpected file %+v", f)
	}
	if f.Width != 4 || f.Height != 3 || f.Size != int64(buf.Len()) {
		t.Errorf("unexpected dimensions %dx%d size %d", f.Width, f.Height, f.Size)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.jpg")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(empty); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("expected ErrEmptyFile, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.jpg")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewImageFileUndecodable(t *testing.T) {
	f := NewImageFile("scan.jpg", "", []byte("not an image"))
	if f.Format != "" || f.Width != 0 {
		t.Errorf("expected no probe info, got %+v", f)
	}
	if f.ContentType == "" {
		t.Error("expected sniffed content type")
	}
}
