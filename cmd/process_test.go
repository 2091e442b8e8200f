package cmd

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/lehigh-university-libraries/idcapture/internal/models"
	"github.com/lehigh-university-libraries/idcapture/internal/ocr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writePNG(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	path := filepath.Join(t.TempDir(), "cmnd.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("RECOGNITION_PROVIDER", "mock")
	t.Setenv("RECOGNITION_MOCK_LATENCY", "1ms")

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestProcessCommand(t *testing.T) {
	path := writePNG(t)

	t.Run("yaml", func(t *testing.T) {
		out, err := runRoot(t, "process", path)
		require.NoError(t, err)
		var result models.RecognitionResult
		require.NoError(t, yaml.Unmarshal([]byte(out), &result))
		assert.Equal(t, ocr.SampleData, result.ExtractedData)
	})

	t.Run("json", func(t *testing.T) {
		out, err := runRoot(t, "process", path, "--output", "json")
		require.NoError(t, err)
		var result models.RecognitionResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, ocr.SampleFullText, result.FullText)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := runRoot(t, "process", path, "--output", "xml")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runRoot(t, "process", filepath.Join(t.TempDir(), "nope.png"))
		assert.Error(t, err)
	})
}
