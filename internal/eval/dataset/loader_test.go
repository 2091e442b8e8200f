package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

var fixtures = []Sample{
	{ID: "1", ImagePath: "images/1.jpg", FullName: "NGUYỄN VĂN A", IDNumber: "0123456789", IssueDate: "10/20/2020", Address: "Hà Nội"},
	{ID: "2", ImagePath: "/abs/2.jpg", FullName: "TRẦN THỊ B", IDNumber: "079123456789", IssueDate: "05/12/2021", Address: "TP HCM"},
	{ID: "3", ImagePath: "3.png", FullName: "LÊ VĂN C", IDNumber: "001099000123", IssueDate: "01/02/2022", Address: "Đà Nẵng"},
}

func TestNewLoader(t *testing.T) {
	path := "./test.parquet"
	loader := NewLoader(path)

	if loader.datasetPath != path {
		t.Errorf("Expected path %s, got %s", path, loader.datasetPath)
	}
}

func TestLoadJSONL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "samples.jsonl")
	content := `{"id":"1","image_path":"images/1.jpg","full_name":"NGUYỄN VĂN A","id_number":"0123456789","issue_date":"10/20/2020","address":"Hà Nội"}

{"id":"2","image_path":"/abs/2.jpg","full_name":"TRẦN THỊ B","id_number":"079123456789","issue_date":"05/12/2021","address":"TP HCM"}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}

	samples, err := NewLoader(path).Load(-1)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("Expected 2 samples, got %d", len(samples))
	}
	if samples[0].ImagePath != filepath.Join(dir, "images/1.jpg") {
		t.Errorf("Expected relative path resolved against dataset dir, got %s", samples[0].ImagePath)
	}
	if samples[1].ImagePath != "/abs/2.jpg" {
		t.Errorf("Expected absolute path untouched, got %s", samples[1].ImagePath)
	}
	if samples[0].Expected().FullName != "NGUYỄN VĂN A" {
		t.Errorf("unexpected full name %q", samples[0].Expected().FullName)
	}
}

func TestLoadParquet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "samples.parquet")
	if err := parquet.WriteFile(path, fixtures); err != nil {
		t.Fatalf("failed to write parquet: %v", err)
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "all", limit: -1, want: 3},
		{name: "sample of two", limit: 2, want: 2},
		{name: "limit above size", limit: 10, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples, err := NewLoader(path).Load(tt.limit)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if len(samples) != tt.want {
				t.Fatalf("Expected %d samples, got %d", tt.want, len(samples))
			}
			if samples[0].IDNumber != "0123456789" || samples[0].Address != "Hà Nội" {
				t.Errorf("unexpected first sample %+v", samples[0])
			}
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	if _, err := NewLoader("samples.csv").Load(-1); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	if err := os.WriteFile(path, []byte("{not json}\n"), 0644); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	if _, err := NewLoader(path).Load(-1); err == nil {
		t.Error("Expected parse error")
	}
}
