package ocr

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lehigh-university-libraries/idcapture/internal/config"
	"github.com/lehigh-university-libraries/idcapture/internal/models"
	"github.com/lehigh-university-libraries/idcapture/internal/providers"
)

type fakeProvider struct {
	reply string
	err   error
	got   providers.Config
}

func (f *fakeProvider) ExtractText(ctx context.Context, cfg providers.Config) (string, error) {
	f.got = cfg
	return f.reply, f.err
}

func TestMockRecognizerReturnsSample(t *testing.T) {
	file := &models.ImageFile{Name: "cmnd.jpg", Data: []byte{1, 2, 3}}
	m := NewMockRecognizer(10 * time.Millisecond)

	start := time.Now()
	result, err := m.ProcessImage(context.Background(), file)
	if err != nil {
		t.Fatalf("ProcessImage returned error: %v", err)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Error("Expected mock to wait its latency")
	}
	if result.ExtractedData.FullName != "NGUYỄN VĂN A" {
		t.Errorf("unexpected full name %q", result.ExtractedData.FullName)
	}
	if result.ExtractedData.IDNumber != "0123456789" {
		t.Errorf("unexpected id number %q", result.ExtractedData.IDNumber)
	}
	if result.FullText != SampleFullText {
		t.Error("Expected sample full text")
	}
	if !bytes.Equal(file.Data, []byte{1, 2, 3}) {
		t.Error("input file was mutated")
	}
}

func TestMockRecognizerFailure(t *testing.T) {
	m := &MockRecognizer{Fail: errors.New("backend down")}
	_, err := m.ProcessImage(context.Background(), &models.ImageFile{Name: "a.jpg"})
	if !errors.Is(err, ErrProcessingFailed) {
		t.Fatalf("Expected ErrProcessingFailed, got %v", err)
	}
}

func TestMockRecognizerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMockRecognizer(time.Hour)
	_, err := m.ProcessImage(ctx, &models.ImageFile{Name: "a.jpg"})
	if !errors.Is(err, ErrProcessingFailed) || !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected cancelled processing failure, got %v", err)
	}
}

func TestLLMRecognizer(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		perr    error
		wantErr bool
		want    models.ExtractedData
	}{
		{
			name:  "plain json",
			reply: `{"fullName":"TRẦN THỊ B","idNumber":"079123456789","issueDate":"05/12/2021","address":"Quận 1, TP HCM","fullText":"..."}`,
			want:  models.ExtractedData{FullName: "TRẦN THỊ B", IDNumber: "079123456789", IssueDate: "05/12/2021", Address: "Quận 1, TP HCM"},
		},
		{
			name:  "fenced json",
			reply: "```json\n{\"fullName\":\"A\",\"idNumber\":\"1\",\"issueDate\":\"01/01/2020\",\"address\":\"X\",\"fullText\":\"t\"}\n```",
			want:  models.ExtractedData{FullName: "A", IDNumber: "1", IssueDate: "01/01/2020", Address: "X"},
		},
		{
			name:    "missing field fails schema",
			reply:   `{"fullName":"A","idNumber":"1","issueDate":"01/01/2020","fullText":"t"}`,
			wantErr: true,
		},
		{
			name:    "wrong type fails schema",
			reply:   `{"fullName":"A","idNumber":123,"issueDate":"01/01/2020","address":"X","fullText":"t"}`,
			wantErr: true,
		},
		{
			name:    "not json",
			reply:   "I could not read this card",
			wantErr: true,
		},
		{
			name:    "provider error",
			perr:    errors.New("timeout"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{reply: tt.reply, err: tt.perr}
			r := NewLLMRecognizer(p, "fake", "vision-1", 0)
			result, err := r.ProcessImage(context.Background(), &models.ImageFile{
				Name:        "card.png",
				ContentType: "image/png",
				Data:        []byte("img"),
			})
			if tt.wantErr {
				if !errors.Is(err, ErrProcessingFailed) {
					t.Fatalf("Expected ErrProcessingFailed, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ProcessImage returned error: %v", err)
			}
			if result.ExtractedData != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, result.ExtractedData)
			}
			if !p.got.JSONReply || p.got.MimeType != "image/png" || string(p.got.Image) != "img" {
				t.Errorf("provider received unexpected config %+v", p.got)
			}
		})
	}
}

func TestLLMRecognizerRejectsEmptyImage(t *testing.T) {
	r := NewLLMRecognizer(&fakeProvider{}, "fake", "m", 0)
	if _, err := r.ProcessImage(context.Background(), &models.ImageFile{Name: "empty.jpg"}); !errors.Is(err, ErrProcessingFailed) {
		t.Fatalf("Expected ErrProcessingFailed, got %v", err)
	}
}

func TestNewRecognizer(t *testing.T) {
	tests := []struct {
		provider string
		wantMock bool
		wantErr  bool
	}{
		{provider: "mock", wantMock: true},
		{provider: "", wantMock: true},
		{provider: "gemini"},
		{provider: "openai"},
		{provider: "ollama"},
		{provider: "tesseract", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			r, err := NewRecognizer(config.RecognitionConfig{Provider: tt.provider, MockLatency: time.Second})
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewRecognizer returned error: %v", err)
			}
			_, isMock := r.(*MockRecognizer)
			if isMock != tt.wantMock {
				t.Errorf("Expected mock=%v, got %T", tt.wantMock, r)
			}
		})
	}
}
