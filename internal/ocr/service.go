package ocr

import (
	"context"
	"errors"
	"fmt"

	"github.com/lehigh-university-libraries/idcapture/internal/config"
	"github.com/lehigh-university-libraries/idcapture/internal/gemini"
	"github.com/lehigh-university-libraries/idcapture/internal/models"
	"github.com/lehigh-university-libraries/idcapture/internal/ollama"
	"github.com/lehigh-university-libraries/idcapture/internal/openai"
)

// ErrProcessingFailed is the only failure shape callers may rely on
var ErrProcessingFailed = errors.New("processing failed")

// Recognizer turns an identity-document image into structured fields.
// Implementations must not mutate the file.
type Recognizer interface {
	ProcessImage(ctx context.Context, file *models.ImageFile) (*models.RecognitionResult, error)
}

// NewRecognizer builds the recognizer selected by configuration
func NewRecognizer(cfg config.RecognitionConfig) (Recognizer, error) {
	switch cfg.Provider {
	case "", "mock":
		return NewMockRecognizer(cfg.MockLatency), nil
	case "gemini":
		return NewLLMRecognizer(gemini.New(), cfg.Provider, ModelFor(cfg), cfg.Temperature), nil
	case "openai":
		return NewLLMRecognizer(openai.New(), cfg.Provider, ModelFor(cfg), cfg.Temperature), nil
	case "ollama":
		return NewLLMRecognizer(ollama.New(), cfg.Provider, ModelFor(cfg), cfg.Temperature), nil
	default:
		return nil, fmt.Errorf("unsupported recognition provider: %s", cfg.Provider)
	}
}

// ModelFor returns the configured model or the provider default
func ModelFor(cfg config.RecognitionConfig) string {
	if cfg.Model != "" {
		return cfg.Model
	}
	switch cfg.Provider {
	case "gemini":
		return "gemini-2.5-flash"
	case "openai":
		return "gpt-4o"
	case "ollama":
		return "mistral-small3.2:24b"
	default:
		return ""
	}
}
