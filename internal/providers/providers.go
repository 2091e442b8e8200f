package providers

import (
	"context"
)

// Config represents the configuration for an LLM provider call
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
	// Image is sent alongside the prompt when set
	Image     []byte
	MimeType  string
	JSONReply bool
}

// Provider defines the interface for a vision-capable LLM provider
type Provider interface {
	ExtractText(ctx context.Context, config Config) (string, error)
}
