package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/idcapture/internal/providers"
)

func TestExtractText(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		var body struct {
			Messages []struct {
				Content []map[string]any `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if len(body.Messages) != 1 || len(body.Messages[0].Content) != 2 {
			t.Errorf("Expected text and image parts, got %+v", body.Messages)
		} else {
			img := body.Messages[0].Content[1]["image_url"].(map[string]any)
			if !strings.HasPrefix(img["url"].(string), "data:image/png;base64,") {
				t.Errorf("unexpected image url %v", img["url"])
			}
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	o := &OpenAI{BaseURL: server.URL, HTTPClient: server.Client()}
	out, err := o.ExtractText(context.Background(), providers.Config{
		Model:    "gpt-4o",
		Prompt:   "read",
		Image:    []byte("png"),
		MimeType: "image/png",
	})
	if err != nil {
		t.Fatalf("ExtractText returned error: %v", err)
	}
	if out != "ok" {
		t.Errorf("Expected ok, got %q", out)
	}
}

func TestExtractTextMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	o := New()
	if _, err := o.ExtractText(context.Background(), providers.Config{}); err == nil {
		t.Fatal("Expected error when OPENAI_API_KEY is unset")
	}
}

func TestExtractTextNoChoices(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	o := &OpenAI{BaseURL: server.URL, HTTPClient: server.Client()}
	if _, err := o.ExtractText(context.Background(), providers.Config{Model: "gpt-4o"}); err == nil {
		t.Fatal("Expected error when no choices are returned")
	}
}
