package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/idcapture/internal/models"
	"github.com/lehigh-university-libraries/idcapture/internal/providers"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const extractionPrompt = `Từ hình ảnh giấy tờ tùy thân này, hãy trích xuất các thông tin sau: Họ tên, Số CCCD/CMND, Ngày cấp, và Địa chỉ thường trú. Đồng thời, cung cấp toàn bộ văn bản gốc đã nhận diện được.

Respond with ONLY a JSON object with these string properties:
- "fullName": Họ và tên đầy đủ, viết hoa.
- "idNumber": Số Căn cước công dân hoặc Chứng minh nhân dân.
- "issueDate": Ngày cấp theo định dạng MM/DD/YYYY.
- "address": Địa chỉ thường trú đầy đủ.
- "fullText": Toàn bộ văn bản gốc nhận diện được từ hình ảnh.`

// replySchema is what a provider reply must look like before it is mapped
var replySchema = map[string]any{
	"type":     "object",
	"required": []string{"fullName", "idNumber", "issueDate", "address", "fullText"},
	"properties": map[string]any{
		"fullName":  map[string]any{"type": "string"},
		"idNumber":  map[string]any{"type": "string"},
		"issueDate": map[string]any{"type": "string"},
		"address":   map[string]any{"type": "string"},
		"fullText":  map[string]any{"type": "string"},
	},
}

var compiledReplySchema = mustCompileSchema(replySchema)

// LLMRecognizer extracts fields by asking a vision-capable LLM
type LLMRecognizer struct {
	provider     providers.Provider
	providerName string
	model        string
	temperature  float64
}

// NewLLMRecognizer creates a recognizer backed by the given provider
func NewLLMRecognizer(provider providers.Provider, providerName, model string, temperature float64) *LLMRecognizer {
	return &LLMRecognizer{
		provider:     provider,
		providerName: providerName,
		model:        model,
		temperature:  temperature,
	}
}

func (r *LLMRecognizer) ProcessImage(ctx context.Context, file *models.ImageFile) (*models.RecognitionResult, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrProcessingFailed)
	}

	reply, err := r.provider.ExtractText(ctx, providers.Config{
		Model:       r.model,
		Temperature: r.temperature,
		Prompt:      extractionPrompt,
		Image:       file.Data,
		MimeType:    file.ContentType,
		JSONReply:   true,
	})
	if err != nil {
		slog.Error("Recognition request failed", "provider", r.providerName, "model", r.model, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrProcessingFailed, err)
	}

	result, err := parseReply(reply)
	if err != nil {
		slog.Error("Unusable recognition reply", "provider", r.providerName, "model", r.model, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrProcessingFailed, err)
	}

	slog.Info("Extracted identity fields", "provider", r.providerName, "model", r.model, "file", file.Name, "text_length", len(result.FullText))
	return result, nil
}

func parseReply(reply string) (*models.RecognitionResult, error) {
	doc := []byte(stripCodeFences(reply))

	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return nil, fmt.Errorf("reply is not JSON: %w", err)
	}
	if err := compiledReplySchema.Validate(v); err != nil {
		return nil, fmt.Errorf("json does not match schema: %w", err)
	}

	var parsed struct {
		FullName  string `json:"fullName"`
		IDNumber  string `json:"idNumber"`
		IssueDate string `json:"issueDate"`
		Address   string `json:"address"`
		FullText  string `json:"fullText"`
	}
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode reply: %w", err)
	}

	return &models.RecognitionResult{
		FullText: parsed.FullText,
		ExtractedData: models.ExtractedData{
			FullName:  parsed.FullName,
			IDNumber:  parsed.IDNumber,
			IssueDate: parsed.IssueDate,
			Address:   parsed.Address,
		},
	}, nil
}

// stripCodeFences removes a surrounding ```json ... ``` block if present
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func mustCompileSchema(schemaMap map[string]any) *jsonschema.Schema {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		panic(fmt.Sprintf("marshal schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("reply.json", bytes.NewReader(b)); err != nil {
		panic(fmt.Sprintf("add schema: %v", err))
	}
	return compiler.MustCompile("reply.json")
}
