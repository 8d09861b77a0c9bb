package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/itcguard/itc-api/internal/application/ports"
	"github.com/itcguard/itc-api/internal/domain"
)

var (
	_ ports.VisionExtractor = (*GeminiService)(nil)
	_ ports.Assistant       = (*GeminiService)(nil)
)

// GeminiService uses the Google generative AI SDK.
type GeminiService struct {
	client    *genai.Client
	modelName string
}

// NewGeminiService opens a client. Unlike the REST adapters it needs the key
// up front because the SDK dials on construction.
func NewGeminiService(ctx context.Context, apiKey, model string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: GEMINI_API_KEY not set: %w", domain.ErrModelUnavailable)
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiService{client: client, modelName: model}, nil
}

// ExtractInvoice sends the image part followed by the prompt.
func (s *GeminiService) ExtractInvoice(ctx context.Context, image []byte, mediaType string) (string, error) {
	model := s.client.GenerativeModel(s.modelName)
	return s.generate(ctx, model,
		genai.ImageData(mediaFormat(mediaType), image),
		genai.Text(invoiceExtractionPrompt),
	)
}

// Reply answers message under the given system context.
func (s *GeminiService) Reply(ctx context.Context, system, message string) (string, error) {
	model := s.client.GenerativeModel(s.modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	return s.generate(ctx, model, genai.Text(message))
}

func (s *GeminiService) generate(ctx context.Context, model *genai.GenerativeModel, parts ...genai.Part) (string, error) {
	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("gemini: %w", ctx.Err())
		}
		return "", fmt.Errorf("gemini: generate: %v: %w", err, domain.ErrModelUnavailable)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: empty response: %w", domain.ErrModelUnavailable)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("gemini: no text in response: %w", domain.ErrModelUnavailable)
	}
	return text.String(), nil
}

// Close releases the SDK client.
func (s *GeminiService) Close() error {
	return s.client.Close()
}
