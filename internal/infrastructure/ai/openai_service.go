package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/itcguard/itc-api/internal/application/ports"
	"github.com/itcguard/itc-api/internal/domain"
)

var (
	_ ports.VisionExtractor = (*OpenAIService)(nil)
	_ ports.Assistant       = (*OpenAIService)(nil)
)

const openAIMaxTokens = 1000

// OpenAIService speaks the chat completions API. With a custom base URL it
// also serves OpenAI-compatible routers that front other vendors' models.
type OpenAIService struct {
	client *openai.Client
	model  string
	ready  bool
}

// NewOpenAIService builds the adapter. baseURL may be empty.
func NewOpenAIService(apiKey, baseURL, model string) *OpenAIService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		ready:  apiKey != "",
	}
}

// ExtractInvoice sends the prompt plus the image as a data URI.
func (s *OpenAIService) ExtractInvoice(ctx context.Context, image []byte, mediaType string) (string, error) {
	dataURI := fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(image))
	return s.complete(ctx, []openai.ChatCompletionMessage{{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: invoiceExtractionPrompt},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    dataURI,
					Detail: openai.ImageURLDetailHigh,
				},
			},
		},
	}})
}

// Reply answers message under the given system context.
func (s *OpenAIService) Reply(ctx context.Context, system, message string) (string, error) {
	return s.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
		{Role: openai.ChatMessageRoleUser, Content: message},
	})
}

func (s *OpenAIService) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	if !s.ready {
		return "", fmt.Errorf("openai: OPENAI_API_KEY not set: %w", domain.ErrModelUnavailable)
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		Messages:  messages,
		MaxTokens: openAIMaxTokens,
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("openai: %w", ctx.Err())
		}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("openai: HTTP %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, domain.ErrModelUnavailable)
		}
		return "", fmt.Errorf("openai: %v: %w", err, domain.ErrModelUnavailable)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: empty response: %w", domain.ErrModelUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

// Close is a no-op.
func (s *OpenAIService) Close() error { return nil }
