package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/itcguard/itc-api/internal/application/ports"
	"github.com/itcguard/itc-api/internal/domain"
)

var (
	_ ports.VisionExtractor = (*AnthropicService)(nil)
	_ ports.Assistant       = (*AnthropicService)(nil)
)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
	anthropicMaxTokens   = 1024
)

// AnthropicService talks to the Anthropic Messages REST API over net/http.
type AnthropicService struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewAnthropicService builds the adapter. An empty apiKey yields
// ErrModelUnavailable on every call instead of a panic.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey:   apiKey,
		model:    model,
		endpoint: anthropicMessagesURL,
		httpClient: &http.Client{
			// Network ceiling; use cases add a tighter context deadline.
			Timeout: 60 * time.Second,
		},
	}
}

// WithEndpoint points the adapter at another Messages endpoint (proxies, tests).
func (s *AnthropicService) WithEndpoint(url string) *AnthropicService {
	s.endpoint = url
	return s
}

// ── Messages API wire types ──

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string           `json:"role"`
	Content []anthropicBlock `json:"content"`
}

type anthropicBlock struct {
	Type   string           `json:"type"`
	Text   string           `json:"text,omitempty"`
	Source *anthropicSource `json:"source,omitempty"`
}

type anthropicSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Ports ──

// ExtractInvoice sends the image as a base64 block followed by the prompt.
func (s *AnthropicService) ExtractInvoice(ctx context.Context, image []byte, mediaType string) (string, error) {
	return s.send(ctx, "", anthropicMessage{
		Role: "user",
		Content: []anthropicBlock{
			{
				Type: "image",
				Source: &anthropicSource{
					Type:      "base64",
					MediaType: mediaType,
					Data:      base64.StdEncoding.EncodeToString(image),
				},
			},
			{Type: "text", Text: invoiceExtractionPrompt},
		},
	})
}

// Reply answers message under the given system context.
func (s *AnthropicService) Reply(ctx context.Context, system, message string) (string, error) {
	return s.send(ctx, system, anthropicMessage{
		Role:    "user",
		Content: []anthropicBlock{{Type: "text", Text: message}},
	})
}

func (s *AnthropicService) send(ctx context.Context, system string, msg anthropicMessage) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("anthropic: ANTHROPIC_API_KEY not set: %w", domain.ErrModelUnavailable)
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     s.model,
		MaxTokens: anthropicMaxTokens,
		System:    system,
		Messages:  []anthropicMessage{msg},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("anthropic: build request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("anthropic: %w", ctx.Err())
		}
		return "", fmt.Errorf("anthropic: request failed: %v: %w", err, domain.ErrModelUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", fmt.Errorf("anthropic: read response: %w", err)
	}

	var out anthropicResponse
	if resp.StatusCode != http.StatusOK {
		if json.Unmarshal(raw, &out) == nil && out.Error != nil {
			return "", fmt.Errorf("anthropic: %s: %s: %w", out.Error.Type, out.Error.Message, domain.ErrModelUnavailable)
		}
		return "", fmt.Errorf("anthropic: HTTP %d: %w", resp.StatusCode, domain.ErrModelUnavailable)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("anthropic: decode response: %w", err)
	}

	var text strings.Builder
	for _, block := range out.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("anthropic: empty response: %w", domain.ErrModelUnavailable)
	}
	return text.String(), nil
}

// Close is a no-op; the adapter holds no connections of its own.
func (s *AnthropicService) Close() error { return nil }
