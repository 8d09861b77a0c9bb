package ai

import (
	"context"
	"fmt"

	"github.com/itcguard/itc-api/internal/application/ports"
	"github.com/itcguard/itc-api/pkg/config"
)

// Service is what every provider adapter offers.
type Service interface {
	ports.VisionExtractor
	ports.Assistant
	Close() error
}

// New picks the adapter named by cfg.Provider.
func New(ctx context.Context, cfg config.AIConfig) (Service, error) {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case config.ProviderOpenAI:
		return NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	case config.ProviderGemini:
		svc, err := NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("ai: unknown provider %q", cfg.Provider)
	}
}
