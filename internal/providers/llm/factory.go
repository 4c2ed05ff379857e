package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/campusbot/internal/config"
	"github.com/sandevgo/campusbot/internal/core"
	"github.com/sandevgo/campusbot/pkg/log"
)

// NewProvider creates the GenerationProvider selected by configuration.
func NewProvider(ctx context.Context, cfg *config.AppConfig, svc *config.ServiceConfig) (core.GenerationProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.LLMProvider).
		Msg("starting llm provider")

	opts := GenerationOptions{
		MaxTokens:   svc.MaxTokens,
		Temperature: svc.Temperature,
	}

	switch cfg.LLMProvider {
	case "deepseek":
		pc := config.NewDeepSeekConfig(ctx)
		if pc.APIKey == "" {
			return nil, fmt.Errorf("deepseek: %w", core.ErrMissingCredential)
		}
		return NewDeepSeek(pc.APIKey, pc.Model, opts), nil
	case "openai":
		pc := config.NewOpenAIConfig(ctx)
		if pc.APIKey == "" {
			return nil, fmt.Errorf("openai: %w", core.ErrMissingCredential)
		}
		return NewOpenAI(pc.APIKey, pc.Model, opts), nil
	case "anthropic":
		pc := config.NewAnthropicConfig(ctx)
		if pc.APIKey == "" {
			return nil, fmt.Errorf("anthropic: %w", core.ErrMissingCredential)
		}
		return NewAnthropic(pc.APIKey, pc.Model, opts), nil
	case "custom":
		pc := config.NewCustomOpenAIConfig(ctx)
		if pc.BaseURL == "" {
			return nil, fmt.Errorf("custom: base url is required")
		}
		return NewCustomOpenAI(pc.BaseURL, pc.APIKey, pc.Model, opts), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
