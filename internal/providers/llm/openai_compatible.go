package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/sandevgo/campusbot/internal/core"
)

// OpenAICompatible talks to any backend that speaks the OpenAI chat
// completions dialect. The vendor wrappers only differ in base URL and
// authentication.
type OpenAICompatible struct {
	baseProvider
	name         string
	opts         GenerationOptions
	authHeader   string
	authPrefix   string
	extraHeaders map[string]string
}

type OpenAICompatibleConfig struct {
	Name         string
	BaseURL      string
	APIKey       string
	Model        string
	AuthHeader   string // e.g., "Authorization"
	AuthPrefix   string // e.g., "Bearer "
	ExtraHeaders map[string]string
	Options      GenerationOptions
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	return &OpenAICompatible{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey, cfg.Model),
		name:         cfg.Name,
		opts:         cfg.Options,
		authHeader:   cfg.AuthHeader,
		authPrefix:   cfg.AuthPrefix,
		extraHeaders: cfg.ExtraHeaders,
	}
}

func (o *OpenAICompatible) Generate(ctx context.Context, messages []core.Message) (core.Completion, error) {
	payload := map[string]any{
		"model":       o.model,
		"messages":    messages,
		"temperature": o.opts.Temperature,
	}
	if o.opts.MaxTokens > 0 {
		payload["max_tokens"] = o.opts.MaxTokens
	}

	headers := make(map[string]string)
	if o.authHeader != "" && o.apiKey != "" {
		headers[o.authHeader] = o.authPrefix + o.apiKey
	}
	for k, v := range o.extraHeaders {
		headers[k] = v
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/v1/chat/completions", payload, headers)
	if err != nil {
		return core.Completion{}, &core.ProviderError{Provider: o.name, Err: err}
	}

	var result struct {
		Model   string `json:"model"`
		Choices []struct {
			Message      core.Message `json:"message"`
			FinishReason string       `json:"finish_reason"`
		} `json:"choices"`
		Usage *core.Usage `json:"usage"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return core.Completion{}, &core.ProviderError{Provider: o.name, Err: err}
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return core.Completion{}, &core.ProviderError{Provider: o.name, Err: errors.New("empty completion")}
	}

	return core.Completion{
		Content:      result.Choices[0].Message.Content,
		Usage:        result.Usage,
		Model:        result.Model,
		FinishReason: result.Choices[0].FinishReason,
	}, nil
}
