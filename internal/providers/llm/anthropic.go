package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/sandevgo/campusbot/internal/core"
)

type Anthropic struct {
	baseProvider
	opts GenerationOptions
}

func NewAnthropic(apiKey, model string, opts GenerationOptions) *Anthropic {
	return &Anthropic{
		baseProvider: newBaseProvider("https://api.anthropic.com", apiKey, model),
		opts:         opts,
	}
}

func (a *Anthropic) Generate(ctx context.Context, messages []core.Message) (core.Completion, error) {
	// Anthropic takes system text as a top-level field, not a message.
	var system string
	var msgs []core.Message
	for _, m := range messages {
		if m.Role == core.RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		msgs = append(msgs, m)
	}

	maxTokens := a.opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	payload := map[string]any{
		"model":       a.model,
		"max_tokens":  maxTokens,
		"temperature": a.opts.Temperature,
		"messages":    msgs,
	}
	if system != "" {
		payload["system"] = system
	}

	headers := map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": "2023-06-01",
	}

	resp, err := a.doRequest(ctx, http.MethodPost, "/v1/messages", payload, headers)
	if err != nil {
		return core.Completion{}, &core.ProviderError{Provider: "anthropic", Err: err}
	}

	var result struct {
		Model   string `json:"model"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		StopReason string `json:"stop_reason"`
		Usage      struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return core.Completion{}, &core.ProviderError{Provider: "anthropic", Err: err}
	}

	var text string
	for _, c := range result.Content {
		if c.Type == "text" {
			text += c.Text
		}
	}
	if text == "" {
		return core.Completion{}, &core.ProviderError{Provider: "anthropic", Err: errors.New("empty completion")}
	}

	return core.Completion{
		Content: text,
		Usage: &core.Usage{
			PromptTokens:     result.Usage.InputTokens,
			CompletionTokens: result.Usage.OutputTokens,
			TotalTokens:      result.Usage.InputTokens + result.Usage.OutputTokens,
		},
		Model:        result.Model,
		FinishReason: result.StopReason,
	}, nil
}
