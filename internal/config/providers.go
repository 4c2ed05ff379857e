package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/campusbot/pkg/log"
)

type DeepSeekConfig struct {
	APIKey string `env:"DEEPSEEK_API_KEY"`
	Model  string `env:"DEEPSEEK_MODEL" envDefault:"deepseek-chat"`
}

func NewDeepSeekConfig(ctx context.Context) *DeepSeekConfig {
	c := &DeepSeekConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse DeepSeek config")
	}
	return c
}

type OpenAIConfig struct {
	APIKey string `env:"OPENAI_API_KEY"`
	Model  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

func NewOpenAIConfig(ctx context.Context) *OpenAIConfig {
	c := &OpenAIConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse OpenAI config")
	}
	return c
}

type AnthropicConfig struct {
	APIKey string `env:"ANTHROPIC_API_KEY"`
	Model  string `env:"ANTHROPIC_MODEL" envDefault:"claude-3-haiku-20240307"`
}

func NewAnthropicConfig(ctx context.Context) *AnthropicConfig {
	c := &AnthropicConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Anthropic config")
	}
	return c
}

type CustomOpenAIConfig struct {
	BaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	APIKey  string `env:"CUSTOM_OPENAI_API_KEY"`
	Model   string `env:"CUSTOM_OPENAI_MODEL"`
}

func NewCustomOpenAIConfig(ctx context.Context) *CustomOpenAIConfig {
	c := &CustomOpenAIConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse custom OpenAI config")
	}
	return c
}
