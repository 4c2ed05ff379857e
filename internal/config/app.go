package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/campusbot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"CAMPUSBOT_RUNTIME_PATH" envDefault:".campusbot"`

	// Provider selection
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"deepseek"`

	// Transport flags
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`
	EnableCLI bool   `env:"ENABLE_CLI" envDefault:"false"`

	// How many past exchanges are replayed as provider context.
	ContextWindowSize int `env:"CONTEXT_WINDOW_SIZE" envDefault:"5"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "campusbot.db")
}
