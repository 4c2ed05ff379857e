package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/campusbot/pkg/log"
)

// ServiceConfig is read once at startup and never mutated by the pipeline.
type ServiceConfig struct {
	Enabled     bool    `env:"LLM_SERVICE_ENABLED" envDefault:"true"`
	MaxTokens   int     `env:"LLM_MAX_TOKENS" envDefault:"2000"`
	Temperature float64 `env:"LLM_TEMPERATURE" envDefault:"0.7"`

	// Pacing bounds for the inter-chunk delay on the streaming path.
	ChunkDelayMin time.Duration `env:"LLM_CHUNK_DELAY_MIN" envDefault:"50ms"`
	ChunkDelayMax time.Duration `env:"LLM_CHUNK_DELAY_MAX" envDefault:"150ms"`

	Debug bool `env:"DEBUG_LLM" envDefault:"false"`
}

func NewServiceConfig(ctx context.Context) *ServiceConfig {
	c := &ServiceConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Service config")
	}
	return c
}
