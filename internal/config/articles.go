package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/campusbot/pkg/log"
)

type ArticlesConfig struct {
	// Base URL of the article backend, e.g. http://localhost:3000
	BaseURL string `env:"ARTICLES_API_URL" envDefault:"http://localhost:3000"`

	CacheTTL        time.Duration `env:"ARTICLES_CACHE_TTL" envDefault:"5m"`
	RefreshInterval time.Duration `env:"ARTICLES_REFRESH_INTERVAL" envDefault:"5m"`
}

func NewArticlesConfig(ctx context.Context) *ArticlesConfig {
	c := &ArticlesConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Articles config")
	}
	return c
}
