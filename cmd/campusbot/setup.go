package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sandevgo/campusbot/internal/config"
	"github.com/sandevgo/campusbot/internal/core"
	"github.com/sandevgo/campusbot/internal/providers/articles"
	"github.com/sandevgo/campusbot/internal/providers/llm"
	"github.com/sandevgo/campusbot/internal/service/answer"
	"github.com/sandevgo/campusbot/internal/service/history"
	"github.com/sandevgo/campusbot/internal/storage/sqlite"
	"github.com/sandevgo/campusbot/internal/transport/cli"
	"github.com/sandevgo/campusbot/internal/transport/httpapi"
	"github.com/sandevgo/campusbot/pkg/log"
	"github.com/sandevgo/campusbot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	appCfg := config.NewAppConfig(ctx)
	svcCfg := config.NewServiceConfig(ctx)
	artCfg := config.NewArticlesConfig(ctx)

	// Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// Article corpus: remote client behind a TTL cache with a sqlite
	// snapshot, kept warm by a background refresher.
	source := articles.NewCachedSource(
		articles.NewClient(artCfg.BaseURL),
		sqlite.NewArticlesRepo(db),
		artCfg.CacheTTL,
	)
	services = append(services, articles.NewRefresher(source, artCfg.RefreshInterval))

	// Generation provider. A missing credential is not fatal: the service
	// still answers with template replies.
	var provider core.GenerationProvider
	if svcCfg.Enabled {
		provider, err = llm.NewProvider(ctx, appCfg, svcCfg)
		if err != nil {
			logger.Warn().Err(err).Msg("llm provider unavailable, using template replies")
			provider = nil
		}
	}

	gen := answer.NewGenerator(svcCfg, provider, source, history.NewStore(), appCfg.ContextWindowSize)

	// Transports
	services = append(services, httpapi.NewServer(appCfg, svcCfg, gen))
	if appCfg.EnableCLI {
		services = append(services, cli.NewREPL(gen))
	}

	return services
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
