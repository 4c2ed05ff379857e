package articles

import (
	"context"
	"time"

	"github.com/sandevgo/campusbot/internal/core"
	"github.com/sandevgo/campusbot/pkg/log"
	"github.com/sandevgo/campusbot/pkg/retry"
)

// Refresher keeps the article snapshot warm in the background so queries
// rarely pay the upstream fetch cost.
type Refresher struct {
	source   core.ArticleSource
	interval time.Duration
	retrier  *retry.Retrier
	done     chan struct{}
}

func NewRefresher(source core.ArticleSource, interval time.Duration) *Refresher {
	return &Refresher{
		source:   source,
		interval: interval,
		retrier:  retry.NewDefaultRetrier(),
		done:     make(chan struct{}),
	}
}

func (r *Refresher) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.refresh(ctx)
		case <-ctx.Done():
			logger.Info().Msg("article refresher stopped")
			return nil
		case <-r.done:
			return nil
		}
	}
}

func (r *Refresher) Shutdown(ctx context.Context) error {
	close(r.done)
	return nil
}

func (r *Refresher) refresh(ctx context.Context) {
	logger := log.FromCtx(ctx)

	var count int
	err := r.retrier.Do(ctx, func() error {
		if c, ok := r.source.(*CachedSource); ok {
			c.Invalidate()
		}
		articles, err := r.source.FetchAll(ctx)
		if err != nil {
			return err
		}
		count = len(articles)
		return nil
	})
	if err != nil {
		logger.Warn().Err(err).Msg("article refresh failed")
		return
	}

	logger.Debug().Int("articles", count).Msg("article snapshot refreshed")
}
