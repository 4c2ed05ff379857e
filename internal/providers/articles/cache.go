package articles

import (
	"context"
	"sync"
	"time"

	"github.com/sandevgo/campusbot/internal/core"
	"github.com/sandevgo/campusbot/pkg/log"
)

// CachedSource layers a TTL cache over an upstream source. A fetch failure
// serves the last good snapshot instead of propagating, first from memory
// and then from the persistent repository.
type CachedSource struct {
	src  core.ArticleSource
	repo core.ArticleRepository // may be nil
	ttl  time.Duration

	mu        sync.Mutex
	cached    []core.Article
	fetchedAt time.Time
}

func NewCachedSource(src core.ArticleSource, repo core.ArticleRepository, ttl time.Duration) *CachedSource {
	return &CachedSource{
		src:  src,
		repo: repo,
		ttl:  ttl,
	}
}

func (c *CachedSource) FetchAll(ctx context.Context) ([]core.Article, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.cached) > 0 && time.Since(c.fetchedAt) < c.ttl {
		return c.cached, nil
	}

	logger := log.FromCtx(ctx)

	fresh, err := c.src.FetchAll(ctx)
	if err == nil {
		c.cached = fresh
		c.fetchedAt = time.Now()
		if c.repo != nil {
			if perr := c.repo.ReplaceAll(ctx, fresh); perr != nil {
				logger.Warn().Err(perr).Msg("failed to persist article snapshot")
			}
		}
		return fresh, nil
	}

	logger.Warn().Err(err).Msg("article fetch failed, falling back to cache")

	if len(c.cached) > 0 {
		return c.cached, nil
	}

	if c.repo != nil {
		stored, serr := c.repo.GetAll(ctx)
		if serr == nil && len(stored) > 0 {
			c.cached = stored
			return stored, nil
		}
	}

	return nil, err
}

// Invalidate forces the next FetchAll to go upstream.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchedAt = time.Time{}
}
