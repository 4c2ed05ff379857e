package answer

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/campusbot/internal/config"
	"github.com/sandevgo/campusbot/internal/core"
	"github.com/sandevgo/campusbot/internal/search"
	"github.com/sandevgo/campusbot/internal/service/history"
	"github.com/sandevgo/campusbot/internal/topic"
	"github.com/sandevgo/campusbot/pkg/log"
)

const searchResultLimit = 3

// Generator runs the full query pipeline: topic detection, article search,
// reply generation and history recording. Provider failures degrade to the
// template responder so a query never fails outright once accepted.
type Generator struct {
	cfg      *config.ServiceConfig
	provider core.GenerationProvider // nil means template-only
	source   core.ArticleSource      // nil disables article search
	engine   *search.Engine
	store    *history.Store

	contextWindow int

	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(cfg *config.ServiceConfig, provider core.GenerationProvider, source core.ArticleSource, store *history.Store, contextWindow int) *Generator {
	return &Generator{
		cfg:           cfg,
		provider:      provider,
		source:        source,
		engine:        search.NewEngine(),
		store:         store,
		contextWindow: contextWindow,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *Generator) Store() *history.Store {
	return g.store
}

// ProcessQuery answers one query end to end.
func (g *Generator) ProcessQuery(ctx context.Context, query string) (core.Answer, error) {
	start := time.Now()

	if !g.cfg.Enabled {
		return core.Answer{}, core.ErrServiceDisabled
	}

	g.store.BumpRequests()
	logger := log.FromCtx(ctx)

	if strings.TrimSpace(query) == "" {
		// Guidance replies are not conversation turns.
		return core.Answer{
			Reply:          EmptyQueryReply,
			Topic:          topic.Default,
			Confidence:     1.0,
			ProcessingTime: time.Since(start).Milliseconds(),
		}, nil
	}

	t := topic.Classify(query)
	confidence := topic.Confidence(query, t)

	results := g.searchArticles(ctx, query)
	reply := g.generate(ctx, t, results, query)
	reply += search.FormatRecommendations(results)

	g.store.Append(history.NewEntry(query, reply, t, confidence))

	processingTime := time.Since(start).Milliseconds()
	logger.Debug().
		Str("topic", t).
		Float64("confidence", confidence).
		Int("replyLength", len(reply)).
		Int64("processingTime", processingTime).
		Msg("query processed")

	return core.Answer{
		Reply:          reply,
		Topic:          t,
		Confidence:     confidence,
		ProcessingTime: processingTime,
	}, nil
}

// searchArticles refreshes the index and queries it when the query asks for
// material. Fetch failures mean an empty result set, never an error.
func (g *Generator) searchArticles(ctx context.Context, query string) []core.SearchResult {
	if g.source == nil || !g.engine.ShouldSearch(query) {
		return nil
	}

	articles, err := g.source.FetchAll(ctx)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("article fetch failed, searching stale index")
	} else {
		g.engine.UpdateArticles(articles)
	}

	return g.engine.Search(ctx, query, searchResultLimit)
}

// generate asks the provider for a reply, falling back to the template
// responder on any failure.
func (g *Generator) generate(ctx context.Context, t string, results []core.SearchResult, query string) string {
	if g.provider == nil {
		return g.templateReply(query, t)
	}

	recent := g.store.Recent(g.contextWindow)
	completion, err := g.provider.Generate(ctx, BuildPrompt(t, results, recent, query))
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("provider failed, using template reply")
		return g.templateReply(query, t)
	}

	if completion.Usage != nil {
		log.FromCtx(ctx).Debug().
			Str("model", completion.Model).
			Int("totalTokens", completion.Usage.TotalTokens).
			Msg("provider completion")
	}
	return completion.Content
}

func (g *Generator) templateReply(query, t string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return TemplateReply(g.rng, query, t)
}
