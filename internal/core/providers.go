package core

import "context"

// GenerationProvider produces a completion for an ordered message sequence.
type GenerationProvider interface {
	Generate(ctx context.Context, messages []Message) (Completion, error)
}

// ArticleSource hands out the current article corpus. Implementations are
// expected to be slow and unreliable; callers make one best-effort attempt
// per query cycle and treat failure as an empty corpus.
type ArticleSource interface {
	FetchAll(ctx context.Context) ([]Article, error)
}

// ArticleRepository persists a local copy of the corpus between restarts.
type ArticleRepository interface {
	ReplaceAll(ctx context.Context, articles []Article) error
	GetAll(ctx context.Context) ([]Article, error)
}
