package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sandevgo/campusbot/internal/core"
)

// ArticlesRepo keeps a local snapshot of the article corpus so the service
// can answer from a warm cache across restarts.
type ArticlesRepo struct {
	db *sql.DB
}

func NewArticlesRepo(db *sql.DB) *ArticlesRepo {
	return &ArticlesRepo{db: db}
}

// ReplaceAll swaps the whole snapshot in one transaction. The corpus is
// small; a full rewrite beats diffing against a moving upstream.
func (r *ArticlesRepo) ReplaceAll(ctx context.Context, articles []core.Article) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM articles`); err != nil {
		return fmt.Errorf("failed to clear articles: %w", err)
	}

	query := `INSERT INTO articles (id, title, introduction, cover, content) VALUES (?, ?, ?, ?, ?)`
	for _, a := range articles {
		intro, err := json.Marshal(a.Introduction)
		if err != nil {
			return fmt.Errorf("failed to marshal introduction: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, a.ID, a.Title, string(intro), a.Cover, a.Content); err != nil {
			return fmt.Errorf("failed to insert article %s: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

func (r *ArticlesRepo) GetAll(ctx context.Context) ([]core.Article, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, introduction, cover, content FROM articles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []core.Article
	for rows.Next() {
		var a core.Article
		var intro string
		if err := rows.Scan(&a.ID, &a.Title, &intro, &a.Cover, &a.Content); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		if intro != "" {
			if err := json.Unmarshal([]byte(intro), &a.Introduction); err != nil {
				return nil, fmt.Errorf("failed to unmarshal introduction: %w", err)
			}
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
