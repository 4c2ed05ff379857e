package articles

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/campusbot/internal/core"
)

// Client fetches the corpus from the campus article backend.
type Client struct {
	client  *http.Client
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

// FetchAll retrieves every published article. The backend returns a bare
// JSON array.
func (c *Client) FetchAll(ctx context.Context) ([]core.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/articles/all", nil)
	if err != nil {
		return nil, &core.SearchError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", core.AppUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &core.SearchError{Err: fmt.Errorf("request: %w", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &core.SearchError{Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &core.SearchError{Err: fmt.Errorf("http %d: %s", resp.StatusCode, string(data))}
	}

	var articles []core.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, &core.SearchError{Err: fmt.Errorf("decode: %w", err)}
	}
	return articles, nil
}
