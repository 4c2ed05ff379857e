package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/sandevgo/campusbot/internal/core"
	"github.com/sandevgo/campusbot/pkg/conv"
	"github.com/sandevgo/campusbot/pkg/log"
)

// relevanceThreshold discards articles whose normalized score does not
// exceed it. 0.05 keeps single-bigram content matches on short queries while
// still dropping pure noise.
const relevanceThreshold = 0.05

// articleLinkBase is the relative path recommendations link to.
const articleLinkBase = "/smartcampus/articles"

// Field weights. A query keyword contributes once, through the highest
// priority field that matches it.
const (
	titleWeight   = 3
	labelWeight   = 2
	contentWeight = 1
)

// indexed caches the per-field keyword sets of one article so a search call
// does not re-extract them per query keyword.
type indexed struct {
	article core.Article
	title   []string
	label   []string
	content []string
}

// Engine scores a replaceable in-memory article collection against query
// keywords. Safe for concurrent use.
type Engine struct {
	mu       sync.RWMutex
	articles []indexed
}

func NewEngine() *Engine {
	return &Engine{}
}

// UpdateArticles replaces the whole indexed collection. Article content is
// normalized from Markdown to plain text before extraction so markup never
// leaks into keywords.
func (e *Engine) UpdateArticles(articles []core.Article) {
	idx := make([]indexed, 0, len(articles))
	for _, a := range articles {
		idx = append(idx, indexed{
			article: a,
			title:   ExtractKeywords(a.Title),
			label:   ExtractKeywords(a.Introduction.Label),
			content: ExtractKeywords(conv.MarkdownToPlainText([]byte(a.Content))),
		})
	}

	e.mu.Lock()
	e.articles = idx
	e.mu.Unlock()
}

// ArticleCount reports how many articles are currently indexed.
func (e *Engine) ArticleCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.articles)
}

// searchTriggers short-circuit the gate: any hit means the query plausibly
// asks for reading material.
var searchTriggers = []string{
	// action words
	"推荐", "文章", "学习", "复习", "教程", "指南", "方法", "查询", "检索", "搜索", "找", "寻找",
	"如何", "怎么", "什么是", "告诉我", "介绍", "解释", "有关", "关于", "相关",
	// subject words
	"高数", "数学", "编程", "算法", "前端", "后端", "高等数学", "微积分", "线性代数",
	// content words
	"笔记", "资料", "材料", "内容",
}

var questionMarkers = []string{"?", "？", "什么", "如何", "怎么"}

// ShouldSearch is a cheap gate that decides whether running the scorer is
// worth it for this query at all.
func (e *Engine) ShouldSearch(query string) bool {
	lower := strings.ToLower(query)

	for _, trigger := range searchTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}

	// Long interrogative queries trigger a search even without an explicit
	// content word.
	if len([]rune(lower)) > 10 {
		for _, marker := range questionMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
	}

	return false
}

// Search ranks the indexed articles against the query and returns at most
// limit results, best first. Results never carry a score at or below the
// relevance threshold.
func (e *Engine) Search(ctx context.Context, query string, limit int) []core.SearchResult {
	logger := log.FromCtx(ctx)
	if strings.TrimSpace(query) == "" {
		return nil
	}

	e.mu.RLock()
	articles := e.articles
	e.mu.RUnlock()

	if len(articles) == 0 {
		return nil
	}

	queryKeywords := ExtractKeywords(query)
	if len(queryKeywords) == 0 {
		return nil
	}

	logger.Debug().
		Strs("keywords", queryKeywords).
		Int("articles", len(articles)).
		Msg("scoring articles")

	var results []core.SearchResult
	for _, idx := range articles {
		score, matched := scoreArticle(queryKeywords, idx)
		if score > relevanceThreshold {
			results = append(results, core.SearchResult{
				Article:         idx.article,
				RelevanceScore:  score,
				MatchedKeywords: matched,
			})
		}
	}

	// Stable keeps original collection order on score ties.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	logger.Debug().Int("results", len(results)).Msg("article search done")
	return results
}

// scoreArticle sums field weights over the query keywords and normalizes by
// the maximum possible score. Matching is containment in either direction,
// widened by the synonym table; title beats label beats content.
func scoreArticle(queryKeywords []string, idx indexed) (float64, []string) {
	score := 0
	seen := make(map[string]bool)
	var matched []string

	for _, qk := range queryKeywords {
		switch {
		case fieldMatches(qk, idx.title):
			score += titleWeight
		case fieldMatches(qk, idx.label):
			score += labelWeight
		case fieldMatches(qk, idx.content):
			score += contentWeight
		default:
			continue
		}
		if !seen[qk] {
			seen[qk] = true
			matched = append(matched, qk)
		}
	}

	normalized := float64(score) / float64(titleWeight*len(queryKeywords))
	return math.Min(1, normalized), matched
}

func fieldMatches(queryWord string, fieldKeywords []string) bool {
	for _, fk := range fieldKeywords {
		if strings.Contains(fk, queryWord) || strings.Contains(queryWord, fk) || similarWord(queryWord, fk) {
			return true
		}
	}
	return false
}

// FormatRecommendations renders ranked results as the Markdown block that
// gets appended to a reply. Empty input yields an empty string, which
// callers treat as "no recommendation section".
func FormatRecommendations(results []core.SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n📚 **相关文章推荐**：\n\n")

	for i, r := range results {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, r.Article.Title)
		fmt.Fprintf(&b, "   📝 %s\n", r.Article.Introduction.Label)
		fmt.Fprintf(&b, "   👤 作者：%s\n", r.Article.Introduction.Author)
		fmt.Fprintf(&b, "   🎯 匹配关键词：%s\n", strings.Join(r.MatchedKeywords, ", "))
		fmt.Fprintf(&b, "   📊 相关度：%d%%\n", int(math.Round(r.RelevanceScore*100)))
		fmt.Fprintf(&b, "   🔗 [点击查看文章](%s/%s)\n\n", articleLinkBase, r.Article.ID)
	}

	return b.String()
}
