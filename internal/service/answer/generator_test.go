package answer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/campusbot/internal/config"
	"github.com/sandevgo/campusbot/internal/core"
	"github.com/sandevgo/campusbot/internal/service/history"
)

type stubProvider struct {
	completion core.Completion
	err        error
	gotPrompt  []core.Message
}

func (s *stubProvider) Generate(ctx context.Context, messages []core.Message) (core.Completion, error) {
	s.gotPrompt = messages
	if s.err != nil {
		return core.Completion{}, s.err
	}
	return s.completion, nil
}

type stubSource struct {
	articles []core.Article
	err      error
}

func (s *stubSource) FetchAll(ctx context.Context) ([]core.Article, error) {
	return s.articles, s.err
}

func enabledConfig() *config.ServiceConfig {
	return &config.ServiceConfig{Enabled: true, MaxTokens: 2000, Temperature: 0.7}
}

func TestProcessQueryDisabled(t *testing.T) {
	g := NewGenerator(&config.ServiceConfig{Enabled: false}, nil, nil, history.NewStore(), 5)

	_, err := g.ProcessQuery(context.Background(), "你好")
	assert.ErrorIs(t, err, core.ErrServiceDisabled)
}

func TestProcessQueryEmpty(t *testing.T) {
	store := history.NewStore()
	g := NewGenerator(enabledConfig(), nil, nil, store, 5)

	got, err := g.ProcessQuery(context.Background(), "   ")
	require.NoError(t, err)

	assert.Equal(t, EmptyQueryReply, got.Reply)
	assert.Equal(t, "general", got.Topic)
	assert.Equal(t, 1.0, got.Confidence)
	assert.Empty(t, store.History(), "guidance replies are not recorded")
	assert.Equal(t, 1, store.Stats().TotalRequests)
}

func TestProcessQueryGreeting(t *testing.T) {
	store := history.NewStore()
	g := NewGenerator(enabledConfig(), nil, nil, store, 5)

	got, err := g.ProcessQuery(context.Background(), "你好")
	require.NoError(t, err)

	assert.Equal(t, "general", got.Topic)
	assert.InDelta(t, 0.304, got.Confidence, 1e-9)
	assert.Contains(t, Candidates("general"), got.Reply)

	entries := store.History()
	require.Len(t, entries, 1)
	assert.Equal(t, "你好", entries[0].Query)
	assert.Equal(t, got.Reply, entries[0].Reply)
}

func TestProcessQueryProviderFailureFallsBack(t *testing.T) {
	provider := &stubProvider{err: errors.New("upstream busy")}
	g := NewGenerator(enabledConfig(), provider, nil, history.NewStore(), 5)

	got, err := g.ProcessQuery(context.Background(), "如何学习 React？")
	require.NoError(t, err, "provider failures must not surface")

	assert.Equal(t, "programming", got.Topic)
	assert.Contains(t, got.Reply, "1. **分析需求**")
	assert.Contains(t, got.Reply, "4. **优化改进**")
}

func TestProcessQueryProviderReply(t *testing.T) {
	provider := &stubProvider{completion: core.Completion{Content: "React 是一个前端库。", Model: "deepseek-chat"}}
	g := NewGenerator(enabledConfig(), provider, nil, history.NewStore(), 5)

	got, err := g.ProcessQuery(context.Background(), "如何学习 React？")
	require.NoError(t, err)

	assert.Equal(t, "React 是一个前端库。", got.Reply)

	require.NotEmpty(t, provider.gotPrompt)
	assert.Equal(t, core.RoleSystem, provider.gotPrompt[0].Role)
	assert.Equal(t, core.RoleUser, provider.gotPrompt[len(provider.gotPrompt)-1].Role)
	assert.Equal(t, "如何学习 React？", provider.gotPrompt[len(provider.gotPrompt)-1].Content)
}

func TestProcessQueryAppendsRecommendations(t *testing.T) {
	provider := &stubProvider{completion: core.Completion{Content: "可以从极限和导数开始复习。"}}
	source := &stubSource{articles: []core.Article{
		{
			ID:    "a1",
			Title: "高等数学学习笔记",
			Introduction: core.ArticleIntro{
				Author: "李明",
				Label:  "学习方法",
			},
			Content: "关于高等数学的学习笔记，覆盖极限、导数与积分。",
		},
	}}
	g := NewGenerator(enabledConfig(), provider, source, history.NewStore(), 5)

	got, err := g.ProcessQuery(context.Background(), "请你为我检索一下所有可能的高等数学学习笔记")
	require.NoError(t, err)

	assert.Contains(t, got.Reply, "可以从极限和导数开始复习。")
	assert.Contains(t, got.Reply, "📚 **相关文章推荐**：")
	assert.Contains(t, got.Reply, "**高等数学学习笔记**")
	assert.Contains(t, got.Reply, "👤 作者：李明")
	assert.Contains(t, got.Reply, "🔗 [点击查看文章](/smartcampus/articles/a1)")
}

func TestProcessQuerySourceFailureMeansNoRecommendations(t *testing.T) {
	source := &stubSource{err: errors.New("backend down")}
	g := NewGenerator(enabledConfig(), nil, source, history.NewStore(), 5)

	got, err := g.ProcessQuery(context.Background(), "请推荐一些高数学习资料")
	require.NoError(t, err)
	assert.NotContains(t, got.Reply, "相关文章推荐")
}

func TestProcessQueryHistoryTruncation(t *testing.T) {
	store := history.NewStore()
	g := NewGenerator(enabledConfig(), nil, nil, store, 5)

	for i := 0; i < 101; i++ {
		_, err := g.ProcessQuery(context.Background(), fmt.Sprintf("问题 %d", i))
		require.NoError(t, err)
	}

	stats := store.Stats()
	assert.Equal(t, 101, stats.TotalRequests)
	assert.Equal(t, 50, stats.ConversationCount)

	entries := store.History()
	assert.Equal(t, "问题 51", entries[0].Query)
	assert.Equal(t, "问题 100", entries[len(entries)-1].Query)
}

func TestBuildPromptIncludesHistoryPairs(t *testing.T) {
	recent := []core.ConversationEntry{
		{Query: "什么是闭包？", Reply: "闭包是函数与其词法环境的组合。"},
	}

	msgs := BuildPrompt("programming", nil, recent, "再举一个例子")

	require.Len(t, msgs, 4)
	assert.Equal(t, core.RoleSystem, msgs[0].Role)
	assert.Equal(t, core.RoleUser, msgs[1].Role)
	assert.Equal(t, "什么是闭包？", msgs[1].Content)
	assert.Equal(t, core.RoleAssistant, msgs[2].Role)
	assert.Equal(t, "再举一个例子", msgs[3].Content)
}
