package answer

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/sandevgo/campusbot/internal/core"
	"github.com/sandevgo/campusbot/internal/topic"
	"github.com/sandevgo/campusbot/pkg/conv"
)

// promptTokenBudget bounds the whole provider prompt. History turns are
// dropped oldest-first until the prompt fits.
const promptTokenBudget = 3000

// articleExcerptRunes caps how much of each article body enters the prompt.
const articleExcerptRunes = 300

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// countTokens estimates prompt size with the cl100k tokenizer. When the
// encoding is unavailable (offline start) it falls back to a rune heuristic
// that overestimates CJK-heavy text, which only trims history earlier.
func countTokens(text string) int {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			encoding = enc
		}
	})
	if encoding == nil {
		return len([]rune(text))
	}
	return len(encoding.Encode(text, nil, nil))
}

func buildSystemPrompt(t string, results []core.SearchResult) string {
	var b strings.Builder
	b.WriteString("你是")
	b.WriteString(core.AppName)
	b.WriteString("，一个面向校园学习场景的智能问答助手。请用简体中文回答，内容要准确、有条理，适当使用 Markdown 结构组织长回答。")
	b.WriteString("\n\n")
	b.WriteString(topic.Context(t))

	if len(results) > 0 {
		b.WriteString("\n\n以下校内文章可能与问题相关，回答时可以参考其中的内容：\n")
		for _, r := range results {
			b.WriteString("\n### ")
			b.WriteString(r.Article.Title)
			b.WriteString("\n")
			b.WriteString(truncateRunes(conv.MarkdownToPlainText([]byte(r.Article.Content)), articleExcerptRunes))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// BuildPrompt assembles the provider message sequence: system context, the
// most recent exchanges as user/assistant pairs, then the current query.
func BuildPrompt(t string, results []core.SearchResult, recent []core.ConversationEntry, query string) []core.Message {
	system := core.Message{Role: core.RoleSystem, Content: buildSystemPrompt(t, results)}
	user := core.Message{Role: core.RoleUser, Content: query}

	var turns []core.Message
	for _, entry := range recent {
		turns = append(turns,
			core.Message{Role: core.RoleUser, Content: entry.Query},
			core.Message{Role: core.RoleAssistant, Content: entry.Reply},
		)
	}

	total := func(msgs []core.Message) int {
		n := 0
		for _, m := range msgs {
			n += countTokens(m.Content)
		}
		return n
	}

	msgs := append(append([]core.Message{system}, turns...), user)
	for total(msgs) > promptTokenBudget && len(turns) >= 2 {
		turns = turns[2:]
		msgs = append(append([]core.Message{system}, turns...), user)
	}
	return msgs
}
