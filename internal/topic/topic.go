package topic

import (
	"math"
	"strings"
	"unicode/utf8"
)

const Default = "general"

// entry binds a topic to its trigger terms. Classification walks entries in
// declaration order and the first containment hit wins, so the order below is
// part of the contract: specific topics come before the catch-all general
// bucket.
type entry struct {
	Topic    string
	Keywords []string
}

var table = []entry{
	{
		Topic: "programming",
		Keywords: []string{
			"编程", "代码", "开发", "程序", "软件", "算法", "数据结构",
			"JavaScript", "TypeScript", "React", "Next.js", "Node.js",
		},
	},
	{
		Topic: "ai",
		Keywords: []string{
			"人工智能", "AI", "机器学习", "深度学习", "神经网络", "LLM", "GPT",
		},
	},
	{
		Topic: "web",
		Keywords: []string{
			"网站", "前端", "后端", "全栈", "HTML", "CSS", "数据库", "API",
		},
	},
	{
		Topic: "general",
		Keywords: []string{
			"学习", "工作", "生活", "建议", "帮助", "问题", "解决",
		},
	},
}

// contexts holds the per-topic knowledge blurbs used both for template
// replies and as provider system instructions.
var contexts = map[string]string{
	"programming": `作为一个编程助手，我可以帮助你解决各种编程问题，包括：
- 代码调试和优化
- 技术选型建议
- 最佳实践指导
- 框架和库的使用
- 性能优化建议`,

	"ai": `关于人工智能和机器学习，我可以为你提供：
- AI 技术概念解释
- 机器学习算法介绍
- 深度学习框架使用
- AI 应用场景分析
- 技术发展趋势讨论`,

	"web": `在 Web 开发方面，我能够协助你：
- 前端技术栈选择
- 后端架构设计
- 数据库设计优化
- API 接口设计
- 性能和安全优化`,

	"general": `我是你的智能助手，可以在以下方面为你提供帮助：
- 学习方法和计划制定
- 工作效率提升建议
- 问题分析和解决思路
- 日常生活建议
- 各类知识问答`,
}

// Classify maps a query onto a topic label by naive substring containment
// against the trigger table. Unmatched queries fall back to Default.
func Classify(query string) string {
	lower := strings.ToLower(query)
	for _, e := range table {
		for _, kw := range e.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return e.Topic
			}
		}
	}
	return Default
}

// Confidence derives a [0.3, 0.95] score for a (query, topic) pair from
// trigger-term density and query length. Long queries are usually more
// specific, hence the capped length bonus.
func Confidence(query, topic string) float64 {
	lower := strings.ToLower(query)

	matchCount := 0
	for _, kw := range keywordsFor(topic) {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matchCount++
		}
	}

	const base = 0.3
	keywordBonus := float64(matchCount) * 0.15
	lengthBonus := math.Min(0.2, float64(utf8.RuneCountInString(query))/500)

	return math.Min(0.95, base+keywordBonus+lengthBonus)
}

// Context returns the knowledge blurb for a topic, defaulting to the general
// one for unknown labels.
func Context(topic string) string {
	if c, ok := contexts[topic]; ok {
		return c
	}
	return contexts[Default]
}

func keywordsFor(topic string) []string {
	for _, e := range table {
		if e.Topic == topic {
			return e.Keywords
		}
	}
	return nil
}
