package answer

import (
	"math/rand"
	"strings"

	"github.com/sandevgo/campusbot/internal/topic"
)

// EmptyQueryReply is returned for blank input without touching the pipeline.
const EmptyQueryReply = "请输入你的问题，我会尽力为你解答。你可以问我关于编程、AI、Web开发或其他任何你感兴趣的话题。"

// responseCandidates are the canned openers per topic. The reply for a
// given topic is always drawn from its fixed candidate set.
var responseCandidates = map[string][]string{
	"greeting": {
		"你好！我是你的智能助手，专注于为你提供高质量的问答服务。有什么我可以帮助你的吗？",
		"欢迎使用智能助手！我在这里为你解答各种问题，提供专业建议。",
		"你好！很高兴为你服务。请告诉我你需要什么帮助，我会尽我所能为你解答。",
	},
	"programming": {
		"这是一个很好的编程问题！让我为你详细分析...",
		"在编程领域，这个问题确实值得深入探讨...",
		"作为你的编程助手，我来帮你解决这个技术问题...",
	},
	"ai": {
		"人工智能是一个fascinating的领域！关于你的问题...",
		"在AI和机器学习方面，我可以为你提供以下见解...",
		"这是一个很有前瞻性的AI问题，让我来分析一下...",
	},
	"web": {
		"Web开发是我的专长之一！针对你的问题...",
		"在现代Web开发中，这确实是一个重要的考虑因素...",
		"让我从全栈开发的角度来回答你的问题...",
	},
	"general": {
		"这是一个很有意思的问题，让我来为你分析...",
		"基于我的理解，我认为可以从以下几个方面来看这个问题...",
		"感谢你的提问！我来为你提供一些有用的见解...",
	},
}

const stepsBlock = "1. **分析需求**: 首先明确你想要达到的目标\n" +
	"2. **制定计划**: 将大问题分解为小的可执行步骤\n" +
	"3. **实施方案**: 逐步执行并监控进展\n" +
	"4. **优化改进**: 根据结果调整和优化方案\n\n"

const conceptBlock = "关于你询问的概念，让我为你详细解释：\n\n" +
	"这个问题涉及到多个方面的知识，我会尽量用通俗易懂的方式来说明。\n\n"

const compareBlock = "让我为你详细比较这些概念的异同：\n\n" +
	"我会从多个维度来分析，帮助你更好地理解它们的特点和适用场景。\n\n"

const closingLine = "如果你需要更具体的指导或有其他相关问题，请随时告诉我！我会根据你的具体情况提供更有针对性的建议。"

// Candidates exposes the fixed opener set for a topic.
func Candidates(t string) []string {
	if c, ok := responseCandidates[t]; ok {
		return c
	}
	return responseCandidates["general"]
}

// TemplateReply builds the offline answer for a query. It always works and
// is the fallback whenever the generation provider is missing or failing.
func TemplateReply(rng *rand.Rand, query, t string) string {
	candidates := Candidates(t)
	base := candidates[rng.Intn(len(candidates))]

	long := len([]rune(query)) > 20
	pattern := patternBlock(query)

	var b strings.Builder
	b.WriteString(base)

	if long {
		b.WriteString("\n\n")
		b.WriteString(topic.Context(t))
		b.WriteString("\n\n")
	}
	if pattern != "" {
		if !long {
			b.WriteString("\n\n")
		}
		b.WriteString(pattern)
	}
	if long || pattern != "" {
		b.WriteString(closingLine)
	}
	return b.String()
}

// patternBlock picks the advice section for the query shape. How-to wins
// over concept and comparison when several markers appear.
func patternBlock(query string) string {
	switch {
	case strings.Contains(query, "如何") || strings.Contains(query, "怎么"):
		return "针对\"" + truncateRunes(query, 100) + "\"这个问题，我建议采用以下步骤：\n\n" + stepsBlock
	case strings.Contains(query, "什么"):
		return conceptBlock
	case strings.Contains(query, "比较") || strings.Contains(query, "区别"):
		return compareBlock
	}
	return ""
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
