package stream

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentsRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"你好",
		"你好，世界。这是一个测试句子，它比较长。",
		"Learning Go is fun and rewarding",
		"# 标题\n\n正文第一句。正文第二句比较长一些。\n\n1. 第一步\n2. 第二步",
		"```go\nfunc main() {}\n```",
		"| 特性 | React | Vue |\n|------|-------|-----|\n| 学习曲线 | 中 | 低 |",
		"前端框架对比：React 使用 JSX，Vue 使用模板语法。\n\n📚 **相关文章推荐**：\n\n🎯 匹配关键词：react, vue\n📊 相关度：85%",
		"行尾有空格 \n  \n下一段",
		"ThisIsOneVeryLongUnbrokenTokenWithoutAnySeparators",
	}

	for _, input := range inputs {
		assert.Equal(t, input, strings.Join(Fragments(input), ""), "input %q", input)
	}
}

func TestFragmentsEmpty(t *testing.T) {
	assert.Nil(t, Fragments(""))
}

func TestFragmentsCJKProse(t *testing.T) {
	got := Fragments("你好，世界。这是一个测试句子，它比较长。")

	require.Equal(t, []string{
		"你好，世界。",
		"这是一个测试句子，",
		"它比较长。",
	}, got)
}

func TestFragmentsLatinProse(t *testing.T) {
	got := Fragments("Learning Go is fun and rewarding")

	require.Equal(t, []string{
		"Learning Go ",
		"is fun and ",
		"rewarding",
	}, got)
}

func TestFragmentsStructuralLinesStayWhole(t *testing.T) {
	got := Fragments("# 标题\n\n1. 第一步\n2. 第二步")

	require.Equal(t, []string{
		"# 标题\n",
		"\n",
		"1. 第一步\n",
		"2. 第二步",
	}, got)
}

func TestFragmentsCodeFenceDelimitersStayWhole(t *testing.T) {
	got := Fragments("```go\nx := 1\n```")

	require.Equal(t, []string{
		"```go\n",
		"x := 1\n",
		"```",
	}, got)
}

func TestFragmentsNeverStartWithSeparator(t *testing.T) {
	got := Fragments("第一句。第二句！第三句？第四句；这里还有很长很长的一段继续说下去。")

	for _, f := range got {
		first := []rune(f)[0]
		assert.False(t, isSeparator(first), "fragment %q starts with a separator", f)
	}
}

func TestFragmentsSizeBound(t *testing.T) {
	text := "今天天气很好，适合出去走走，顺便买一杯咖啡，然后回来继续写代码，晚上再看一部电影放松一下。"

	for _, f := range Fragments(text) {
		// A fragment may carry trailing punctuation past the bound, but its
		// leading prose run never exceeds bound plus one separator run.
		core := strings.TrimRightFunc(f, isSeparator)
		assert.LessOrEqual(t, len([]rune(core)), chunkSizeBound, "fragment %q", f)
	}
}

func TestFragmentsMarkerLinesStayWhole(t *testing.T) {
	text := "📚 **相关文章推荐**：\n\n🎯 匹配关键词：数学, 笔记, 学习方法长长长\n📊 相关度：85%"
	got := Fragments(text)

	require.Equal(t, []string{
		"📚 **相关文章推荐**：\n",
		"\n",
		"🎯 匹配关键词：数学, 笔记, 学习方法长长长\n",
		"📊 相关度：85%",
	}, got)
}

func TestClassifyLine(t *testing.T) {
	cases := []struct {
		line string
		want LineKind
	}{
		{"", LineBlank},
		{"   ", LineBlank},
		{"\t", LineBlank},
		{"# 标题", LineHeading},
		{"###### deep", LineHeading},
		{"####### too deep", LinePlain},
		{"#nospace", LinePlain},
		{"- item", LineListItem},
		{"* item", LineListItem},
		{"+ item", LineListItem},
		{"  - nested", LineListItem},
		{"1. first", LineListItem},
		{"12. twelfth", LineListItem},
		{"1.nospace", LinePlain},
		{"-dash-word", LinePlain},
		{"> 引用", LineQuote},
		{"  > nested quote", LineQuote},
		{">no space", LinePlain},
		{"```", LineCodeFence},
		{"```python", LineCodeFence},
		{"| a | b |", LineTableRow},
		{"|---|---|", LineTableRow},
		{"---", LineRule},
		{"-----", LineRule},
		{"--", LinePlain},
		{"📚 **相关文章推荐**：", LineMarker},
		{"🔗 [点击查看文章](/smartcampus/articles/1)", LineMarker},
		{"普通的一句话。", LinePlain},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyLine(tc.line), "line %q", tc.line)
	}
}
