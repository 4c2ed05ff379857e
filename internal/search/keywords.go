package search

import "strings"

// importantTerms are domain compounds matched verbatim before the sliding
// n-gram pass, so that e.g. 高等数学 survives as one keyword instead of only
// its bigram fragments.
var importantTerms = []string{
	"高等数学", "高数", "数学", "微积分", "线性代数", "概率论", "统计学",
	"前端开发", "后端开发", "编程", "算法", "数据结构",
	"学习", "复习", "笔记", "教程", "指南", "方法",
	"文章", "资料", "材料", "内容",
}

// synonyms is symmetric: listing B under A implies the reverse lookup is
// also checked at match time.
var synonyms = map[string][]string{
	"高数":   {"高等数学", "数学", "微积分"},
	"高等数学": {"高数", "数学", "微积分"},
	"数学":   {"高数", "高等数学", "微积分"},
	"复习":   {"学习", "笔记", "教程"},
	"学习":   {"复习", "笔记", "教程"},
	"笔记":   {"复习", "学习", "教程"},
	"前端":   {"前端开发", "frontend", "web开发"},
	"前端开发": {"前端", "frontend", "web开发"},
}

func isCJK(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

func isASCIIWord(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_'
}

func isASCIILetter(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// cleanText lowercases the input and blanks out everything that is neither
// an ASCII word character, whitespace, nor a CJK ideograph.
func cleanText(text string) string {
	lower := strings.ToLower(text)
	return strings.Map(func(r rune) rune {
		switch {
		case isASCIIWord(r), isCJK(r):
			return r
		case r == ' ', r == '\t', r == '\n', r == '\r':
			return r
		default:
			return ' '
		}
	}, lower)
}

// ExtractKeywords turns arbitrary mixed-script text into a deduplicated list
// of candidate terms. The pass is deliberately permissive: CJK runs are
// over-generated as bigrams and trigrams and the scoring stage absorbs the
// noise through containment matching.
func ExtractKeywords(text string) []string {
	clean := cleanText(text)

	seen := make(map[string]bool)
	var keywords []string
	add := func(kw string) {
		if kw != "" && !seen[kw] {
			seen[kw] = true
			keywords = append(keywords, kw)
		}
	}

	// Curated compounds first.
	for _, term := range importantTerms {
		if strings.Contains(clean, term) {
			add(term)
		}
	}

	// Sliding bigram/trigram window over every maximal CJK run.
	runes := []rune(clean)
	for _, size := range []int{2, 3} {
		for i := 0; i+size <= len(runes); i++ {
			ok := true
			for _, r := range runes[i : i+size] {
				if !isCJK(r) {
					ok = false
					break
				}
			}
			if ok {
				add(string(runes[i : i+size]))
			}
		}
	}

	// Alphabetic tokens from the non-CJK remainder.
	for _, word := range strings.Fields(clean) {
		if len(word) < 2 {
			continue
		}
		alpha := true
		for _, r := range word {
			if !isASCIILetter(r) {
				alpha = false
				break
			}
		}
		if alpha {
			add(word)
		}
	}

	return keywords
}

// similarWord reports whether two keywords are equal or listed as synonyms
// of each other.
func similarWord(a, b string) bool {
	if a == b {
		return true
	}
	for _, s := range synonyms[a] {
		if s == b {
			return true
		}
	}
	for _, s := range synonyms[b] {
		if s == a {
			return true
		}
	}
	return false
}
