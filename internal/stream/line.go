package stream

import "strings"

// LineKind tags what a reply line is, structurally. Structural lines are
// emitted as whole fragments because sub-line chunking would corrupt their
// Markdown rendering.
type LineKind int

const (
	LinePlain LineKind = iota
	LineBlank
	LineHeading
	LineListItem
	LineQuote
	LineCodeFence
	LineTableRow
	LineRule
	LineMarker
)

// markerGlyphs open the lines of a recommendation block; those lines are
// kept intact as well.
var markerGlyphs = []string{"📚", "🎯", "📝", "📊", "🔗"}

// ClassifyLine inspects one newline-free line with independent predicate
// checks. First hit wins; anything unrecognized is plain prose.
func ClassifyLine(line string) LineKind {
	if strings.TrimSpace(line) == "" {
		return LineBlank
	}

	switch {
	case isHeading(line):
		return LineHeading
	case isListItem(line):
		return LineListItem
	case isQuote(line):
		return LineQuote
	case strings.HasPrefix(line, "```"):
		return LineCodeFence
	case isTableRow(line):
		return LineTableRow
	case isRule(line):
		return LineRule
	case isMarkerLine(line):
		return LineMarker
	}
	return LinePlain
}

func isHeading(line string) bool {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return false
	}
	return n < len(line) && (line[n] == ' ' || line[n] == '\t')
}

func isListItem(line string) bool {
	rest := strings.TrimLeft(line, " \t")
	if rest == "" {
		return false
	}

	// Unordered: -, * or + followed by whitespace.
	if rest[0] == '-' || rest[0] == '*' || rest[0] == '+' {
		return len(rest) > 1 && (rest[1] == ' ' || rest[1] == '\t')
	}

	// Ordered: digits, a dot, then whitespace.
	n := 0
	for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
		n++
	}
	if n == 0 || n >= len(rest) || rest[n] != '.' {
		return false
	}
	return n+1 < len(rest) && (rest[n+1] == ' ' || rest[n+1] == '\t')
}

func isQuote(line string) bool {
	rest := strings.TrimLeft(line, " \t")
	return len(rest) > 1 && rest[0] == '>' && (rest[1] == ' ' || rest[1] == '\t')
}

func isTableRow(line string) bool {
	return len(line) > 1 && line[0] == '|' && strings.Contains(line[1:], "|")
}

func isRule(line string) bool {
	if len(line) < 3 {
		return false
	}
	for i := 0; i < len(line); i++ {
		if line[i] != '-' {
			return false
		}
	}
	return true
}

func isMarkerLine(line string) bool {
	for _, glyph := range markerGlyphs {
		if strings.HasPrefix(line, glyph) {
			return true
		}
	}
	return false
}
