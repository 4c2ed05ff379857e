package stream

import (
	"strings"
	"unicode"
)

// chunkSizeBound is the soft ceiling, in runes, of a plain-text fragment.
// Buffers flush before exceeding it so CJK runs are never cut mid-character
// and Latin words never split at an arbitrary byte offset.
const chunkSizeBound = 12

// separator runes delimit plain prose into segments. Separator runs travel
// with the preceding buffer so punctuation never starts a fragment.
var separatorRunes = map[rune]bool{
	'，': true, '。': true, '！': true, '？': true, '；': true, '：': true,
	'“': true, '”': true, '‘': true, '’': true,
	'（': true, '）': true, '【': true, '】': true, '《': true, '》': true, '、': true,
}

func isSeparator(r rune) bool {
	return separatorRunes[r] || unicode.IsSpace(r)
}

// Fragments splits a finished reply into its ordered transmission fragments.
// The function is pure: the same input always yields the same sequence, and
// concatenating the sequence reconstructs the input exactly. Structural
// lines (per ClassifyLine) are never subdivided.
func Fragments(text string) []string {
	if text == "" {
		return nil
	}

	var fragments []string
	push := func(f string) {
		if f != "" {
			fragments = append(fragments, f)
		}
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		suffix := ""
		if i < len(lines)-1 {
			suffix = "\n"
		}

		kind := ClassifyLine(line)
		if kind != LinePlain {
			// Blank and structural lines go out whole.
			push(line + suffix)
			continue
		}

		var buf []rune
		flush := func() {
			push(string(buf))
			buf = buf[:0]
		}

		for _, segment := range splitSegments(line) {
			if isSeparator([]rune(segment)[0]) {
				buf = append(buf, []rune(segment)...)
				continue
			}

			seg := []rune(segment)
			if len(buf) > 0 && len(buf)+len(seg) > chunkSizeBound {
				flush()
			}
			buf = append(buf, seg...)
		}

		push(string(buf) + suffix)
	}

	return fragments
}

// splitSegments partitions a line into maximal runs of separator and
// non-separator runes, preserving every rune.
func splitSegments(line string) []string {
	var segments []string
	var current []rune
	var currentSep bool

	for _, r := range line {
		sep := isSeparator(r)
		if len(current) > 0 && sep != currentSep {
			segments = append(segments, string(current))
			current = current[:0]
		}
		current = append(current, r)
		currentSep = sep
	}
	if len(current) > 0 {
		segments = append(segments, string(current))
	}
	return segments
}
