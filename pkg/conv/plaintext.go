package conv

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags
	policy     = bluemonday.UGCPolicy()
)

// MarkdownToPlainText renders Markdown (possibly containing raw HTML) down to
// plain text suitable for keyword extraction. Formatting, links and embedded
// markup are discarded; the textual content is kept.
func MarkdownToPlainText(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	unsafeHTML := markdown.Render(p.Parse(md), renderer)

	sanitized := policy.SanitizeBytes(unsafeHTML)

	text, err := html2text.FromString(string(sanitized), html2text.Options{OmitLinks: true, TextOnly: true})
	if err != nil {
		// html2text only fails on malformed parse trees; the sanitized
		// input is already valid HTML, but fall back to it just in case.
		return strings.TrimSpace(string(sanitized))
	}
	return strings.TrimSpace(text)
}
