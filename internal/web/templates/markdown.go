package templates

import (
	"github.com/a-h/templ"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown renders trusted markdown (tool help, the about page) as HTML.
func Markdown(src string) templ.Component {
	// Parsers hold state and cannot be reused.
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return templ.Raw(string(markdown.ToHTML([]byte(src), p, r)))
}
