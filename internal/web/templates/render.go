// Package templates holds the HTML components of the web UI.
//
// Components are plain templ.Component values built with templ.ComponentFunc,
// so handlers render them the same way as generated templ code:
//
//	templates.Dashboard(sidebar, groups).Render(ctx, w)
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// page accumulates HTML output and remembers the first write error.
type page struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newPage(ctx context.Context, w io.Writer) *page {
	return &page{ctx: ctx, w: w}
}

// raw writes trusted markup.
func (p *page) raw(parts ...string) {
	for _, s := range parts {
		if p.err != nil {
			return
		}
		_, p.err = io.WriteString(p.w, s)
	}
}

// text writes escaped text.
func (p *page) text(s string) {
	p.raw(templ.EscapeString(s))
}

// attr writes name="value" with value escaped.
func (p *page) attr(name, value string) {
	p.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (p *page) render(c templ.Component) {
	if p.err != nil || c == nil {
		return
	}
	p.err = c.Render(p.ctx, p.w)
}

func (p *page) checked(on bool) {
	if on {
		p.raw(" checked")
	}
}

func (p *page) selected(on bool) {
	if on {
		p.raw(" selected")
	}
}

func component(fn func(p *page)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPage(ctx, w)
		fn(p)
		return p.err
	})
}
