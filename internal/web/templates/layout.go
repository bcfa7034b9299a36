package templates

import (
	"github.com/a-h/templ"

	"github.com/JonMunkholm/cop30utils/internal/core"
)

// ToolGroup is a dashboard section.
type ToolGroup struct {
	Name  string
	Tools []core.ToolInfo
}

// SidebarParams controls the navigation shown around every page.
type SidebarParams struct {
	ActivePage string // "dashboard", "about", "runs", or "" on tool pages
	ActiveTool string
	Groups     []ToolGroup
}

// Layout wraps body in the page shell.
func Layout(title string, sidebar SidebarParams, body templ.Component) templ.Component {
	return component(func(p *page) {
		p.raw(`<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw(`<title>`)
		p.text(title)
		p.raw(` · COP30 Utils</title><link rel="stylesheet" href="/static/app.css"></head><body>`)

		p.raw(`<nav class="sidebar"><a class="brand" href="/">COP30 Utils</a><ul>`)
		navLink(p, "/", "Início", sidebar.ActivePage == "dashboard")
		for _, g := range sidebar.Groups {
			p.raw(`<li class="nav-group">`)
			p.text(g.Name)
			p.raw(`</li>`)
			for _, t := range g.Tools {
				navLink(p, "/tools/"+t.Key, t.Label, sidebar.ActiveTool == t.Key)
			}
		}
		navLink(p, "/runs", "Execuções", sidebar.ActivePage == "runs")
		navLink(p, "/about", "Sobre", sidebar.ActivePage == "about")
		p.raw(`</ul></nav>`)

		p.raw(`<main class="content">`)
		p.render(body)
		p.raw(`</main><script src="/static/app.js" defer></script></body></html>`)
	})
}

func navLink(p *page, href, label string, active bool) {
	p.raw(`<li><a`)
	p.attr("href", href)
	if active {
		p.raw(` class="active"`)
	}
	p.raw(`>`)
	p.text(label)
	p.raw(`</a></li>`)
}

// ErrorAlert renders a user-facing error box.
func ErrorAlert(message, action, code string) templ.Component {
	return component(func(p *page) {
		p.raw(`<div class="alert alert-error" role="alert"><strong>`)
		p.text(message)
		p.raw(`</strong>`)
		if action != "" {
			p.raw(`<p>`)
			p.text(action)
			p.raw(`</p>`)
		}
		if code != "" {
			p.raw(`<small>Código: `)
			p.text(code)
			p.raw(`</small>`)
		}
		p.raw(`</div>`)
	})
}

func errorAlert(p *page, msg *core.UserMessage) {
	if msg != nil {
		p.render(ErrorAlert(msg.Message, msg.Action, msg.Code))
	}
}

func notice(p *page, text string) {
	if text != "" {
		p.raw(`<div class="alert alert-info">`)
		p.text(text)
		p.raw(`</div>`)
	}
}

// ErrorPage renders a full page around an error, for failures outside a
// tool form.
func ErrorPage(sidebar SidebarParams, msg core.UserMessage) templ.Component {
	return Layout("Erro", sidebar, ErrorAlert(msg.Message, msg.Action, msg.Code))
}
