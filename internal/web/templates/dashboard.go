package templates

import (
	"github.com/a-h/templ"
)

// Dashboard lists every tool by group.
func Dashboard(sidebar SidebarParams) templ.Component {
	body := component(func(p *page) {
		p.raw(`<h1>COP30 Utils</h1><p>Escolha uma ferramenta:</p>`)
		for _, g := range sidebar.Groups {
			p.raw(`<section class="group"><h2>`)
			p.text(g.Name)
			p.raw(`</h2><div class="cards">`)
			for _, t := range g.Tools {
				p.raw(`<a class="card"`)
				p.attr("href", "/tools/"+t.Key)
				p.raw(`><h3>`)
				p.text(t.Label)
				p.raw(`</h3><p>`)
				p.text(t.Description)
				p.raw(`</p></a>`)
			}
			p.raw(`</div></section>`)
		}
	})
	return Layout("Início", sidebar, body)
}

// AboutPage renders the about text.
func AboutPage(sidebar SidebarParams, markdown string) templ.Component {
	body := component(func(p *page) {
		p.raw(`<article class="prose">`)
		p.render(Markdown(markdown))
		p.raw(`</article>`)
	})
	return Layout("Sobre", sidebar, body)
}
