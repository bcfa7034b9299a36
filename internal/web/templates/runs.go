package templates

import (
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/cop30utils/internal/audit"
	"github.com/JonMunkholm/cop30utils/internal/lines"
)

// RunsPage lists recent tool runs.
func RunsPage(sidebar SidebarParams, entries []audit.Entry) templ.Component {
	body := component(func(p *page) {
		p.raw(`<h1>Execuções recentes</h1>`)
		if len(entries) == 0 {
			notice(p, "Nenhuma execução registrada.")
			return
		}
		p.raw(`<table class="runs"><thead><tr><th>Quando</th><th>Ferramenta</th>`)
		p.raw(`<th>Entrada</th><th>Saída</th><th>Duração</th><th>Erro</th></tr></thead><tbody>`)
		for _, e := range entries {
			p.raw(`<tr><td>`)
			p.text(e.CreatedAt.Local().Format("02/01/2006 15:04:05"))
			p.raw(`</td><td>`)
			p.text(e.Tool)
			p.raw(`</td><td>`)
			p.text(strconv.Itoa(e.InputLines))
			p.raw(`</td><td>`)
			p.text(strconv.Itoa(e.OutputLines))
			p.raw(`</td><td>`)
			p.text(e.Duration.Round(time.Millisecond).String())
			p.raw(`</td><td>`)
			p.text(e.Error)
			p.raw(`</td></tr>`)
		}
		p.raw(`</tbody></table>`)
	})
	return Layout("Execuções", sidebar, body)
}

// lengthStats renders sort-by-length statistics when present.
func lengthStats(p *page, stats any) {
	st, ok := stats.(lines.LengthStats)
	if !ok || st.Count == 0 {
		return
	}
	p.raw(`<dl class="stats"><dt>Linhas</dt><dd>`)
	p.text(strconv.Itoa(st.Count))
	p.raw(`</dd><dt>Menor</dt><dd>`)
	p.text(strconv.FormatFloat(st.Min, 'f', 0, 64))
	p.raw(`</dd><dt>Maior</dt><dd>`)
	p.text(strconv.FormatFloat(st.Max, 'f', 0, 64))
	p.raw(`</dd><dt>Média</dt><dd>`)
	p.text(strconv.FormatFloat(st.Mean, 'f', 1, 64))
	p.raw(`</dd><dt>Mediana</dt><dd>`)
	p.text(strconv.FormatFloat(st.Median, 'f', 1, 64))
	p.raw(`</dd></dl>`)
}
