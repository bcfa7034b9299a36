package templates

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/cop30utils/internal/core"
	"github.com/JonMunkholm/cop30utils/internal/photozip"
)

// TextToolParams feeds the page of a single-textarea tool.
type TextToolParams struct {
	Tool   core.ToolInfo
	Input  string
	Result *core.TextResult
	Error  *core.UserMessage
}

// CompareParams feeds the compare-lists page.
type CompareParams struct {
	Tool   core.ToolInfo
	List1  string
	List2  string
	Result *core.CompareResult
	Error  *core.UserMessage
}

// DuplicatesParams feeds the spreadsheet duplicate page.
type DuplicatesParams struct {
	Tool           core.ToolInfo
	Mode           string
	Columns        string
	Header         string
	DefaultColumns []string
	Report         *core.DuplicateReport
	Error          *core.UserMessage
}

// GenderParams feeds the gender detection page.
type GenderParams struct {
	Tool            core.ToolInfo
	Input           string
	ShowProbability bool
	Enabled         bool
	Result          *core.GenderResult
	Error           *core.UserMessage
}

// PhotoZipParams feeds the photo ZIP page.
type PhotoZipParams struct {
	Tool        core.ToolInfo
	Names       string
	Silhouette  string
	Silhouettes []photozip.Silhouette
	Error       *core.UserMessage
}

func toolHeader(p *page, t core.ToolInfo) {
	p.raw(`<h1>`)
	p.text(t.Label)
	p.raw(`</h1><p class="lead">`)
	p.text(t.Description)
	p.raw(`</p>`)
	if t.Help != "" {
		p.raw(`<details class="help"><summary>Como usar</summary>`)
		p.render(Markdown(t.Help))
		p.raw(`</details>`)
	}
}

func formStart(p *page, t core.ToolInfo, multipart bool) {
	p.raw(`<form method="post"`)
	p.attr("action", "/tools/"+t.Key)
	if multipart {
		p.raw(` enctype="multipart/form-data"`)
	}
	p.raw(`>`)
}

func textarea(p *page, name, label, value string) {
	p.raw(`<label`)
	p.attr("for", name)
	p.raw(`>`)
	p.text(label)
	p.raw(`</label><textarea rows="12"`)
	p.attr("id", name)
	p.attr("name", name)
	p.raw(`>`)
	p.text(value)
	p.raw(`</textarea>`)
}

func buttons(p *page, submit string) {
	p.raw(`<div class="actions"><button type="submit" class="primary">`)
	p.text(submit)
	p.raw(`</button><button type="reset" data-clear>Limpar</button></div></form>`)
}

// output renders a read-only result box with a copy button.
func output(p *page, id, title string, lines []string) {
	p.raw(`<section class="output"><div class="output-head"><h2>`)
	p.text(title)
	p.raw(`</h2><span class="count">`)
	p.text(strconv.Itoa(len(lines)))
	p.raw(` linha(s)</span><button type="button"`)
	p.attr("data-copy", id)
	p.raw(`>Copiar</button></div><textarea readonly rows="12"`)
	p.attr("id", id)
	p.raw(`>`)
	p.text(strings.Join(lines, "\n"))
	p.raw(`</textarea></section>`)
}

// TextToolPage renders any text tool.
func TextToolPage(sidebar SidebarParams, params TextToolParams) templ.Component {
	body := component(func(p *page) {
		toolHeader(p, params.Tool)
		errorAlert(p, params.Error)

		formStart(p, params.Tool, false)
		textarea(p, "input", "Entrada", params.Input)
		buttons(p, "Converter")

		if r := params.Result; r != nil {
			notice(p, r.Notice)
			if len(r.Lines) > 0 {
				output(p, "output", "Resultado", r.Lines)
			}
			for i, sec := range r.Sections {
				output(p, "output-"+strconv.Itoa(i+1), sec.Title, sec.Lines)
			}
			lengthStats(p, r.Stats)
		}
	})
	return Layout(params.Tool.Label, sidebar, body)
}

// ComparePage renders the compare-lists tool.
func ComparePage(sidebar SidebarParams, params CompareParams) templ.Component {
	body := component(func(p *page) {
		toolHeader(p, params.Tool)
		errorAlert(p, params.Error)

		formStart(p, params.Tool, false)
		p.raw(`<div class="columns"><div>`)
		textarea(p, "list1", "Lista 1", params.List1)
		p.raw(`</div><div>`)
		textarea(p, "list2", "Lista 2", params.List2)
		p.raw(`</div></div>`)
		buttons(p, "Comparar")

		if r := params.Result; r != nil {
			notice(p, r.Notice)
			p.raw(`<div class="columns">`)
			output(p, "not-in-1", "Na Lista 2, fora da Lista 1", r.NotIn1)
			output(p, "not-in-2", "Na Lista 1, fora da Lista 2", r.NotIn2)
			output(p, "common", "Nas duas listas", r.Common)
			p.raw(`</div>`)
		}
	})
	return Layout(params.Tool.Label, sidebar, body)
}

// DuplicatesPage renders the spreadsheet duplicate finder.
func DuplicatesPage(sidebar SidebarParams, params DuplicatesParams) templ.Component {
	body := component(func(p *page) {
		toolHeader(p, params.Tool)
		errorAlert(p, params.Error)

		formStart(p, params.Tool, true)
		p.raw(`<label for="file">Planilha (.xlsx, .xls ou .csv)</label>`)
		p.raw(`<input type="file" id="file" name="file" accept=".xlsx,.xls,.csv,.txt" required>`)

		p.raw(`<fieldset><legend>Comparação</legend>`)
		radio(p, "mode", "full", "Linha inteira", params.Mode != "columns")
		radio(p, "mode", "columns", "Colunas", params.Mode == "columns")
		p.raw(`<label for="columns">Colunas (separadas por vírgula)</label><input type="text" id="columns" name="columns"`)
		p.attr("value", params.Columns)
		p.attr("placeholder", strings.Join(params.DefaultColumns, ", "))
		p.raw(`></fieldset>`)

		p.raw(`<fieldset><legend>Cabeçalho</legend>`)
		radio(p, "header", "included", "Incluído na comparação", params.Header == "" || params.Header == "included")
		radio(p, "header", "excluded", "Excluído da comparação", params.Header == "excluded")
		radio(p, "header", "none", "Sem cabeçalho", params.Header == "none")
		p.raw(`</fieldset>`)

		p.raw(`<label for="format">Resultado</label><select id="format" name="format">`)
		p.raw(`<option value="text" selected>Relatório na tela</option>`)
		p.raw(`<option value="xlsx">Baixar .xlsx</option><option value="csv">Baixar .csv</option></select>`)
		buttons(p, "Procurar duplicatas")

		if r := params.Report; r != nil {
			p.raw(`<p class="summary">`)
			p.text(r.Filename)
			p.raw(`: `)
			p.text(strconv.Itoa(r.TotalRows))
			p.raw(` linha(s) lidas, `)
			p.text(strconv.Itoa(len(r.Groups)))
			p.raw(` grupo(s) de duplicatas.</p>`)
			if len(r.Groups) == 0 {
				notice(p, "Nenhuma linha duplicada encontrada.")
			} else {
				output(p, "output", "Linhas duplicadas", strings.Split(r.Text(), "\n"))
			}
		}
	})
	return Layout(params.Tool.Label, sidebar, body)
}

// GenderPage renders the gender detection tool.
func GenderPage(sidebar SidebarParams, params GenderParams) templ.Component {
	body := component(func(p *page) {
		toolHeader(p, params.Tool)
		errorAlert(p, params.Error)
		if !params.Enabled {
			notice(p, "A detecção de gênero está desativada neste servidor.")
		}

		formStart(p, params.Tool, false)
		textarea(p, "input", "Nomes", params.Input)
		p.raw(`<label class="inline"><input type="checkbox" name="show_probability" value="1"`)
		p.checked(params.ShowProbability)
		p.raw(`> Mostrar confiança</label>`)
		buttons(p, "Detectar")

		if r := params.Result; r != nil {
			if r.Partial {
				notice(p, "A consulta foi interrompida; o resultado está incompleto.")
			}
			output(p, "output", "Resultado", r.Lines)
		}
	})
	return Layout(params.Tool.Label, sidebar, body)
}

// PhotoZipPage renders the photo ZIP generator.
func PhotoZipPage(sidebar SidebarParams, params PhotoZipParams) templ.Component {
	body := component(func(p *page) {
		toolHeader(p, params.Tool)
		errorAlert(p, params.Error)

		formStart(p, params.Tool, true)
		textarea(p, "names", "Nomes", params.Names)

		p.raw(`<label for="photo">Foto</label><select id="photo" name="photo">`)
		for _, s := range params.Silhouettes {
			p.raw(`<option`)
			p.attr("value", s.ID)
			p.selected(s.ID == params.Silhouette)
			p.raw(`>`)
			p.text(s.Label)
			p.raw(`</option>`)
		}
		p.raw(`</select>`)
		p.raw(`<label for="upload">ou envie uma foto (JPEG ou PNG)</label>`)
		p.raw(`<input type="file" id="upload" name="upload" accept="image/jpeg,image/png">`)
		buttons(p, "Gerar ZIP")
	})
	return Layout(params.Tool.Label, sidebar, body)
}

func radio(p *page, name, value, label string, on bool) {
	p.raw(`<label class="inline"><input type="radio"`)
	p.attr("name", name)
	p.attr("value", value)
	p.checked(on)
	p.raw(`> `)
	p.text(label)
	p.raw(`</label>`)
}
