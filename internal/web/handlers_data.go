package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/cop30utils/internal/core"
	"github.com/JonMunkholm/cop30utils/internal/photozip"
	"github.com/JonMunkholm/cop30utils/internal/web/templates"
)

const aboutText = `# Sobre o COP30 Utils

Uma coleção de ferramentas para processamento e validação de dados, criada
pela equipe de credenciamento da força de trabalho da COP30.

Cada ferramenta trabalha sobre o texto colado ou o arquivo enviado e não
guarda o conteúdo. O registro de execuções guarda apenas a ferramenta usada,
a quantidade de linhas e o tempo de processamento.

## Equipes

- **Desenvolvimento**: gerentes de credenciamento da força de trabalho.
- **Qualidade**: validação e coordenação da equipe.

*COP30 Utils: ferramentas práticas para o seu dia a dia.*
`

// handleDashboard renders the main dashboard page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, templates.Dashboard(s.pageSidebar("dashboard")))
}

// handleAbout renders the about page.
func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, templates.AboutPage(s.pageSidebar("about"), aboutText))
}

// handleToolPage renders an empty tool form.
func (s *Server) handleToolPage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "toolKey")
	tool, err := s.service.Tool(key)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	sb := s.toolSidebar(key)

	switch tool.Kind {
	case core.KindCompare:
		render(w, r, http.StatusOK, templates.ComparePage(sb, templates.CompareParams{Tool: tool}))
	case core.KindTable:
		render(w, r, http.StatusOK, templates.DuplicatesPage(sb, templates.DuplicatesParams{
			Tool:           tool,
			DefaultColumns: s.service.DefaultDuplicateColumns(),
		}))
	case core.KindGender:
		render(w, r, http.StatusOK, templates.GenderPage(sb, templates.GenderParams{
			Tool:    tool,
			Enabled: s.service.GenderEnabled(),
		}))
	case core.KindArchive:
		render(w, r, http.StatusOK, templates.PhotoZipPage(sb, templates.PhotoZipParams{
			Tool:        tool,
			Silhouette:  photozip.Silhouettes[0].ID,
			Silhouettes: photozip.Silhouettes,
		}))
	default:
		render(w, r, http.StatusOK, templates.TextToolPage(sb, templates.TextToolParams{Tool: tool}))
	}
}

// handleToolSubmit runs a tool from its form.
func (s *Server) handleToolSubmit(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "toolKey")
	tool, err := s.service.Tool(key)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	switch tool.Kind {
	case core.KindCompare:
		s.submitCompare(w, r, tool)
	case core.KindTable:
		s.asJob(w, r, func(w http.ResponseWriter, r *http.Request) { s.submitDuplicates(w, r, tool) })
	case core.KindGender:
		s.asJob(w, r, func(w http.ResponseWriter, r *http.Request) { s.submitGender(w, r, tool) })
	case core.KindArchive:
		s.asJob(w, r, func(w http.ResponseWriter, r *http.Request) { s.submitPhotoZip(w, r, tool) })
	default:
		s.submitText(w, r, tool)
	}
}

// asJob runs h behind the per-IP job limit.
func (s *Server) asJob(w http.ResponseWriter, r *http.Request, h http.HandlerFunc) {
	s.jobs(h).ServeHTTP(w, r)
}

func (s *Server) submitText(w http.ResponseWriter, r *http.Request, tool core.ToolInfo) {
	params := templates.TextToolParams{Tool: tool}
	status := http.StatusOK

	if err := parseForm(w, r, s.cfg.Upload.MaxTextSize); err != nil {
		params.Error, status = toolError(r, err)
	} else {
		params.Input = r.FormValue("input")
		res, err := s.service.RunText(WithRequestMetadata(r.Context(), r), tool.Key, params.Input)
		if err != nil {
			params.Error, status = toolError(r, err)
		} else {
			params.Result = &res
		}
	}

	render(w, r, status, templates.TextToolPage(s.toolSidebar(tool.Key), params))
}

func (s *Server) submitCompare(w http.ResponseWriter, r *http.Request, tool core.ToolInfo) {
	params := templates.CompareParams{Tool: tool}
	status := http.StatusOK

	if err := parseForm(w, r, s.cfg.Upload.MaxTextSize); err != nil {
		params.Error, status = toolError(r, err)
	} else {
		params.List1, params.List2 = r.FormValue("list1"), r.FormValue("list2")
		res, err := s.service.CompareLists(WithRequestMetadata(r.Context(), r), params.List1, params.List2)
		if err != nil {
			params.Error, status = toolError(r, err)
		} else {
			params.Result = &res
		}
	}

	render(w, r, status, templates.ComparePage(s.toolSidebar(tool.Key), params))
}

func (s *Server) submitGender(w http.ResponseWriter, r *http.Request, tool core.ToolInfo) {
	params := templates.GenderParams{Tool: tool, Enabled: s.service.GenderEnabled()}
	status := http.StatusOK

	if err := parseForm(w, r, s.cfg.Upload.MaxTextSize); err != nil {
		params.Error, status = toolError(r, err)
	} else {
		params.Input = r.FormValue("input")
		params.ShowProbability = isChecked(r, "show_probability")

		res, err := s.service.DetectGender(WithRequestMetadata(r.Context(), r), params.Input, params.ShowProbability)
		if len(res.Lines) > 0 {
			params.Result = &res
		}
		if err != nil {
			params.Error, status = toolError(r, err)
		}
	}

	render(w, r, status, templates.GenderPage(s.toolSidebar(tool.Key), params))
}
