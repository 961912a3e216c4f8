// Package http serves the upload form and renders the monthly agenda for a
// processed batch.
package http

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/example/agenda/internal/config"
	"github.com/example/agenda/internal/engine"
	"github.com/example/agenda/internal/i18n"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// maxUploadBytes bounds the multipart form kept in memory per request.
const maxUploadBytes = 4 << 20

// Handler serves the upload and agenda pages.
type Handler struct {
	cfg       config.Config
	logger    *slog.Logger
	templates *template.Template
}

// NewHandler parses the embedded templates and returns a ready handler.
func NewHandler(cfg config.Config, logger *slog.Logger) (*Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	templates, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("http: parse templates: %w", err)
	}
	return &Handler{cfg: cfg, logger: logger, templates: templates}, nil
}

// Router wires the handler's routes into a mux.
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/upload", http.StatusSeeOther)
	})
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		h.showUpload(w, r, "")
	})
	mux.HandleFunc("/agenda", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		h.processBatch(w, r)
	})
	return mux
}

func (h *Handler) showUpload(w http.ResponseWriter, r *http.Request, errMsg string) {
	h.render(w, r, "upload.html.tmpl", struct{ Error string }{Error: errMsg}, http.StatusOK)
}

// processBatch runs the full pipeline for one uploaded config/requests pair
// and renders the resulting month. Malformed request lines surface as
// incidents on the agenda page; only an unusable upload or run config sends
// the user back to the form.
func (h *Handler) processBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.uploadError(w, r, "could not read upload: "+err.Error())
		return
	}

	configFile, _, err := r.FormFile("configFile")
	if err != nil {
		h.uploadError(w, r, "config file is missing")
		return
	}
	defer configFile.Close()

	requestsFile, _, err := r.FormFile("requestsFile")
	if err != nil {
		h.uploadError(w, r, "requests file is missing")
		return
	}
	defer requestsFile.Close()

	run, err := config.ParseRun(configFile, h.cfg.DefaultLocale)
	if err != nil {
		h.uploadError(w, r, err.Error())
		return
	}

	input, err := i18n.Load(run.InputLocale)
	if err != nil {
		h.uploadError(w, r, err.Error())
		return
	}
	output, err := i18n.Load(run.OutputLocale)
	if err != nil {
		h.uploadError(w, r, err.Error())
		return
	}

	sentinel := h.cfg.ClosedSentinel
	if sentinel == "" {
		sentinel = input.ClosedSentinel()
	}

	pipeline := engine.NewPipelineWithLogger(input, sentinel, nil, nil, h.logger)
	result, err := pipeline.ProcessBatch(ctx, requestsFile)
	if err != nil {
		h.uploadError(w, r, err.Error())
		return
	}

	view := BuildAgendaView(result, run.Year, run.Month, output)
	h.render(w, r, "agenda.html.tmpl", view, http.StatusOK)
}

func (h *Handler) uploadError(w http.ResponseWriter, r *http.Request, message string) {
	h.logger.WarnContext(r.Context(), "batch upload rejected", "reason", message)
	h.render(w, r, "upload.html.tmpl", struct{ Error string }{Error: message}, http.StatusBadRequest)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render template", "template", name, "error", err)
	}
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	for _, method := range allowed {
		w.Header().Add("Allow", method)
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
