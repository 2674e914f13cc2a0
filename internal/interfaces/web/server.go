// Package web serves the browser form client.
package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/Vero970/ProjFit/internal/form"
	"github.com/Vero970/ProjFit/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

type page struct {
	Title      string
	Food       string
	Grams      string
	MinGrams   int
	Outcome    *form.Outcome
	RecordJSON string
}

// Server renders the intake form and submits it to the handler.
type Server struct {
	looker form.Looker
	logger *zap.Logger
}

// NewServer creates a new form server
func NewServer(looker form.Looker, logger *zap.Logger) *Server {
	return &Server{looker: looker, logger: logger}
}

// Routes builds the chi router for the form.
func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Recovery(s.logger))
	router.Use(middleware.Logger(s.logger))

	router.Get("/", s.showForm)
	router.Post("/", s.submit)
	return router
}

func (s *Server) showForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, page{Grams: form.FormatGrams(form.DefaultGrams)})
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	p := page{
		Food:  r.PostForm.Get("alimento"),
		Grams: r.PostForm.Get("quantidade"),
	}

	var outcome form.Outcome
	grams, err := form.ParseGrams(p.Grams)
	if err != nil {
		outcome = form.Outcome{Error: err.Error()}
	} else {
		outcome = form.Submit(r.Context(), s.looker, form.Submission{Food: p.Food, Grams: grams})
	}
	p.Outcome = &outcome

	if outcome.Success() {
		if doc, err := json.MarshalIndent(outcome.Result, "", "  "); err == nil {
			p.RecordJSON = string(doc)
		}
	} else {
		s.logger.Info("Form submission not completed", zap.String("reason", outcome.Error))
	}

	s.render(w, p)
}

func (s *Server) render(w http.ResponseWriter, p page) {
	p.Title = form.Title
	p.MinGrams = form.MinGrams

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, p); err != nil {
		s.logger.Error("Failed to render form", zap.Error(err))
	}
}
