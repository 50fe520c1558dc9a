package api

import (
	"commute-compensation-service/internal/api/handlers"
	"commute-compensation-service/internal/ports"
	"commute-compensation-service/internal/session"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Options tunes the router. Zero values select defaults.
type Options struct {
	Title          string
	AllowedOrigins []string
	Now            func() time.Time
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	dir ports.Directory,
	provider ports.DistanceProvider,
	sessions *session.Store,
	opts Options,
) http.Handler {
	if opts.Title == "" {
		opts.Title = "Weekly commute compensation"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	form := &handlers.FormHandler{
		Directory: dir,
		Provider:  provider,
		Title:     opts.Title,
		Now:       opts.Now,
	}
	entries := &handlers.EntryHandler{
		Directory: dir,
		Provider:  provider,
		Now:       opts.Now,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)

	r.Group(func(r chi.Router) {
		r.Use(sessions.Middleware)

		r.Get("/", form.Index)
		r.Get("/week", form.Week)
		r.Get("/days/{date}/rows", form.DayRows)
		r.Get("/entries", form.Results)
		r.Post("/entries", form.Commit)
		r.Post("/entries/clear", form.Clear)
		r.Get("/report.xlsx", form.Report)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
		}))

		r.Get("/technicians", entries.Technicians)
		r.Get("/projects", entries.Projects)
		r.Get("/week", entries.Week)

		r.Group(func(r chi.Router) {
			r.Use(sessions.Middleware)

			r.Get("/entries", entries.List)
			r.Post("/entries", entries.Create)
			r.Delete("/entries", entries.Clear)
		})
	})

	return r
}
