package rest

import (
	"net/http"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the note routes, the root liveness route and /metrics.
// Trailing slashes are optional on every route.
func NewRouter(log logging.Logger, notes NoteService, reg prometheus.Registerer, gatherer prometheus.Gatherer) http.Handler {
	metrics := NewMetrics(reg)
	h := NewHandler(log, notes, metrics)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(metrics.instrument)

	router.Get("/", h.Root)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	router.Route("/notes", func(r chi.Router) {
		r.Get("/", h.ListNotes)
		r.Post("/", h.CreateNote)
		r.Get("/{id}", h.GetNote)
		r.Put("/{id}", h.UpdateNote)
		r.Delete("/{id}", h.DeleteNote)
	})

	return router
}
