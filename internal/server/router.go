package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ppiankov/casevalue/internal/logging"
	"github.com/ppiankov/casevalue/internal/metrics"
	"github.com/ppiankov/casevalue/internal/worker"
)

// newRouter wires the API routes. limiter and m may be nil. Proxy headers
// rewrite the client address only when trustProxy is set.
func newRouter(h *handlers, limiter *worker.Limiter, m *metrics.Metrics, logger logging.Logger, trustProxy bool) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if trustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Recoverer)
	r.Use(instrument(m, logger))

	r.Get("/healthz", h.health)
	r.Handle("/metrics", m.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(rateLimit(limiter, m))

		r.Get("/jurisdictions", h.listJurisdictions)
		r.Get("/rules/{jurisdiction}/{caseType}", h.getRules)
		r.Get("/questions/{caseType}", h.getQuestions)
		r.Post("/valuations", h.createValuation)
		r.Get("/share/{token}", h.decodeShare)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "no such route")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	return r
}
