package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ahmeed2051/onilne-mono-tracking/internal/services/ledger"
)

// NewRouter constructs the chi router with all API endpoints registered.
func NewRouter(store *ledger.Store, metricsEnabled bool) http.Handler {
	h := NewHandler(store)
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/games", h.ListGames)
		r.Post("/games", h.CreateGame)
		r.Get("/games/code/{joinCode}", h.GetGameByCode)

		r.Route("/games/{gameID}", func(r chi.Router) {
			r.Get("/", h.GetGame)
			r.Post("/players", h.AddPlayer)
			r.Post("/transactions", h.ApplyTransaction)
		})

		// Unknown API paths answer in JSON, not the default text page.
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not found")
		})
	})

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// corsMiddleware allows the browser client to call the API from any
// origin; the service carries no credentials or cookies.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)

			return
		}

		next.ServeHTTP(w, r)
	})
}
