// Package router wires HTTP routes to the leafwall services and applies the
// cross-cutting middleware chain.
package router

import (
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"github.com/leafwall/leafwall/internal/config"
	"github.com/leafwall/leafwall/internal/metrics"
	"github.com/leafwall/leafwall/internal/middleware"
	"github.com/leafwall/leafwall/internal/services/health"
	"github.com/leafwall/leafwall/internal/services/leaves"
	"github.com/leafwall/leafwall/pkg/logger"
)

// handler bundles HTTP endpoints for the leafwall services.
type handler struct {
	leaves    *leaves.Service
	health    *health.Service
	staticDir string
	log       *logger.Logger
}

// New builds the full request handler: routes plus middleware chain.
func New(cfg *config.Config, log *logger.Logger, leafSvc *leaves.Service, healthSvc *health.Service) http.Handler {
	if log == nil {
		log = logger.NewDefault("router")
	}
	h := &handler{
		leaves:    leafSvc,
		health:    healthSvc,
		staticDir: cfg.StaticDir,
		log:       log,
	}

	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/leaves", h.listLeaves).Methods(http.MethodGet)
	api.HandleFunc("/leaves", h.createLeaf).Methods(http.MethodPost)
	api.HandleFunc("/leaves", h.clearLeaves).Methods(http.MethodDelete)
	api.HandleFunc("/leaves/stats", h.leafStats).Methods(http.MethodGet)
	api.HandleFunc("/health", h.healthCheck).Methods(http.MethodGet)
	api.HandleFunc("/health/ready", h.healthReady).Methods(http.MethodGet)
	api.HandleFunc("/health/live", h.healthLive).Methods(http.MethodGet)

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/", h.servePage("index.html")).Methods(http.MethodGet)
	r.HandleFunc("/thank-you", h.servePage("thank-you.html")).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	// Middleware chain, innermost first.
	var chained http.Handler = r
	chained = middleware.BodyLimit(cfg.BodyLimit)(chained)
	chained = middleware.NewCORSMiddleware(cfg.CORSOrigins).Handler(chained)
	chained = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log).Handler(chained)
	chained = middleware.Gzip(chained)
	chained = metrics.InstrumentHandler(chained)
	chained = middleware.NewTracingMiddleware(log).Handler(chained)
	return chained
}

func (h *handler) servePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(h.staticDir, name))
	}
}
