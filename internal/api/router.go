package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig bundles the dependencies and limits for the API router.
type RouterConfig struct {
	// Assembler builds compliance dossiers. Required for /api/analyze.
	Assembler Assembler
	// Detector fingerprints technology stacks. Required for /api/techstack.
	Detector Detector
	// Notifier sends Slack notifications. Optional.
	Notifier Notifier
	// MaxBodySize caps request body size in bytes. Zero disables the cap.
	MaxBodySize int64
	// AnalyzeTimeout bounds a single dossier assembly. Zero disables the bound.
	AnalyzeTimeout time.Duration
	// RequestTimeout bounds any single request at the router level.
	RequestTimeout time.Duration
}

// NewRouter creates a new chi router with all endpoints and middleware
func NewRouter(cfg RouterConfig) http.Handler {
	h := &Handler{
		assembler:      cfg.Assembler,
		detector:       cfg.Detector,
		notifier:       cfg.Notifier,
		maxBodySize:    cfg.MaxBodySize,
		analyzeTimeout: cfg.AnalyzeTimeout,
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Use(middleware.Heartbeat("/ping"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Post("/analyze", h.handleAnalyze)
		r.Post("/techstack", h.handleTechStack)
	})

	return r
}
