// Package api provides HTTP handlers for the dossier analysis service.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/probatio/dossier/internal/dossier"
	"github.com/probatio/dossier/internal/slack"
	"github.com/probatio/dossier/internal/techstack"
)

// Assembler builds compliance dossiers from a URL or free-form text.
type Assembler interface {
	Assemble(ctx context.Context, input string) (*dossier.Dossier, error)
}

// Detector fingerprints the technology stack of a site.
type Detector interface {
	Detect(ctx context.Context, rawURL string) ([]techstack.Technology, error)
}

// Notifier delivers Slack notifications.
type Notifier interface {
	Send(ctx context.Context, msg slack.Message) error
}

// Handler manages API endpoints
type Handler struct {
	assembler      Assembler
	detector       Detector
	notifier       Notifier
	maxBodySize    int64
	analyzeTimeout time.Duration
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// handleHealth returns service health status
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "dossier",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
