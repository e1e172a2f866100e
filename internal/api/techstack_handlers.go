package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/probatio/dossier/internal/techstack"
)

// TechStackRequest represents a technology detection request.
type TechStackRequest struct {
	// URL is the website to fingerprint.
	URL string `json:"url"`
}

// TechStackResponse is the API response envelope for technology detection.
type TechStackResponse struct {
	// Success indicates whether detection completed successfully.
	Success bool `json:"success"`
	// Data holds the detection result when successful.
	Data *TechStackResult `json:"data,omitempty"`
	// Error is the normalized error payload when detection fails.
	Error *Error `json:"error,omitempty"`
}

// TechStackResult holds the detected technologies for a site.
type TechStackResult struct {
	// URL is the site that was fingerprinted.
	URL string `json:"url"`
	// Technologies lists the detected technologies, sorted by name.
	Technologies []techstack.Technology `json:"technologies"`
}

// handleTechStack processes technology detection requests.
func (h *Handler) handleTechStack(w http.ResponseWriter, r *http.Request) {
	if h.detector == nil {
		respondTechStackError(w, http.StatusServiceUnavailable, errCodeUnavailable, ErrDetectorNotConfigured.Error())
		return
	}

	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req TechStackRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondTechStackError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" {
		respondTechStackError(w, http.StatusBadRequest, errCodeValidation, ErrURLRequired.Error())
		return
	}

	technologies, err := h.detector.Detect(r.Context(), rawURL)
	if err != nil {
		log.Error().Err(err).Str("url", rawURL).Msg("technology detection failed")
		respondTechStackError(w, http.StatusBadGateway, errCodeInternal, fmt.Sprintf("technology detection failed: %v", err))

		return
	}

	writeJSON(w, http.StatusOK, TechStackResponse{
		Success: true,
		Data: &TechStackResult{
			URL:          rawURL,
			Technologies: technologies,
		},
	})
}

func respondTechStackError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, TechStackResponse{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}
