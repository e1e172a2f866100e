package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/probatio/dossier/internal/domain"
	"github.com/probatio/dossier/internal/dossier"
	"github.com/probatio/dossier/internal/slack"
)

// slackMessageTruncateLimit is the maximum length for text fields in Slack messages
const slackMessageTruncateLimit = 2000

// AnalyzeRequest represents a compliance dossier request.
type AnalyzeRequest struct {
	// URL is the website to analyze.
	URL string `json:"url,omitempty"`
	// Text is free-form text to extract identifiers from when no URL is available.
	Text string `json:"text,omitempty"`
	// NotifySlack controls whether to send a Slack notification. Defaults to true when omitted.
	NotifySlack *bool `json:"notify_slack,omitempty"`
}

// AnalyzeResponse is the API response envelope for dossier assembly.
type AnalyzeResponse struct {
	// Success indicates whether the assembly completed successfully.
	Success bool `json:"success"`
	// Data holds the dossier when successful.
	Data *AnalyzeResult `json:"data,omitempty"`
	// Error is the normalized error payload when assembly fails.
	Error *Error `json:"error,omitempty"`
}

// AnalyzeResult holds the assembled dossier plus request metadata.
type AnalyzeResult struct {
	// InputType records whether the dossier was built from a url or from text.
	InputType string `json:"input_type"`
	// Domain is the registrable domain of the analyzed site, when a URL was given.
	Domain string `json:"domain,omitempty"`
	// Dossier is the assembled evidence bundle.
	Dossier *dossier.Dossier `json:"dossier"`
	// SlackNotified indicates whether a Slack notification was sent.
	SlackNotified bool `json:"slack_notified"`
}

// handleAnalyze processes compliance dossier requests.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if h.assembler == nil {
		respondAnalyzeError(w, http.StatusServiceUnavailable, errCodeUnavailable, ErrAssemblerNotConfigured.Error())
		return
	}

	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req AnalyzeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondAnalyzeError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	input := strings.TrimSpace(req.URL)
	if input == "" {
		input = strings.TrimSpace(req.Text)
	}

	if input == "" {
		respondAnalyzeError(w, http.StatusBadRequest, errCodeValidation, ErrInputRequired.Error())
		return
	}

	ctx := r.Context()

	if h.analyzeTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, h.analyzeTimeout)
		defer cancel()
	}

	d, err := h.assembler.Assemble(ctx, input)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			respondAnalyzeError(w, http.StatusGatewayTimeout, errCodeTimeout, fmt.Sprintf("dossier assembly timed out: %v", err))
			return
		}

		log.Error().Err(err).Str("input", input).Msg("dossier assembly failed")
		respondAnalyzeError(w, http.StatusBadGateway, errCodeInternal, fmt.Sprintf("dossier assembly failed: %v", err))

		return
	}

	result := &AnalyzeResult{
		InputType: d.InputType,
		Dossier:   d,
	}

	if d.BaseURL != "" {
		if info, derr := domain.Parse(d.BaseURL); derr == nil {
			result.Domain = info.Domain
		}
	}

	shouldNotify := req.NotifySlack == nil || *req.NotifySlack
	if shouldNotify && h.notifier != nil {
		msg := buildDossierSlackMessage(result.Domain, input, d)

		if err := h.notifier.Send(r.Context(), msg); err != nil {
			log.Error().Err(err).Str("input", input).Msg("dossier slack notification failed")
		} else {
			result.SlackNotified = true
		}
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Success: true,
		Data:    result,
	})
}

// buildDossierSlackMessage formats a dossier into a Slack Block Kit message
func buildDossierSlackMessage(domainName, input string, d *dossier.Dossier) slack.Message {
	subject := domainName
	if subject == "" {
		subject = truncateText(input, 80)
	}

	headerText := fmt.Sprintf("Compliance Dossier: %s", subject)

	blocks := []slack.Block{
		{
			Type: "header",
			Text: &slack.TextObject{Type: "plain_text", Text: headerText},
		},
	}

	matched := lo.CountBy(d.Records, func(rec dossier.Record) bool {
		return rec.Company != nil
	})

	fields := []slack.TextObject{
		{
			Type: "mrkdwn",
			Text: fmt.Sprintf("*Identifiers Found:*\n%d", len(d.Identifiers)),
		},
		{
			Type: "mrkdwn",
			Text: fmt.Sprintf("*Registry Matches:*\n%d", matched),
		},
		{
			Type: "mrkdwn",
			Text: fmt.Sprintf("*Pages Analyzed:*\n%d", len(d.AnalyzedURLs)),
		},
	}

	blocks = append(blocks, slack.Block{
		Type:   "section",
		Fields: fields,
	})

	for _, rec := range d.Records {
		if rec.Company == nil {
			continue
		}

		recText := fmt.Sprintf("*%s* (%s)\n%s", rec.Company.Name, rec.ID, rec.Company.Status)
		if rec.Company.ActivityLabel != "" {
			recText += fmt.Sprintf("\n_%s_", rec.Company.ActivityLabel)
		}

		blocks = append(blocks, slack.Block{
			Type: "section",
			Text: &slack.TextObject{
				Type: "mrkdwn",
				Text: truncateText(recText, slackMessageTruncateLimit),
			},
		})
	}

	fallback := fmt.Sprintf("Compliance Dossier: %s — %d identifier(s), %d registry match(es)", subject, len(d.Identifiers), matched)

	return slack.Message{
		Text:   fallback,
		Blocks: blocks,
	}
}

// truncateText truncates text to the specified maximum length, adding an ellipsis if truncated
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}

	return text[:maxLen-3] + "..."
}

func respondAnalyzeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, AnalyzeResponse{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}
