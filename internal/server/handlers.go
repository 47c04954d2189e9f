package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ppiankov/casevalue/internal/logging"
	"github.com/ppiankov/casevalue/internal/metrics"
	"github.com/ppiankov/casevalue/internal/model"
	"github.com/ppiankov/casevalue/internal/pipeline"
	"github.com/ppiankov/casevalue/internal/rules"
	"github.com/ppiankov/casevalue/internal/share"
)

type handlers struct {
	pipeline *pipeline.Pipeline
	metrics  *metrics.Metrics
	logger   logging.Logger
	maxBody  int64
}

type rulesResponse struct {
	Jurisdiction rules.JurisdictionInfo    `json:"jurisdiction"`
	CaseType     model.CaseType            `json:"case_type"`
	RulesVersion string                    `json:"rules_version"`
	Rules        model.JurisdictionRuleSet `json:"rules"`
}

type shareResponse struct {
	Status        string                 `json:"status"`
	Result        *model.ValuationResult `json:"result,omitempty"`
	Context       model.ShareContext     `json:"context"`
	IssuedAt      time.Time              `json:"issued_at"`
	ExpiresAt     time.Time              `json:"expires_at"`
	DaysRemaining int                    `json:"days_remaining"`
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":        "ok",
		"rules_version": h.pipeline.Table().Version(),
	})
}

func (h *handlers) listJurisdictions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"rules_version": h.pipeline.Table().Version(),
		"jurisdictions": h.pipeline.Table().Jurisdictions(),
	})
}

func (h *handlers) getRules(w http.ResponseWriter, r *http.Request) {
	ct, err := model.ParseCaseType(chi.URLParam(r, "caseType"))
	if err != nil {
		writeAppError(w, err)
		return
	}

	table := h.pipeline.Table()
	info, err := table.Info(chi.URLParam(r, "jurisdiction"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	rs, err := table.Resolve(info.Code, ct)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rulesResponse{
		Jurisdiction: info,
		CaseType:     ct,
		RulesVersion: table.Version(),
		Rules:        rs,
	})
}

func (h *handlers) getQuestions(w http.ResponseWriter, r *http.Request) {
	ct, err := model.ParseCaseType(chi.URLParam(r, "caseType"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	qs, err := h.pipeline.Catalog().Questions(ct)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"case_type": ct,
		"questions": qs,
	})
}

func (h *handlers) createValuation(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req model.EstimateRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, codeMalformed, "request body is not valid JSON")
		return
	}

	report, err := h.pipeline.Estimate(r.Context(), req)
	if err != nil {
		h.logger.Debug("valuation rejected", logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *handlers) decodeShare(w http.ResponseWriter, r *http.Request) {
	codec := h.pipeline.Codec()

	shared, err := codec.Decode(share.Token(chi.URLParam(r, "token")))
	switch {
	case err == nil:
		h.metrics.ShareDecoded("live")
		writeJSON(w, http.StatusOK, shareResponse{
			Status:        "live",
			Result:        &shared.Result,
			Context:       shared.Context,
			IssuedAt:      shared.IssuedAt,
			ExpiresAt:     shared.ExpiresAt,
			DaysRemaining: codec.DaysUntilExpiry(shared.ExpiresAt),
		})
	case errors.Is(err, model.ErrExpired):
		// The figures are stale; only the context is returned so the
		// client can offer to recompute.
		h.metrics.ShareDecoded("expired")
		writeJSON(w, http.StatusGone, shareResponse{
			Status:    "expired",
			Context:   shared.Context,
			IssuedAt:  shared.IssuedAt,
			ExpiresAt: shared.ExpiresAt,
		})
	default:
		h.metrics.ShareDecoded("malformed")
		writeAppError(w, err)
	}
}
