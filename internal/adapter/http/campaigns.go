package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"keyword-campaigns/internal/core/domain"
	"keyword-campaigns/internal/core/port"
)

// campaignResponse is the wire form of a campaign: stored fields plus the
// derived metrics, which are recomputed on every read and never stored.
// Effectiveness is always null, the formula is not defined yet.
type campaignResponse struct {
	ID           string   `json:"id"`
	Country      string   `json:"country"`
	Keyword      string   `json:"keyword"`
	StartDate    *string  `json:"startDate"`
	Difficulty   *float64 `json:"difficulty"`
	CurrentRank  *float64 `json:"currentRank"`
	EndRank      *float64 `json:"endRank"`
	CampaignType string   `json:"campaignType"`
	Day1         *int64   `json:"day1"`
	Day2         *int64   `json:"day2"`
	Day3         *int64   `json:"day3"`
	Day4         *int64   `json:"day4"`
	Day5         *int64   `json:"day5"`
	Note         string   `json:"note"`

	EndDate       *string  `json:"endDate"`
	RankBoost     *float64 `json:"rankBoost"`
	TotalInstalls *int64   `json:"totalInstalls"`
	Cost          *float64 `json:"cost"`
	Effectiveness *float64 `json:"effectiveness"`
}

func toCampaignResponse(c domain.Campaign, s domain.Settings) campaignResponse {
	m := domain.ComputeMetrics(c, s)
	return campaignResponse{
		ID:           c.ID,
		Country:      c.Country,
		Keyword:      c.Keyword,
		StartDate:    dateString(c.StartDate),
		Difficulty:   c.Difficulty,
		CurrentRank:  c.CurrentRank,
		EndRank:      c.EndRank,
		CampaignType: c.CampaignType,
		Day1:         c.Day1,
		Day2:         c.Day2,
		Day3:         c.Day3,
		Day4:         c.Day4,
		Day5:         c.Day5,
		Note:         c.Note,

		EndDate:       dateString(m.EndDate),
		RankBoost:     m.RankBoost,
		TotalInstalls: m.TotalInstalls,
		Cost:          m.Cost,
		Effectiveness: m.Effectiveness,
	}
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}

// handleListCampaigns refetches the owner's collection and returns it with
// derived metrics.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	owner := sessionIdentity(r.Context())
	campaigns, err := h.svc.Refresh(r.Context(), owner)
	if err != nil {
		h.logger.Error("list campaigns error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	settings := h.ownerSettings(r)
	out := make([]campaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, toCampaignResponse(c, settings))
	}
	writeJSON(w, h.logger, out)
}

type addCampaignRequest struct {
	Country     string   `json:"country"`
	Keyword     string   `json:"keyword"`
	Difficulty  *float64 `json:"difficulty"`
	CurrentRank *float64 `json:"currentRank"`
}

// handleAddCampaign creates a campaign from the minimal input. Store
// failures propagate to the caller so the add form can keep its input and
// stay open.
func (h *Handler) handleAddCampaign(w http.ResponseWriter, r *http.Request) {
	var req addCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Keyword) == "" {
		http.Error(w, "keyword must not be empty", http.StatusBadRequest)
		return
	}
	owner := sessionIdentity(r.Context())
	in := domain.NewCampaignInput{
		Country:     req.Country,
		Keyword:     req.Keyword,
		Difficulty:  req.Difficulty,
		CurrentRank: req.CurrentRank,
	}
	if err := h.svc.Add(r.Context(), owner, in); err != nil {
		h.logger.Error("add campaign error", slog.Any("error", err))
		http.Error(w, "adding campaign failed", http.StatusInternalServerError)
		return
	}
	settings := h.ownerSettings(r)
	campaigns := h.svc.Campaigns()
	out := make([]campaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, toCampaignResponse(c, settings))
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, h.logger, out)
}

type commitFieldRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// handleCommitField is the direct cell-commit contract: apply one field
// change optimistically and report a field-scoped error when the store
// rejects it.
func (h *Handler) handleCommitField(w http.ResponseWriter, r *http.Request) {
	var req commitFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	owner := sessionIdentity(r.Context())
	id := chi.URLParam(r, "id")
	if err := h.svc.CommitField(r.Context(), owner, id, req.Field, req.Value); err != nil {
		h.writeCommitError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeCommitError(w http.ResponseWriter, err error) {
	var fieldErr *port.FieldError
	switch {
	case errors.Is(err, port.ErrNotAuthenticated):
		http.Error(w, "not authenticated", http.StatusUnauthorized)
	case errors.Is(err, port.ErrCampaignNotFound):
		// Local desync: the commit was aborted before any store call.
		http.Error(w, "campaign not found in local state", http.StatusConflict)
	case errors.As(err, &fieldErr):
		h.logger.Error("field update error", slog.String("field", fieldErr.Field), slog.Any("error", fieldErr.Err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(fieldErrorResponse{
			Field:   fieldErr.Field,
			Message: "saving failed, the change was rolled back",
		})
	default:
		h.logger.Error("commit error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// ownerSettings loads the owner's settings, falling back to defaults so a
// settings-store hiccup never blocks rendering.
func (h *Handler) ownerSettings(r *http.Request) domain.Settings {
	settings, err := h.settings.Get(r.Context(), sessionIdentity(r.Context()))
	if err != nil {
		h.logger.Warn("load settings, using defaults", slog.Any("error", err))
		return domain.DefaultSettings()
	}
	return settings
}
