package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"keyword-campaigns/internal/core/domain"
)

type settingsPayload struct {
	CostPerInstall      *float64 `json:"costPerInstall"`
	ToleranceDifficulty float64  `json:"toleranceDifficulty"`
	ToleranceRank       float64  `json:"toleranceRank"`
}

// handleGetSettings returns the owner's settings with defaults applied.
func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context(), sessionIdentity(r.Context()))
	if err != nil {
		h.logger.Error("get settings error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, h.logger, settingsPayload{
		CostPerInstall:      settings.CostPerInstall,
		ToleranceDifficulty: settings.ToleranceDifficulty,
		ToleranceRank:       settings.ToleranceRank,
	})
}

// handleSaveSettings persists the three settings and pushes them into the
// session's table controller so new range filters pick them up at once.
func (h *Handler) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ToleranceDifficulty < 0 || req.ToleranceRank < 0 {
		http.Error(w, "tolerances must not be negative", http.StatusBadRequest)
		return
	}
	if req.CostPerInstall != nil && *req.CostPerInstall < 0 {
		http.Error(w, "cost per install must not be negative", http.StatusBadRequest)
		return
	}
	settings := domain.Settings{
		CostPerInstall:      req.CostPerInstall,
		ToleranceDifficulty: req.ToleranceDifficulty,
		ToleranceRank:       req.ToleranceRank,
	}
	owner := sessionIdentity(r.Context())
	if err := h.settings.Save(r.Context(), owner, settings); err != nil {
		h.logger.Error("save settings error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.mu.Lock()
	ctrl, ok := h.tables[sessionToken(r.Context())]
	h.mu.Unlock()
	if ok {
		ctrl.SetSettings(settings)
	}
	w.WriteHeader(http.StatusNoContent)
}
