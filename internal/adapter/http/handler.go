package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"keyword-campaigns/internal/core/domain"
	"keyword-campaigns/internal/core/port"
	"keyword-campaigns/internal/table"
)

// Handler is the inbound HTTP adapter. It wires the session collaborator,
// the campaign collection and the settings store to a chi router, and
// keeps one table controller per signed-in session for the view-state
// endpoints.
type Handler struct {
	svc         port.CampaignUseCase
	settings    port.SettingsRepository
	auth        port.Authenticator
	logger      *slog.Logger
	clickWindow time.Duration
	router      chi.Router

	mu     sync.Mutex
	tables map[string]*table.Controller
}

// NewHandler creates a handler with all routes configured. clickWindow
// controls the single/double-click disambiguation delay of the table
// controllers; <= 0 selects the default.
func NewHandler(svc port.CampaignUseCase, settings port.SettingsRepository, auth port.Authenticator, logger *slog.Logger, clickWindow time.Duration) *Handler {
	h := &Handler{
		svc:         svc,
		settings:    settings,
		auth:        auth,
		logger:      logger,
		clickWindow: clickWindow,
		tables:      make(map[string]*table.Controller),
	}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/session", h.handleSignIn)

		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)
			r.Delete("/session", h.handleSignOut)

			r.Get("/campaigns", h.handleListCampaigns)
			r.Post("/campaigns", h.handleAddCampaign)
			r.Patch("/campaigns/{id}", h.handleCommitField)

			r.Get("/settings", h.handleGetSettings)
			r.Put("/settings", h.handleSaveSettings)

			r.Route("/table", func(r chi.Router) {
				r.Get("/", h.handleTableRows)
				r.Post("/click", h.handleTableClick)
				r.Post("/sort", h.handleTableSort)
				r.Post("/cells/edit", h.handleCellEdit)
				r.Post("/cells/draft", h.handleCellDraft)
				r.Post("/cells/commit", h.handleCellCommit)
				r.Post("/cells/cancel", h.handleCellCancel)
			})
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// Close tears down every per-session table controller, cancelling any
// pending click timers.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for token, ctrl := range h.tables {
		ctrl.Close()
		delete(h.tables, token)
	}
}

// tableFor returns the table controller for a session, creating it on
// first use with the owner's stored settings and a commit callback bound
// to the collection store.
func (h *Handler) tableFor(r *http.Request) *table.Controller {
	token := sessionToken(r.Context())
	owner := sessionIdentity(r.Context())

	h.mu.Lock()
	if ctrl, ok := h.tables[token]; ok {
		h.mu.Unlock()
		return ctrl
	}
	h.mu.Unlock()

	settings, err := h.settings.Get(r.Context(), owner)
	if err != nil {
		h.logger.Warn("load settings, using defaults", slog.Any("error", err))
		settings = domain.DefaultSettings()
	}
	ctrl := table.NewController(settings, h.clickWindow, func(ctx context.Context, recordID, field string, value any) error {
		return h.svc.CommitField(ctx, owner, recordID, field, value)
	})
	ctrl.SetCampaigns(h.svc.Campaigns())

	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.tables[token]; ok {
		ctrl.Close()
		return existing
	}
	h.tables[token] = ctrl
	return ctrl
}

// dropTable discards the controller of a session that signed out.
func (h *Handler) dropTable(token string) {
	h.mu.Lock()
	ctrl, ok := h.tables[token]
	if ok {
		delete(h.tables, token)
	}
	h.mu.Unlock()
	if ok {
		ctrl.Close()
	}
}
