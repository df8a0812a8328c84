package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"keyword-campaigns/internal/core/port"
)

type ctxKey int

const (
	ctxIdentity ctxKey = iota
	ctxToken
)

// sessionIdentity returns the signed-in owner id placed by requireSession.
func sessionIdentity(ctx context.Context) string {
	id, _ := ctx.Value(ctxIdentity).(string)
	return id
}

func sessionToken(ctx context.Context) string {
	token, _ := ctx.Value(ctxToken).(string)
	return token
}

// requireSession resolves the bearer token to an identity and injects both
// into the request context. Requests without a valid session are rejected;
// no data operation runs unauthenticated.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		identity, ok := h.auth.Identity(token)
		if !ok {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), ctxIdentity, identity)
		ctx = context.WithValue(ctx, ctxToken, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleSignIn opens a session for valid credentials. Both unknown emails
// and wrong passwords produce the same 401.
func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	session, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if errors.Is(err, port.ErrInvalidCredentials) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.logger.Error("sign in error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, h.logger, signInResponse{Token: session.Token, ExpiresAt: session.ExpiresAt})
}

// handleSignOut closes the session and discards its table state.
func (h *Handler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r.Context())
	h.dropTable(token)
	h.auth.SignOut(token)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response error", slog.Any("error", err))
	}
}
