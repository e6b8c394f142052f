package handler

import (
	"context"
	"net/http"

	"github.com/iho/saku/internal/adapter/http/dto"
	"github.com/iho/saku/internal/domain"
)

// SessionService defines the behavior needed by SessionHandler.
type SessionService interface {
	CreateSession(ctx context.Context) (domain.Session, error)
	DropSession(ctx context.Context, sessionID string) error
	ResetSession(ctx context.Context, sessionID string) error
}

// SessionHandler handles session lifecycle HTTP requests.
type SessionHandler struct {
	sessionUC SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionUC SessionService) *SessionHandler {
	return &SessionHandler{sessionUC: sessionUC}
}

// Create opens a new session.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionUC.CreateSession(r.Context())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create session", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.SessionFromDomain(session))
}

// Drop discards a session and its ledger.
func (h *SessionHandler) Drop(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDParam(r)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing session ID", "")
		return
	}

	if err := h.sessionUC.DropSession(r.Context(), sessionID); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to drop session", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reset clears every transaction while keeping the session alive.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDParam(r)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing session ID", "")
		return
	}

	if err := h.sessionUC.ResetSession(r.Context(), sessionID); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reset session", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
