package handlers

import (
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/idcapture/internal/models"
)

func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.newSession()
	h.writeJSONStatus(w, http.StatusCreated, session.Snapshot())
}

func (h *Handler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := h.sessionStore.List()
	sessionList := make([]models.Session, 0, len(sessions))
	for _, session := range sessions {
		sessionList = append(sessionList, session.Snapshot())
	}
	h.writeJSON(w, sessionList)
}

func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, session.Snapshot())
}

func (h *Handler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}
	// invalidates pending preview, recognition and save timers
	session.Controller.ResetState()
	h.sessionStore.Delete(session.ID)
	slog.Info("Session deleted", "session_id", session.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}
	session.Controller.ResetState()
	h.writeJSON(w, session.Snapshot())
}
