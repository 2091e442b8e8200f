package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lehigh-university-libraries/idcapture/internal/controller"
	"github.com/lehigh-university-libraries/idcapture/internal/form"
	"github.com/lehigh-university-libraries/idcapture/internal/models"
	"github.com/lehigh-university-libraries/idcapture/internal/ocr"
	"github.com/lehigh-university-libraries/idcapture/internal/storage"
)

// Config tunes the HTTP handlers
type Config struct {
	MaxUploadBytes    int64
	SaveResetDelay    time.Duration
	ProcessingTimeout time.Duration
	Persister         controller.Persister
}

type Handler struct {
	sessionStore *storage.SessionStore
	recognizer   ocr.Recognizer
	cfg          Config
}

// New creates the handler set. The recognizer is shared by every session.
func New(recognizer ocr.Recognizer, cfg Config) *Handler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 * 1024 * 1024
	}
	if cfg.ProcessingTimeout <= 0 {
		cfg.ProcessingTimeout = 60 * time.Second
	}
	return &Handler{
		sessionStore: storage.New(),
		recognizer:   recognizer,
		cfg:          cfg,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	h.writeJSONStatus(w, http.StatusOK, data)
}

func (h *Handler) writeJSONStatus(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	if code >= http.StatusInternalServerError {
		slog.Error(message)
	} else {
		slog.Warn(message, "status", code)
	}
	http.Error(w, message, code)
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, r *http.Request) (*storage.Session, bool) {
	sessionID := chi.URLParam(r, "sessionID")
	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

// newSession wires a controller and its form; every applied recognition
// result re-seeds the form and every reset or new selection empties it
func (h *Handler) newSession() *storage.Session {
	f := form.New(nil)
	c := controller.New(controller.Options{
		Recognizer:     h.recognizer,
		Persister:      h.cfg.Persister,
		SaveResetDelay: h.cfg.SaveResetDelay,
		OnResult: func(result models.RecognitionResult) {
			f.SetInitial(result.ExtractedData)
		},
		OnReset: f.Reset,
	})

	session := &storage.Session{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now(),
		Controller: c,
		Form:       f,
	}
	h.sessionStore.Set(session.ID, session)
	slog.Info("Session created", "session_id", session.ID)
	return session
}
