package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/idcapture/internal/controller"
	"github.com/lehigh-university-libraries/idcapture/internal/storage"
)

// HandleProcess starts recognition of the session's selected file. With
// ?wait=true it blocks until the call completes.
func (h *Handler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	if session.Controller.State().SelectedFile == nil {
		h.writeError(w, "No file selected", http.StatusConflict)
		return
	}

	if r.URL.Query().Get("wait") == "true" {
		ctx, cancel := context.WithTimeout(r.Context(), h.cfg.ProcessingTimeout)
		defer cancel()
		if err := h.process(ctx, session); err != nil && !errors.Is(err, controller.ErrSuperseded) {
			h.writeError(w, "Processing failed: "+err.Error(), http.StatusBadGateway)
			return
		}
		h.writeJSON(w, session.Snapshot())
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.cfg.ProcessingTimeout)
		defer cancel()
		_ = h.process(ctx, session)
	}()

	h.writeJSONStatus(w, http.StatusAccepted, map[string]any{
		"session_id": session.ID,
		"message":    "Processing started",
	})
}

func (h *Handler) process(ctx context.Context, session *storage.Session) error {
	err := session.Controller.ProcessCurrentFile(ctx)
	switch {
	case errors.Is(err, controller.ErrSuperseded):
		slog.Info("Recognition superseded by newer selection", "session_id", session.ID)
	case err != nil:
		slog.Error("Recognition failed", "session_id", session.ID, "err", err)
	default:
		slog.Info("Recognition complete", "session_id", session.ID)
	}
	return err
}
