package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lehigh-university-libraries/idcapture/internal/form"
)

type formRequest struct {
	Fields map[string]string `json:"fields"`
	Submit bool              `json:"submit"`
}

// HandleForm applies field edits and optionally submits the form. A valid
// submission is saved through the session's controller.
func (h *Handler) HandleForm(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	var request formRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if session.Controller.State().Result == nil {
		h.writeError(w, "No recognition result to review", http.StatusConflict)
		return
	}

	for name, value := range request.Fields {
		if err := session.Form.SetField(name, value); err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if !request.Submit {
		h.writeJSON(w, session.Snapshot())
		return
	}

	data, err := session.Form.Submit()
	if errors.Is(err, form.ErrInvalid) {
		h.writeJSONStatus(w, http.StatusUnprocessableEntity, session.Snapshot())
		return
	}
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := session.Controller.SaveResult(r.Context(), data); err != nil {
		h.writeJSONStatus(w, http.StatusBadGateway, session.Snapshot())
		return
	}
	h.writeJSON(w, session.Snapshot())
}
