package pgdesk

import "net/http"

// handleDeleteConnection removes a profile, its secret, and any cached
// client.
func (h *Handler) handleDeleteConnection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r, "deleteConnection must be POST")
		return
	}
	var payload struct {
		ID string `json:"id"`
	}
	if err := decodePayload(r, &payload); err != nil {
		WriteError(w, r, err.Error())
		return
	}
	if payload.ID == "" {
		WriteError(w, r, "id is required")
		return
	}
	h.manager.Disconnect(payload.ID)
	_ = h.secrets.Delete(secretKey(payload.ID))
	if err := h.profiles.Delete(payload.ID); err != nil {
		WriteError(w, r, err.Error())
		return
	}
	WriteSuccess(w, r, "deleted")
}
