package pgdesk

import "net/http"

// handleDisconnect closes and evicts the cached client for a profile.
// Disconnecting a profile with no cached client is a no-op.
func (h *Handler) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r, "disconnect must be POST")
		return
	}
	var payload struct {
		Profile string `json:"profile"`
	}
	if err := decodePayload(r, &payload); err != nil {
		WriteError(w, r, err.Error())
		return
	}
	if payload.Profile == "" {
		WriteError(w, r, "profile is required")
		return
	}
	h.manager.Disconnect(payload.Profile)
	WriteSuccess(w, r, "disconnected")
}
