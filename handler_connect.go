package pgdesk

import (
	"errors"
	"net/http"
)

// handleConnect warms the cached client for a named profile and reports its
// state. Reconnecting an already-connected profile reuses the cache.
func (h *Handler) handleConnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r, "connect must be POST")
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
	if _, err := h.manager.GetClient(payload.Profile); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			WriteError(w, r, err.Error())
			return
		}
		WriteError(w, r, "connect: "+err.Error())
		return
	}
	WriteReply(w, r, "connected", map[string]any{
		"profile": payload.Profile,
		"state":   h.manager.State(payload.Profile),
	})
}
