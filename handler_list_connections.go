package pgdesk

import "net/http"

// handleListConnections lists saved profiles with their advisory state.
// Profile metadata never contains secrets, so the list is safe to return
// as-is.
func (h *Handler) handleListConnections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r, "listConnections must be GET")
		return
	}
	type view struct {
		ConnectionProfile
		State ConnState `json:"state"`
	}
	list := h.profiles.List()
	views := make([]view, len(list))
	for i, p := range list {
		views[i] = view{ConnectionProfile: p, State: h.manager.State(p.ID)}
	}
	WriteReply(w, r, "connections", map[string]any{"profiles": views})
}
