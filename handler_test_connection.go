package pgdesk

import "net/http"

// handleTestConnection probes connectivity for a descriptor without
// retaining a client. The reply is testResult with success or the driver
// error text.
func (h *Handler) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r, "testConnection must be POST")
		return
	}
	var payload struct {
		ConnectionDescriptor
		Password string `json:"password,omitempty"`
	}
	if err := decodePayload(r, &payload); err != nil {
		WriteError(w, r, err.Error())
		return
	}
	res := h.manager.TestConnection(payload.ConnectionDescriptor, payload.Password)
	data := map[string]any{"success": res.Success}
	if res.Error != "" {
		data["error"] = res.Error
	}
	WriteReply(w, r, ReplyTestResult, data)
}
