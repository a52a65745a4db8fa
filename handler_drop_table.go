package pgdesk

import (
	"net/http"
	"strings"
)

// handleDropTable drops a table, appending CASCADE only when explicitly
// requested.
func (h *Handler) handleDropTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r, "dropTableExecute must be POST")
		return
	}
	var payload struct {
		Profile string `json:"profile"`
		Schema  string `json:"schema"`
		Table   string `json:"table"`
		Cascade bool   `json:"cascade,omitempty"`
		Confirm bool   `json:"confirm,omitempty"`
	}
	if err := decodePayload(r, &payload); err != nil {
		WriteError(w, r, err.Error())
		return
	}
	if !h.requireMutable(w, r, payload.Confirm) {
		return
	}
	if payload.Profile == "" || strings.TrimSpace(payload.Table) == "" {
		WriteError(w, r, "profile and table are required")
		return
	}
	if !sanitizeIdent(payload.Table) || (payload.Schema != "" && !sanitizeIdent(payload.Schema)) {
		WriteError(w, r, "invalid identifier")
		return
	}

	stmt := BuildDropTableSQL(payload.Schema, payload.Table, payload.Cascade)

	db, err := h.manager.GetClient(payload.Profile)
	if err != nil {
		WriteError(w, r, err.Error())
		return
	}
	h.manager.MarkBusy(payload.Profile)
	defer h.manager.MarkIdle(payload.Profile)

	if err := db.Exec(stmt).Error; err != nil {
		WriteError(w, r, err.Error())
		return
	}
	WriteReply(w, r, ReplyExecutionComplete, map[string]any{"success": true, "sql": stmt})
}
