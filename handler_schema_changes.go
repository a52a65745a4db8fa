package pgdesk

import (
	"net/http"
	"strings"
)

// handleExecuteSchemaChanges builds and executes CREATE TABLE or ALTER TABLE
// DDL from the schema designer. The generated SQL is echoed back so the UI
// can display what ran.
func (h *Handler) handleExecuteSchemaChanges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r, "executeSchemaChanges must be POST")
		return
	}
	var payload struct {
		Profile   string `json:"profile"`
		Schema    string `json:"schema"`
		Table     string `json:"table"`
		Operation string `json:"operation"` // "create" | "alter"
		Columns   string `json:"columns,omitempty"`
		Clause    string `json:"clause,omitempty"`
		Confirm   bool   `json:"confirm,omitempty"`
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

	var stmt string
	var err error
	switch payload.Operation {
	case "create":
		stmt, err = BuildCreateTableSQL(payload.Schema, payload.Table, payload.Columns)
	case "alter":
		stmt, err = BuildAlterTableSQL(payload.Schema, payload.Table, payload.Clause)
	default:
		WriteError(w, r, "operation must be create or alter")
		return
	}
	if err != nil {
		WriteError(w, r, err.Error())
		return
	}

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
