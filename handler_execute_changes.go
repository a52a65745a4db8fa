package pgdesk

import (
	"net/http"
	"strings"
)

// handleExecuteChanges runs a batch of row changes through the pipeline.
// Mode "validated" (the default) checks the batch against the live table
// schema first; "unvalidated" skips the check entirely.
func (h *Handler) handleExecuteChanges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r, "executeChanges must be POST")
		return
	}
	var payload struct {
		Profile string        `json:"profile"`
		Schema  string        `json:"schema"`
		Table   string        `json:"table"`
		Changes []Change      `json:"changes"`
		Mode    ExecutionMode `json:"mode,omitempty"`
		Confirm bool          `json:"confirm,omitempty"`
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
	if len(payload.Changes) == 0 {
		WriteError(w, r, "changes are required")
		return
	}
	if !sanitizeIdent(payload.Table) || (payload.Schema != "" && !sanitizeIdent(payload.Schema)) {
		WriteError(w, r, "invalid identifier")
		return
	}
	mode := payload.Mode
	if mode == "" {
		mode = Validated
	}
	if mode != Validated && mode != Unvalidated {
		WriteError(w, r, "mode must be validated or unvalidated")
		return
	}

	// Payload-level target is the default for changes that omit their own.
	changes := payload.Changes
	for i := range changes {
		if changes[i].Schema == "" {
			changes[i].Schema = payload.Schema
		}
		if changes[i].Table == "" {
			changes[i].Table = payload.Table
		}
	}

	db, err := h.manager.GetClient(payload.Profile)
	if err != nil {
		WriteError(w, r, err.Error())
		return
	}
	h.manager.MarkBusy(payload.Profile)
	defer h.manager.MarkIdle(payload.Profile)

	var cols []ColumnDef
	if mode == Validated {
		cols, err = tableColumns(db, payload.Schema, payload.Table)
		if err != nil {
			WriteError(w, r, "table info: "+err.Error())
			return
		}
	}

	outcome := h.executor.ExecuteChanges(db, changes, mode, cols)
	WriteReply(w, r, ReplyExecutionComplete, map[string]any{
		"success":       outcome.Success,
		"error":         outcome.Error,
		"violations":    outcome.Violations,
		"applied":       outcome.Applied,
		"rows_affected": outcome.RowsAffected,
	})
}
