package pgdesk

import (
	"net/http"
	"strings"
)

// handleImportCSV inserts rows parsed from a CSV request body. Values are
// coerced into column types during parsing, so the batch runs Unvalidated.
// Query params: profile, schema, table, confirm.
func (h *Handler) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r, "importCsv must be POST")
		return
	}
	q := r.URL.Query()
	profile := strings.TrimSpace(q.Get("profile"))
	schema := strings.TrimSpace(q.Get("schema"))
	table := strings.TrimSpace(q.Get("table"))
	confirmed := q.Get("confirm") == "true" || q.Get("confirm") == "yes"
	if !h.requireMutable(w, r, confirmed) {
		return
	}
	if profile == "" || table == "" {
		WriteError(w, r, "profile and table are required")
		return
	}
	if !sanitizeIdent(table) || (schema != "" && !sanitizeIdent(schema)) {
		WriteError(w, r, "invalid identifier")
		return
	}

	db, err := h.manager.GetClient(profile)
	if err != nil {
		WriteError(w, r, err.Error())
		return
	}
	cols, err := tableColumns(db, schema, table)
	if err != nil {
		WriteError(w, r, "table info: "+err.Error())
		return
	}

	changes, err := ImportCSV(r.Body, schema, table, cols)
	if err != nil {
		WriteError(w, r, err.Error())
		return
	}
	if len(changes) == 0 {
		WriteError(w, r, "csv has no data rows")
		return
	}

	h.manager.MarkBusy(profile)
	defer h.manager.MarkIdle(profile)

	outcome := h.executor.ExecuteChanges(db, changes, Unvalidated, nil)
	WriteReply(w, r, ReplyExecutionComplete, map[string]any{
		"success":       outcome.Success,
		"error":         outcome.Error,
		"applied":       outcome.Applied,
		"rows_affected": outcome.RowsAffected,
	})
}
