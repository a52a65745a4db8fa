package pgdesk

import (
	"net/http"
	"strings"
)

// handleTableInfo returns column metadata for a table. The schema designer
// and the validator consume the same shape.
func (h *Handler) handleTableInfo(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	profile := strings.TrimSpace(q.Get("profile"))
	schema := strings.TrimSpace(q.Get("schema"))
	table := strings.TrimSpace(q.Get("table"))
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
		WriteError(w, r, err.Error())
		return
	}
	WriteReply(w, r, "tableInfo", map[string]any{"schema": schema, "table": table, "columns": cols})
}
