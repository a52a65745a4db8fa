package pgdesk

import (
	"net/http"
	"strconv"
	"strings"
)

// handleBrowseRows selects rows from a table with pagination. The connection
// is marked busy for the duration so the UI can show progress.
func (h *Handler) handleBrowseRows(w http.ResponseWriter, r *http.Request) {
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
	limit := 50
	offset := 0
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	db, err := h.manager.GetClient(profile)
	if err != nil {
		WriteError(w, r, err.Error())
		return
	}
	h.manager.MarkBusy(profile)
	defer h.manager.MarkIdle(profile)

	sqlStr := "SELECT * FROM " + QualifiedName(schema, table) + " LIMIT ? OFFSET ?"
	rows, err := db.Raw(sqlStr, limit, offset).Rows()
	if err != nil {
		WriteError(w, r, err.Error())
		return
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		WriteError(w, r, err.Error())
		return
	}
	out := make([]map[string]any, 0, limit)
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			WriteError(w, r, err.Error())
			return
		}
		m := make(map[string]any, len(cols))
		for i, c := range cols {
			m[c] = normalizeCell(vals[i])
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		WriteError(w, r, err.Error())
		return
	}
	WriteReply(w, r, "rows", map[string]any{
		"columns": cols,
		"rows":    out,
		"limit":   limit,
		"offset":  offset,
	})
}

// normalizeCell makes scanned values JSON-friendly.
func normalizeCell(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
