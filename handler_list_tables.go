package pgdesk

import (
	"net/http"
	"strconv"
	"strings"
)

// handleListTables returns table names for a schema, with optional name
// search and paging.
func (h *Handler) handleListTables(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	profile := strings.TrimSpace(q.Get("profile"))
	if profile == "" {
		WriteError(w, r, "profile is required")
		return
	}
	schema := strings.TrimSpace(q.Get("schema"))
	if schema == "" {
		schema = "public"
	}
	search := strings.TrimSpace(q.Get("q"))
	includeViews := q.Get("include_views") != "" && q.Get("include_views") != "0"
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

	base := "SELECT table_name AS name FROM information_schema.tables WHERE table_schema = ?"
	args := []any{schema}
	if !includeViews {
		base += " AND table_type = 'BASE TABLE'"
	}
	if search != "" {
		base += " AND table_name ILIKE ?"
		args = append(args, "%"+search+"%")
	}
	base += " ORDER BY name LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	type row struct{ Name string }
	var rows []row
	if err := db.Raw(base, args...).Scan(&rows).Error; err != nil {
		WriteError(w, r, err.Error())
		return
	}
	names := make([]string, len(rows))
	for i, rw := range rows {
		names[i] = rw.Name
	}
	WriteReply(w, r, "tables", map[string]any{"schema": schema, "tables": names})
}
