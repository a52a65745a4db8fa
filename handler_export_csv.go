package pgdesk

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
)

// handleExportCSV streams a table as CSV. The first record is the header.
func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
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
	h.manager.MarkBusy(profile)
	defer h.manager.MarkIdle(profile)

	rows, err := db.Raw("SELECT * FROM " + QualifiedName(schema, table)).Rows()
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

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+table+`.csv"`)
	cw := csv.NewWriter(w)
	_ = cw.Write(cols)

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	record := make([]string, len(cols))
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			// Headers are already sent; abort the stream.
			return
		}
		for i, v := range vals {
			record[i] = formatCSVValue(v)
		}
		_ = cw.Write(record)
	}
	cw.Flush()
}

func formatCSVValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
