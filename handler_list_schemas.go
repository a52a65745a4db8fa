package pgdesk

import (
	"net/http"
	"strings"
)

// handleListSchemas returns available schemas for the profile's database.
func (h *Handler) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	profile := strings.TrimSpace(r.URL.Query().Get("profile"))
	if profile == "" {
		WriteError(w, r, "profile is required")
		return
	}
	db, err := h.manager.GetClient(profile)
	if err != nil {
		WriteError(w, r, err.Error())
		return
	}
	type row struct{ Name string }
	var rows []row
	err = db.Raw(
		`SELECT schema_name AS name FROM information_schema.schemata
		 WHERE schema_name NOT IN ('pg_catalog', 'information_schema')
		 ORDER BY name`,
	).Scan(&rows).Error
	if err != nil {
		WriteError(w, r, err.Error())
		return
	}
	names := make([]string, len(rows))
	for i, rw := range rows {
		names[i] = rw.Name
	}
	WriteReply(w, r, "schemas", map[string]any{"schemas": names})
}
