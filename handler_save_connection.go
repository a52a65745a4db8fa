package pgdesk

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// handleSaveConnection persists a new connection profile and its password.
// The password goes to the secret store only; when storing it fails the
// profile row is rolled back so the two never diverge.
func (h *Handler) handleSaveConnection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r, "saveConnection must be POST")
		return
	}
	var payload struct {
		Name string `json:"name"`
		ConnectionDescriptor
		Password string `json:"password,omitempty"`
	}
	if err := decodePayload(r, &payload); err != nil {
		WriteError(w, r, err.Error())
		return
	}
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		WriteError(w, r, "name is required")
		return
	}
	if payload.ConnString == "" && payload.Database == "" {
		WriteError(w, r, "conn_string or database is required")
		return
	}
	if _, exists := h.profiles.FindByName(name); exists {
		WriteError(w, r, "profile name already in use: "+name)
		return
	}

	p := ConnectionProfile{
		ID:         uuid.New().String(),
		Name:       name,
		ConnString: payload.ConnString,
		Host:       payload.Host,
		Port:       payload.Port,
		Database:   payload.Database,
		Username:   payload.Username,
		SSLMode:    payload.SSLMode,
	}
	if err := h.profiles.Save(p); err != nil {
		WriteError(w, r, err.Error())
		return
	}
	if payload.Password != "" {
		if err := h.secrets.Set(secretKey(p.ID), []byte(payload.Password)); err != nil {
			_ = h.profiles.Delete(p.ID)
			WriteError(w, r, "save password: "+err.Error())
			return
		}
	}
	WriteReply(w, r, ReplySaveResult, map[string]any{"profile": p})
}
