// Package pgdesk provides an embeddable PostgreSQL browser/editor backend
// for Go web applications: connection profile management, table data editing
// through a batched change pipeline, schema DDL building, and CSV
// import/export, all exposed through a single JSON endpoint driven by a
// command parameter.
package pgdesk

import (
	"net/http"
	"strings"

	"github.com/pgdesk/pgdesk/shared/secret"
)

// New constructs a Handler with defaults applied. Profiles and secrets are
// kept in memory unless overridden with WithProfileStore / WithSecretStore.
func New(o Options, opts ...func(*Handler)) *Handler {
	o = o.withDefaults()
	h := &Handler{
		opts:     o,
		profiles: NewMemoryProfileStore(),
		secrets:  secret.NewMemoryStore(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.manager = NewManager(h.profiles, h.secrets)
	h.executor = NewExecutor(SchemaValidator{})
	return h
}

// WithProfileStore replaces the default in-memory profile store.
func WithProfileStore(s ProfileStore) func(*Handler) {
	return func(h *Handler) { h.profiles = s }
}

// WithSecretStore replaces the default in-memory secret store.
func WithSecretStore(s secret.Store) func(*Handler) {
	return func(h *Handler) { h.secrets = s }
}

// Register mounts the handler on the provided mux at path.
func Register(mux *http.ServeMux, path string, h http.Handler) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	mux.Handle(path, h)
}
