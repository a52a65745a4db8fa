package pgdesk

import (
	"net/http"

	"github.com/pgdesk/pgdesk/shared/secret"
)

// Handler implements http.Handler for the single-endpoint router controlled
// by a query command.
type Handler struct {
	opts     Options
	profiles ProfileStore
	secrets  secret.Store
	manager  *Manager
	executor *Executor
}

// Manager exposes the connection manager for embedders that need lifecycle
// control (e.g. CloseAll on shutdown).
func (h *Handler) Manager() *Manager { return h.manager }

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "no-referrer")

	command := r.URL.Query().Get(h.opts.CommandParam)
	switch command {
	case CommandHealthz:
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	case CommandReadyz:
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	case CommandTestConnection:
		h.handleTestConnection(w, r)
	case CommandSaveConnection:
		h.handleSaveConnection(w, r)
	case CommandListConnections:
		h.handleListConnections(w, r)
	case CommandDeleteConnection:
		h.handleDeleteConnection(w, r)
	case CommandConnect:
		h.handleConnect(w, r)
	case CommandDisconnect:
		h.handleDisconnect(w, r)
	case CommandListSchemas:
		h.handleListSchemas(w, r)
	case CommandListTables:
		h.handleListTables(w, r)
	case CommandTableInfo:
		h.handleTableInfo(w, r)
	case CommandBrowseRows:
		h.handleBrowseRows(w, r)
	case CommandExecuteChanges:
		h.handleExecuteChanges(w, r)
	case CommandExecuteSchemaChanges:
		h.handleExecuteSchemaChanges(w, r)
	case CommandDropTableExecute:
		h.handleDropTable(w, r)
	case CommandImportCSV:
		h.handleImportCSV(w, r)
	case CommandExportCSV:
		h.handleExportCSV(w, r)
	default:
		WriteError(w, r, "unknown command: "+command)
	}
}

// requireMutable rejects mutating commands in read-only mode and, when safe
// mode is on, without an explicit confirmation. Returns false after writing
// the error.
func (h *Handler) requireMutable(w http.ResponseWriter, r *http.Request, confirmed bool) bool {
	if h.opts.ReadOnlyMode {
		WriteError(w, r, "read-only mode: mutating commands are disabled")
		return false
	}
	if h.opts.SafeModeDefault && !confirmed {
		WriteError(w, r, "confirmation required (set confirm to true)")
		return false
	}
	return true
}
