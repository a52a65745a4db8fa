package pgdesk_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgdesk/pgdesk"
)

func doRequest(t *testing.T, h http.Handler, method, url, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandler_Probes(t *testing.T) {
	h := pgdesk.New(pgdesk.Options{})

	rr := doRequest(t, h, "GET", "/?command=healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())

	rr = doRequest(t, h, "GET", "/?command=readyz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ready", rr.Body.String())
}

func TestHandler_UnknownCommand(t *testing.T) {
	h := pgdesk.New(pgdesk.Options{})
	rr := doRequest(t, h, "GET", "/?command=nonexistent", "")
	assert.Contains(t, rr.Body.String(), "unknown command")
}

func TestHandler_TestConnectionRequiresPOST(t *testing.T) {
	h := pgdesk.New(pgdesk.Options{})
	rr := doRequest(t, h, "GET", "/?command=testConnection", "")
	assert.Contains(t, rr.Body.String(), "must be POST")
}

func TestHandler_SaveAndListConnections(t *testing.T) {
	h := pgdesk.New(pgdesk.Options{})

	payload := `{"name":"dev","host":"localhost","port":5432,"database":"app","username":"app","password":"hunter2"}`
	rr := doRequest(t, h, "POST", "/?command=saveConnection", payload)
	assert.Contains(t, rr.Body.String(), pgdesk.ReplySaveResult)
	assert.Contains(t, rr.Body.String(), `"dev"`)
	// the secret never appears in profile payloads
	assert.NotContains(t, rr.Body.String(), "hunter2")

	rr = doRequest(t, h, "GET", "/?command=listConnections", "")
	assert.Contains(t, rr.Body.String(), `"dev"`)
	assert.Contains(t, rr.Body.String(), string(pgdesk.StateDisconnected))
	assert.NotContains(t, rr.Body.String(), "hunter2")
}

func TestHandler_SaveConnectionDuplicateName(t *testing.T) {
	h := pgdesk.New(pgdesk.Options{})

	payload := `{"name":"dev","database":"app"}`
	doRequest(t, h, "POST", "/?command=saveConnection", payload)
	rr := doRequest(t, h, "POST", "/?command=saveConnection", payload)
	assert.Contains(t, rr.Body.String(), "already in use")
}

func TestHandler_SaveConnectionRequiresName(t *testing.T) {
	h := pgdesk.New(pgdesk.Options{})
	rr := doRequest(t, h, "POST", "/?command=saveConnection", `{"database":"app"}`)
	assert.Contains(t, rr.Body.String(), "name is required")
}

func TestHandler_DeleteConnection(t *testing.T) {
	store := pgdesk.NewMemoryProfileStore()
	h := pgdesk.New(pgdesk.Options{}, pgdesk.WithProfileStore(store))

	doRequest(t, h, "POST", "/?command=saveConnection", `{"name":"dev","database":"app"}`)
	p, ok := store.FindByName("dev")
	require.True(t, ok)

	body, err := json.Marshal(map[string]string{"id": p.ID})
	require.NoError(t, err)
	rr := doRequest(t, h, "POST", "/?command=deleteConnection", string(body))
	assert.Contains(t, rr.Body.String(), "deleted")

	_, ok = store.FindByName("dev")
	assert.False(t, ok)
}

func TestHandler_ConnectUnknownProfile(t *testing.T) {
	h := pgdesk.New(pgdesk.Options{})
	rr := doRequest(t, h, "POST", "/?command=connect", `{"profile":"ghost"}`)
	assert.Contains(t, rr.Body.String(), "connection not found")
}

func TestHandler_SafeModeRequiresConfirm(t *testing.T) {
	h := pgdesk.New(pgdesk.Options{SafeModeDefault: true})

	rr := doRequest(t, h, "POST", "/?command=dropTableExecute", `{"profile":"dev","schema":"public","table":"logs"}`)
	assert.Contains(t, rr.Body.String(), "confirmation required")

	rr = doRequest(t, h, "POST", "/?command=executeChanges", `{"profile":"dev","table":"users","changes":[{"kind":"insert","values":{"a":1}}]}`)
	assert.Contains(t, rr.Body.String(), "confirmation required")
}

func TestHandler_ReadOnlyModeBlocksMutations(t *testing.T) {
	h := pgdesk.New(pgdesk.Options{ReadOnlyMode: true})

	for _, payload := range []string{
		`{"profile":"dev","table":"users","changes":[{"kind":"insert","values":{"a":1}}],"confirm":true}`,
	} {
		rr := doRequest(t, h, "POST", "/?command=executeChanges", payload)
		assert.Contains(t, rr.Body.String(), "read-only mode")
	}

	rr := doRequest(t, h, "POST", "/?command=dropTableExecute", `{"profile":"dev","table":"logs","confirm":true}`)
	assert.Contains(t, rr.Body.String(), "read-only mode")
}

func TestHandler_ExecuteChangesValidation(t *testing.T) {
	h := pgdesk.New(pgdesk.Options{})

	rr := doRequest(t, h, "POST", "/?command=executeChanges", `{"profile":"dev","table":"users","changes":[]}`)
	assert.Contains(t, rr.Body.String(), "changes are required")

	rr = doRequest(t, h, "POST", "/?command=executeChanges", `{"profile":"dev","table":"users;drop","changes":[{"kind":"insert","values":{"a":1}}]}`)
	assert.Contains(t, rr.Body.String(), "invalid identifier")

	rr = doRequest(t, h, "POST", "/?command=executeChanges", `{"profile":"dev","table":"users","mode":"sometimes","changes":[{"kind":"insert","values":{"a":1}}]}`)
	assert.Contains(t, rr.Body.String(), "mode must be validated or unvalidated")
}

func TestHandler_SchemaChangesValidation(t *testing.T) {
	h := pgdesk.New(pgdesk.Options{})

	rr := doRequest(t, h, "POST", "/?command=executeSchemaChanges", `{"profile":"dev","table":"users","operation":"rename"}`)
	assert.Contains(t, rr.Body.String(), "operation must be create or alter")

	rr = doRequest(t, h, "POST", "/?command=executeSchemaChanges", `{"profile":"dev","table":"users","operation":"create","columns":"   "}`)
	assert.Contains(t, rr.Body.String(), "empty input")
}
