package pgdesk

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	api "github.com/dracory/api"
)

// WriteSuccess writes a success envelope with a message.
func WriteSuccess(w http.ResponseWriter, r *http.Request, msg string) {
	api.Respond(w, r, api.Success(msg))
}

// WriteReply writes a success envelope whose data carries the reply command
// name, so UI clients can route the response.
func WriteReply(w http.ResponseWriter, r *http.Request, reply string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["command"] = reply
	api.Respond(w, r, api.SuccessWithData(reply, data))
}

// WriteError writes an error envelope with message. Every handler failure
// flows through here, so this is also where failures get logged.
func WriteError(w http.ResponseWriter, r *http.Request, msg string) {
	slog.Warn("command_failed",
		slog.String("id", GetRequestID(r.Context())),
		slog.String("path", r.URL.RequestURI()),
		slog.String("error", msg),
	)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	api.Respond(w, r, api.Error(msg))
}

// decodePayload parses the JSON request body into v. An empty body is an
// error: every command that calls this requires a payload.
func decodePayload(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("payload is required")
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid payload: %v", err)
	}
	return nil
}
