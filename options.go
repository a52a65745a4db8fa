package pgdesk

// Options configures the embedded handler.
type Options struct {
	// SafeModeDefault turns on guardrails for destructive commands by default
	SafeModeDefault bool

	// ReadOnlyMode blocks all mutating commands regardless of DB grants
	ReadOnlyMode bool

	// CommandParam is the query param that selects behavior (default: "command")
	CommandParam string

	// BasePath is the mount path for the handler (for generating links), e.g. "/db"
	BasePath string
}

// withDefaults applies default values to Options.
func (o Options) withDefaults() Options {
	if o.CommandParam == "" {
		o.CommandParam = "command"
	}
	if o.BasePath == "" {
		o.BasePath = "/db"
	}
	return o
}
