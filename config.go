package pgdesk

import (
	"flag"

	"github.com/dracory/env"
)

// Config holds configuration for the standalone server.
type Config struct {
	HTTPPort        int
	BasePath        string
	CommandParam    string
	SafeModeDefault bool
	ReadOnlyMode    bool

	// ProfileDBPath is the SQLite file for persisted profiles; empty keeps
	// profiles in memory.
	ProfileDBPath string

	// SecretsPath is the file for persisted secrets; empty keeps secrets in
	// memory.
	SecretsPath string
}

// LoadConfig reads flags/env with sensible defaults.
// Flags take precedence over env.
func LoadConfig() (Config, error) {
	var cfg Config

	// Optionally load from .env files (missing files are ignored inside the lib)
	env.Load(".env")

	cfg.HTTPPort = env.GetIntOrDefault("HTTP_PORT", 8080)
	cfg.BasePath = env.GetStringOrDefault("BASE_URL", "/db")
	cfg.CommandParam = env.GetStringOrDefault("COMMAND_PARAM", "command")
	cfg.SafeModeDefault = env.GetBoolOrDefault("SAFE_MODE_DEFAULT", true)
	cfg.ReadOnlyMode = env.GetBoolOrDefault("READ_ONLY", false)
	cfg.ProfileDBPath = env.GetStringOrDefault("PROFILE_DB_PATH", "")
	cfg.SecretsPath = env.GetStringOrDefault("SECRETS_PATH", "")

	port := flag.Int("port", cfg.HTTPPort, "HTTP port to listen on")
	base := flag.String("base", cfg.BasePath, "Base path to mount handler under (e.g. /db)")
	safe := flag.Bool("safe", cfg.SafeModeDefault, "Safe mode default (require confirm on destructive ops)")
	readonly := flag.Bool("readonly", cfg.ReadOnlyMode, "Block all mutating commands")
	profileDB := flag.String("profiles", cfg.ProfileDBPath, "SQLite file for persisted profiles (empty: in-memory)")
	secretsPath := flag.String("secrets", cfg.SecretsPath, "File for persisted secrets (empty: in-memory)")
	flag.Parse()

	cfg.HTTPPort = *port
	cfg.BasePath = *base
	cfg.SafeModeDefault = *safe
	cfg.ReadOnlyMode = *readonly
	cfg.ProfileDBPath = *profileDB
	cfg.SecretsPath = *secretsPath

	return cfg, nil
}
