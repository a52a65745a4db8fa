package main

import (
	"fmt"
	"log"
	"net/http"

	pgdesk "github.com/pgdesk/pgdesk"
	"github.com/pgdesk/pgdesk/shared/secret"
)

func main() {
	cfg, err := pgdesk.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	var opts []func(*pgdesk.Handler)
	if cfg.ProfileDBPath != "" {
		store, err := pgdesk.NewGormProfileStore(cfg.ProfileDBPath)
		if err != nil {
			log.Fatalf("profile store: %v", err)
		}
		opts = append(opts, pgdesk.WithProfileStore(store))
	}
	if cfg.SecretsPath != "" {
		store, err := secret.NewFileStore(cfg.SecretsPath)
		if err != nil {
			log.Fatalf("secret store: %v", err)
		}
		opts = append(opts, pgdesk.WithSecretStore(store))
	}

	h := pgdesk.New(pgdesk.Options{
		SafeModeDefault: cfg.SafeModeDefault,
		ReadOnlyMode:    cfg.ReadOnlyMode,
		CommandParam:    cfg.CommandParam,
		BasePath:        cfg.BasePath,
	}, opts...)
	defer h.Manager().CloseAll()

	mux := http.NewServeMux()
	pgdesk.Register(mux, cfg.BasePath, h)
	handler := pgdesk.RequestLogger(cfg.CommandParam, mux)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	log.Printf("pgdesk listening on %s (mount %s)", addr, cfg.BasePath)
	log.Fatal(http.ListenAndServe(addr, handler))
}
