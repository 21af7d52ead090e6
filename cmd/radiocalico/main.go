// Command radiocalico serves the Radio Calico voting backend and, when a
// static directory is configured, the player frontend alongside it.
package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"radiocalico/internal/app/users"
	"radiocalico/internal/app/votes"
	"radiocalico/internal/http/middleware"
	"radiocalico/internal/httpapi"
	"radiocalico/internal/logging"
)

func main() {
	cfg := loadConfig()

	logging.SetGlobal(logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}))

	ctx := context.Background()

	db, binding, err := openDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	if err := binding.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure schema")
	}

	voteSvc := votes.New(binding, binding, binding)
	userSvc := users.New(binding)

	handler := httpapi.New(voteSvc, userSvc, db, cfg.StaticDir).Routes()
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	handler = middleware.Recovery()(handler)
	handler = middleware.RequestLogging()(handler)

	log.Info().
		Str("addr", cfg.Addr).
		Str("database", redactDSN(cfg.DatabaseURL)).
		Msg("radiocalico listening")

	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
