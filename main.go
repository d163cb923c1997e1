package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"guessmaster/internal/history"
	"guessmaster/internal/httpserver"
	"guessmaster/internal/registry"
	"guessmaster/internal/scores"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(getEnv("DB_PATH", "./data/guessmaster.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	scoreStore, err := scores.NewFileStore(getEnv("DATA_DIR", "data"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open score store")
	}

	reg := registry.New(scoreStore, registry.Config{})
	defer reg.Close()

	srv := httpserver.New(reg, scoreStore, history.NewStore(db), getEnv("SESSION_SECRET", "dev_secret_change_me"))
	port := getEnv("PORT", "5176")
	log.Info().Str("port", port).Msg("starting guessmaster server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
