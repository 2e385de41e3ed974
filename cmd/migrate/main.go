// Command migrate applies the schema migrations without starting the
// server. Useful for deploy pipelines where the schema moves ahead of
// the application rollout.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"luman/internal/config"
	"luman/internal/repository/postgres"
)

func main() {
	_ = godotenv.Load()

	source := flag.String("source", "file://migrations", "migration source URL")
	flag.Parse()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := postgres.Migrate(cfg.DatabaseURL, *source, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	logger.Info("migrations complete")
}
