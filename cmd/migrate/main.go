package main

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"go-hiring/internal/shared/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// usage: migrate [-path migrations] up|down [n]|version
func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dir := flag.String("path", "migrations", "directory holding the SQL migrations")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}

	m, err := migrate.New("file://"+*dir, cfg.Postgres.URL())
	if err != nil {
		logger.Fatal("open migrations failed", zap.Error(err))
	}
	defer m.Close()

	cmd := flag.Arg(0)
	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		steps := 1
		if raw := flag.Arg(1); raw != "" {
			if steps, err = strconv.Atoi(raw); err != nil || steps <= 0 {
				logger.Fatal("invalid step count", zap.String("steps", raw))
			}
		}
		err = m.Steps(-steps)
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			logger.Fatal("read version failed", zap.Error(verr))
		}
		logger.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return
	default:
		logger.Error("unknown command, expected up, down or version", zap.String("command", cmd))
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("migration failed", zap.String("command", cmd), zap.Error(err))
	}
	logger.Info("migration complete", zap.String("command", cmd))
}
