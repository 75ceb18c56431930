package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"storefront/config"
	"storefront/internal/infra/persistence/migration"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
)

func main() {
	dir := flag.String("dir", "", "migrations directory (defaults to persistence.migrationsDir)")
	steps := flag.Int("steps", 1, "migrations to roll back with down")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] up|down|version\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(flag.Arg(0), *dir, *steps, logger); err != nil {
		logger.Error("Migration failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(command, dir string, steps int, logger *slog.Logger) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	if cfg.Postgres == nil {
		return errors.New("postgres config is required")
	}
	if dir == "" {
		dir = cfg.Persistence.MigrationsDir
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return errors.Wrap(err, "failed to connect to PostgreSQL")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	defer sqlDB.Close()

	switch command {
	case "up":
		return migration.Up(sqlDB, dir, logger)
	case "down":
		if steps < 1 {
			return errors.Errorf("steps must be positive, got %d", steps)
		}

		return migration.Down(sqlDB, dir, steps, logger)
	case "version":
		version, dirty, err := migration.Version(sqlDB, dir)
		if err != nil {
			return err
		}
		logger.Info("Schema version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))

		return nil
	default:
		flag.Usage()

		return errors.Errorf("unknown command %q", command)
	}
}
