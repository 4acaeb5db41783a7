package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/survey/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/survey/internal/config"
	"github.com/vncsmyrnk/survey/internal/logger"
	"go.uber.org/zap"
)

const usage = `usage: migrations [-db-url url] <command>

commands:
  up          apply every pending migration
  down        revert every migration
  steps N     apply (N > 0) or revert (N < 0) N migrations
  version     print the current schema version
`

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load env: %v\n", err)
		os.Exit(1)
	}
	cfg := config.FromEnv()

	flag.StringVar(&cfg.DatabaseURL, "db-url", cfg.DatabaseURL, "PostgreSQL connection URL")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	m, err := postgres.NewMigrator(db)
	if err != nil {
		log.Fatal("failed to prepare migrations", zap.Error(err))
	}

	if err := run(m, flag.Args(), log); err != nil {
		log.Fatal("migration failed", zap.String("command", flag.Arg(0)), zap.Error(err))
	}
}

func run(m *migrate.Migrate, args []string, log *zap.Logger) error {
	var err error
	switch args[0] {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		if len(args) < 2 {
			return errors.New("steps needs a count")
		}
		n, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			return fmt.Errorf("invalid step count %q: %w", args[1], convErr)
		}
		err = m.Steps(n)
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			return verr
		}
		log.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("no pending migrations")
		return nil
	}
	if err != nil {
		return err
	}

	log.Info("migrations executed successfully", zap.String("command", args[0]))
	return nil
}
