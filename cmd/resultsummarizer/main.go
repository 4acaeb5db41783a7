package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/survey/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/survey/internal/config"
	"github.com/vncsmyrnk/survey/internal/core/services"
	"github.com/vncsmyrnk/survey/internal/logger"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load env: %v\n", err)
		os.Exit(1)
	}
	cfg := config.FromEnv()

	var timeout time.Duration
	flag.StringVar(&cfg.DBHost, "db-host", cfg.DBHost, "Database host")
	flag.StringVar(&cfg.DBPort, "db-port", cfg.DBPort, "Database port")
	flag.StringVar(&cfg.DBUser, "db-user", cfg.DBUser, "Database user")
	flag.StringVar(&cfg.DBPassword, "db-pass", cfg.DBPassword, "Database password")
	flag.StringVar(&cfg.DBName, "db-name", cfg.DBName, "Database name")
	flag.StringVar(&cfg.DatabaseURL, "db-url", cfg.DatabaseURL, "PostgreSQL connection URL")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "job timeout")
	flag.Parse()

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

	if err := db.Ping(); err != nil {
		log.Fatal("failed to reach database", zap.Error(err))
	}

	summaryService := services.NewSummaryService(
		postgres.NewSurveyRepository(db),
		postgres.NewResponseRepository(db),
		postgres.NewResultsRepository(db),
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	log.Info("starting results summarization job")

	if err := summaryService.SummarizeAllResults(ctx); err != nil {
		log.Fatal("results summarization failed", zap.Error(err))
	}

	log.Info("results summarization completed", zap.Duration("elapsed", time.Since(start)))
}
