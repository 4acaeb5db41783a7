package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/survey/internal/adapters/handler/http"
	"github.com/vncsmyrnk/survey/internal/adapters/mail"
	"github.com/vncsmyrnk/survey/internal/adapters/oauth/google"
	"github.com/vncsmyrnk/survey/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/survey/internal/adapters/webhook/svix"
	"github.com/vncsmyrnk/survey/internal/config"
	"github.com/vncsmyrnk/survey/internal/core/ports"
	"github.com/vncsmyrnk/survey/internal/core/services"
	"github.com/vncsmyrnk/survey/internal/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("server", os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("failed to reach database", zap.Error(err))
	}

	if cfg.Migrate {
		if err := postgres.Migrate(db); err != nil {
			log.Fatal("failed to apply migrations", zap.Error(err))
		}
		log.Info("migrations applied")
	}

	handler := newHandler(cfg, db, log)
	server := &stdhttp.Server{Addr: cfg.Addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("shutdown failed", zap.Error(err))
	}
}

func newHandler(cfg *config.Config, db *sql.DB, log *zap.Logger) stdhttp.Handler {
	// Repositories
	userRepo := postgres.NewUserRepository(db)
	authRepo := postgres.NewAuthRepository(db)
	surveyRepo := postgres.NewSurveyRepository(db)
	responseRepo := postgres.NewResponseRepository(db)
	rewardRepo := postgres.NewRewardRepository(db)
	resultsRepo := postgres.NewResultsRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, authRepo, google.NewVerifier(), cfg.JWTSecret, cfg.GoogleClientID)
	surveyService := services.NewSurveyService(surveyRepo)
	responseService := services.NewResponseService(surveyRepo, responseRepo)
	resultsService := services.NewResultsService(surveyRepo, responseRepo, resultsRepo)
	userService := services.NewUserService(userRepo, surveyRepo, responseRepo, rewardRepo)
	notificationService := services.NewNotificationService(surveyRepo, userRepo, notificationRepo, newNotifier(cfg, log), log)

	handlers := http.Handlers{
		Auth:         http.NewAuthHandler(authService, cfg.AuthRedirectURL, cfg.CookieDomain, stdhttp.SameSiteLaxMode),
		Survey:       http.NewSurveyHandler(surveyService, notificationService),
		Response:     http.NewResponseHandler(responseService),
		Results:      http.NewResultsHandler(resultsService),
		Notification: http.NewNotificationHandler(notificationService),
		User:         http.NewUserHandler(userService),
	}

	if cfg.IdentityWebhookSecret != "" {
		verifier, err := svix.NewVerifier(cfg.IdentityWebhookSecret)
		if err != nil {
			log.Fatal("invalid identity webhook secret", zap.Error(err))
		}
		handlers.Webhook = http.NewWebhookHandler(verifier, services.NewIdentitySyncService(userRepo))
	} else {
		log.Info("identity webhook disabled, IDENTITY_WEBHOOK_SECRET is not set")
	}

	return http.NewHandler(handlers, authService, cfg.AllowedOrigins, log)
}

func newNotifier(cfg *config.Config, log *zap.Logger) ports.Notifier {
	if !cfg.MailEnabled() {
		log.Warn("mail delivery disabled, SMTP_HOST is not set")
		return mail.Disabled{}
	}

	notifier, err := mail.NewSMTPNotifier(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		AppURL:   cfg.AppURL,
	})
	if err != nil {
		log.Fatal("failed to configure mail", zap.Error(err))
	}
	return notifier
}
