// Package config reads service settings from the environment, an optional
// .env file and command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Config struct {
	Addr  string
	Debug bool
	// Migrate applies pending migrations before the server starts.
	Migrate bool

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	JWTSecret       string
	GoogleClientID  string
	AuthRedirectURL string
	CookieDomain    string
	AllowedOrigins  []string

	AppURL                string
	SMTP                  SMTP
	IdentityWebhookSecret string
	LogLevel              string
}

// LoadEnv loads .env into the process environment. A missing file is not an error.
func LoadEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// FromEnv builds a Config from environment variables only.
func FromEnv() *Config {
	return &Config{
		Addr:                  getenv("HTTP_ADDR", "0.0.0.0:8080"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		DBHost:                getenv("POSTGRES_HOST", "localhost"),
		DBPort:                getenv("POSTGRES_PORT", "5432"),
		DBUser:                os.Getenv("POSTGRES_USER"),
		DBPassword:            os.Getenv("POSTGRES_PASSWORD"),
		DBName:                os.Getenv("POSTGRES_DB"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		GoogleClientID:        os.Getenv("GOOGLE_CLIENT_ID"),
		AuthRedirectURL:       getenv("AUTH_REDIRECT_URL", "/"),
		CookieDomain:          os.Getenv("COOKIE_DOMAIN"),
		AllowedOrigins:        splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		AppURL:                getenv("APP_URL", "http://localhost:3000"),
		IdentityWebhookSecret: os.Getenv("IDENTITY_WEBHOOK_SECRET"),
		LogLevel:              getenv("LOG_LEVEL", "info"),
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getenvInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
	}
}

// Load reads the .env file and the environment, then applies flags parsed
// from args (usually os.Args[1:]).
func Load(name string, args []string) (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	cfg := FromEnv()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.DatabaseURL, "db-url", cfg.DatabaseURL, "PostgreSQL connection URL, overrides the POSTGRES_* settings")
	fs.BoolVar(&cfg.Debug, "debug", false, "development logging")
	fs.BoolVar(&cfg.Migrate, "migrate", false, "apply migrations on start-up")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.Debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// DSN returns the database connection string.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Validate reports every setting the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.DatabaseURL == "" && (c.DBUser == "" || c.DBName == "") {
		errs = append(errs, errors.New("database settings are required: set DATABASE_URL or POSTGRES_USER and POSTGRES_DB"))
	}
	if c.SMTP.Host != "" && c.SMTP.From == "" {
		errs = append(errs, errors.New("SMTP_FROM is required when SMTP_HOST is set"))
	}
	return errors.Join(errs...)
}

// MailEnabled reports whether outgoing email is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTP.Host != ""
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
