package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gomail "github.com/wneessen/go-mail"

	handler "github.com/vncsmyrnk/survey/internal/adapters/handler/http"
	"github.com/vncsmyrnk/survey/internal/adapters/mail"
	repo "github.com/vncsmyrnk/survey/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/survey/internal/core/ports"
	"github.com/vncsmyrnk/survey/internal/core/services"
)

const testSecret = "test-secret"

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	SummarySvc  ports.SummaryService
	Mail        *recordingSender
	DBContainer testcontainers.Container
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// recordingSender stands in for the SMTP client.
type recordingSender struct {
	mu   sync.Mutex
	msgs []*gomail.Msg
}

func (s *recordingSender) DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, messages...)
	return nil
}

func (s *recordingSender) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}

// MockVerifier accepts "valid_token" as a Google credential for email.
type MockVerifier struct {
	email string
}

func (v *MockVerifier) Verify(ctx context.Context, token string, clientID string) (*ports.TokenPayload, error) {
	if token == "valid_token" {
		return &ports.TokenPayload{Email: v.email, Name: "Test User"}, nil
	}
	return nil, fmt.Errorf("invalid google token")
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))

	userRepo := repo.NewUserRepository(db)
	authRepo := repo.NewAuthRepository(db)
	surveyRepo := repo.NewSurveyRepository(db)
	responseRepo := repo.NewResponseRepository(db)
	resultsRepo := repo.NewResultsRepository(db)

	sender := &recordingSender{}
	notifier := mail.NewNotifier(sender, "noreply@example.com", "https://surveys.example.com")

	authSvc := services.NewAuthService(userRepo, authRepo, &MockVerifier{email: "test@example.com"}, testSecret, "client-id")
	notificationSvc := services.NewNotificationService(surveyRepo, userRepo, repo.NewNotificationRepository(db), notifier, nil)

	router := handler.NewHandler(handler.Handlers{
		Auth:         handler.NewAuthHandler(authSvc, "https://example.com/redirect", "", http.SameSiteLaxMode),
		Survey:       handler.NewSurveyHandler(services.NewSurveyService(surveyRepo), notificationSvc),
		Response:     handler.NewResponseHandler(services.NewResponseService(surveyRepo, responseRepo)),
		Results:      handler.NewResultsHandler(services.NewResultsService(surveyRepo, responseRepo, resultsRepo)),
		Notification: handler.NewNotificationHandler(notificationSvc),
		User:         handler.NewUserHandler(services.NewUserService(userRepo, surveyRepo, responseRepo, repo.NewRewardRepository(db))),
	}, authSvc, []string{"*"}, nil)

	server := httptest.NewServer(router)
	client := server.Client()
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      client,
		SummarySvc:  services.NewSummaryService(surveyRepo, responseRepo, resultsRepo),
		Mail:        sender,
		DBContainer: dbContainer,
	}
}

// createUserAndToken inserts a user and signs an access token for it.
func createUserAndToken(t *testing.T, db *sql.DB) (string, string) {
	t.Helper()

	userID := uuid.NewString()
	email := fmt.Sprintf("user-%s@example.com", userID)
	name := fmt.Sprintf("User %s", userID)
	_, err := db.Exec("INSERT INTO users (id, email, name) VALUES ($1, $2, $3)", userID, email, name)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return userID, signedToken
}

// call sends body as JSON with the access token cookie and decodes the
// response into out when out is not nil.
func (app *TestApp) call(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}
