package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vncsmyrnk/survey/internal/core/domain"
)

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

// newTestDB starts a throwaway postgres with the schema applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	container, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func createUser(t *testing.T, db *sql.DB, role domain.Role) *domain.User {
	t.Helper()

	id := uuid.NewString()
	user := &domain.User{
		ID:    id,
		Email: fmt.Sprintf("user-%s@example.com", id),
		Name:  fmt.Sprintf("User %s", id[:8]),
		Role:  role,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createSurvey(t *testing.T, db *sql.DB, creatorID string, anonymous bool, title string) *domain.Survey {
	t.Helper()

	surveyID := uuid.New()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	maxLen := 200
	survey := &domain.Survey{
		ID:          surveyID,
		Title:       title,
		Description: "integration",
		IsAnonymous: anonymous,
		StartDate:   start,
		EndDate:     start.Add(14 * 24 * time.Hour),
		CreatorID:   creatorID,
		CreatedAt:   time.Now(),
		Questions: []domain.Question{
			{ID: uuid.New(), SurveyID: surveyID, Text: "Name", Type: domain.QuestionText, Required: true, Options: []string{}, MaxLength: &maxLen, Position: 0},
			{ID: uuid.New(), SurveyID: surveyID, Text: "Color", Type: domain.QuestionRadio, Required: true, Options: []string{"Red", "Blue"}, Position: 1},
			{ID: uuid.New(), SurveyID: surveyID, Text: "Pets", Type: domain.QuestionCheckbox, Options: []string{"Cat", "Dog"}, Position: 2},
		},
	}
	require.NoError(t, NewSurveyRepository(db).Save(context.Background(), survey))
	return survey
}

func submission(survey *domain.Survey, userID string, values map[string]any) *domain.Submission {
	now := time.Now().UTC().Truncate(time.Microsecond)
	responseID := uuid.New()
	sub := &domain.Submission{
		Response: domain.Response{ID: responseID, SurveyID: survey.ID, UserID: userID, Completed: true, SubmittedAt: now},
		Reward: domain.Reward{
			ID: uuid.New(), UserID: userID, SurveyID: survey.ID,
			Points: domain.CompletionRewardPoints, Reason: domain.CompletionRewardReason,
			Status: domain.RewardPending, CreatedAt: now,
		},
	}
	for qid, v := range values {
		sub.Response.Answers = append(sub.Response.Answers, domain.Answer{ID: uuid.New(), ResponseID: responseID, QuestionID: qid, Value: v})
	}
	return sub
}

func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}
