package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

type surveyRepository struct {
	db *sql.DB
}

func NewSurveyRepository(db *sql.DB) ports.SurveyRepository {
	return &surveyRepository{
		db: db,
	}
}

func (r *surveyRepository) Save(ctx context.Context, survey *domain.Survey) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	querySurvey := `
		INSERT INTO surveys (id, title, description, is_anonymous, start_date, end_date, creator_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.ExecContext(ctx, querySurvey,
		survey.ID, survey.Title, survey.Description, survey.IsAnonymous,
		survey.StartDate, survey.EndDate, survey.CreatorID, survey.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert survey: %w", err)
	}

	queryQuestion := `
		INSERT INTO questions (id, survey_id, text, type, required, options,
			min_length, max_length, min_date, max_date, min_time, max_time, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	stmt, err := tx.PrepareContext(ctx, queryQuestion)
	if err != nil {
		return fmt.Errorf("failed to prepare question statement: %w", err)
	}
	defer stmt.Close()

	for _, q := range survey.Questions {
		_, err = stmt.ExecContext(ctx,
			q.ID, q.SurveyID, q.Text, string(q.Type), q.Required, pq.Array(q.Options),
			q.MinLength, q.MaxLength, q.MinDate, q.MaxDate, q.MinTime, q.MaxTime, q.Position,
		)
		if err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *surveyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Survey, error) {
	querySurvey := `
		SELECT id, title, description, is_anonymous, start_date, end_date, creator_id, created_at
		FROM surveys
		WHERE id = $1
	`

	survey, err := scanSurvey(r.db.QueryRowContext(ctx, querySurvey, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSurveyNotFound
		}
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}

	questions, err := r.fetchQuestions(ctx, survey.ID)
	if err != nil {
		return nil, err
	}
	survey.Questions = questions

	return survey, nil
}

func (r *surveyRepository) GetAll(ctx context.Context) ([]*domain.Survey, error) {
	query := `
		SELECT id, title, description, is_anonymous, start_date, end_date, creator_id, created_at
		FROM surveys
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all surveys: %w", err)
	}
	defer rows.Close()

	var surveys []*domain.Survey
	for rows.Next() {
		survey, err := scanSurvey(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan survey: %w", err)
		}
		surveys = append(surveys, survey)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating surveys: %w", err)
	}

	for _, survey := range surveys {
		if survey.Questions, err = r.fetchQuestions(ctx, survey.ID); err != nil {
			return nil, err
		}
	}
	return surveys, nil
}

// ListVisible returns the surveys the user created plus every anonymous
// survey, newest first. An empty query disables the title filter.
func (r *surveyRepository) ListVisible(ctx context.Context, userID string, limit, offset int, query string) ([]*domain.SurveySummary, error) {
	q := `
		SELECT s.id, s.title, s.description, s.is_anonymous, s.start_date, s.end_date, s.creator_id, s.created_at,
			COUNT(r.id)
		FROM surveys s
		LEFT JOIN responses r ON r.survey_id = s.id
		WHERE (s.creator_id = $1 OR s.is_anonymous)
			AND ($2 = '' OR s.title ILIKE '%' || $2 || '%')
		GROUP BY s.id
		ORDER BY s.created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, q, userID, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	defer rows.Close()

	summaries := []*domain.SurveySummary{}
	for rows.Next() {
		var s domain.SurveySummary
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Description, &s.IsAnonymous, &s.StartDate, &s.EndDate, &s.CreatorID, &s.CreatedAt,
			&s.ResponseCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan survey: %w", err)
		}
		summaries = append(summaries, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating surveys: %w", err)
	}

	for _, s := range summaries {
		if s.Questions, err = r.fetchQuestions(ctx, s.ID); err != nil {
			return nil, err
		}
	}
	return summaries, nil
}

func (r *surveyRepository) CountByCreator(ctx context.Context, creatorID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM surveys WHERE creator_id = $1`, creatorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count surveys: %w", err)
	}
	return count, nil
}

// Delete removes the survey with its questions, responses, answers,
// notifications and materialised results. Rewards survive with a NULL survey.
func (r *surveyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	steps := []struct {
		what  string
		query string
	}{
		{"answers", `DELETE FROM answers WHERE response_id IN (SELECT id FROM responses WHERE survey_id = $1)`},
		{"responses", `DELETE FROM responses WHERE survey_id = $1`},
		{"notifications", `DELETE FROM email_notifications WHERE survey_id = $1`},
		{"results", `DELETE FROM survey_results WHERE survey_id = $1`},
		{"questions", `DELETE FROM questions WHERE survey_id = $1`},
	}
	for _, step := range steps {
		if _, err := tx.ExecContext(ctx, step.query, id); err != nil {
			return fmt.Errorf("failed to delete %s: %w", step.what, err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM surveys WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete survey: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrSurveyNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *surveyRepository) fetchQuestions(ctx context.Context, surveyID uuid.UUID) ([]domain.Question, error) {
	query := `
		SELECT id, survey_id, text, type, required, options,
			min_length, max_length, min_date, max_date, min_time, max_time, position
		FROM questions
		WHERE survey_id = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	defer rows.Close()

	questions := []domain.Question{}
	for rows.Next() {
		var q domain.Question
		var options []string
		if err := rows.Scan(
			&q.ID, &q.SurveyID, &q.Text, &q.Type, &q.Required, pq.Array(&options),
			&q.MinLength, &q.MaxLength, &q.MinDate, &q.MaxDate, &q.MinTime, &q.MaxTime, &q.Position,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if options == nil {
			options = []string{}
		}
		q.Options = options
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}
	return questions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSurvey(row rowScanner) (*domain.Survey, error) {
	var s domain.Survey
	if err := row.Scan(&s.ID, &s.Title, &s.Description, &s.IsAnonymous, &s.StartDate, &s.EndDate, &s.CreatorID, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
