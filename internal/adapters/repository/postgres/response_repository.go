package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vncsmyrnk/survey/internal/core/answers"
	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

const (
	pqForeignKeyViolation = "23503"
	pqInvalidTextRepr     = "22P02"
)

type responseRepository struct {
	db *sql.DB
}

func NewResponseRepository(db *sql.DB) ports.ResponseRepository {
	return &responseRepository{
		db: db,
	}
}

func (r *responseRepository) HasResponded(ctx context.Context, surveyID uuid.UUID, userID string) (bool, error) {
	query := `SELECT 1 FROM responses WHERE survey_id = $1 AND user_id = $2 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, surveyID, userID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existing response: %w", err)
	}
	return true, nil
}

// CreateSubmission inserts the response, one row per answer and the
// completion reward in a single transaction. Any failure rolls all of it back.
func (r *responseRepository) CreateSubmission(ctx context.Context, submission *domain.Submission) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	resp := submission.Response
	queryResponse := `
		INSERT INTO responses (id, survey_id, user_id, completed, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = tx.ExecContext(ctx, queryResponse, resp.ID, resp.SurveyID, resp.UserID, resp.Completed, resp.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to insert response: %w", err)
	}

	queryAnswer := `
		INSERT INTO answers (id, response_id, question_id, value)
		VALUES ($1, $2, $3, $4)
	`
	stmt, err := tx.PrepareContext(ctx, queryAnswer)
	if err != nil {
		return fmt.Errorf("failed to prepare answer statement: %w", err)
	}
	defer stmt.Close()

	for _, a := range resp.Answers {
		value, err := json.Marshal(answers.Normalize(a.Value))
		if err != nil {
			return fmt.Errorf("failed to encode answer for question %s: %w", a.QuestionID, err)
		}
		if _, err = stmt.ExecContext(ctx, a.ID, a.ResponseID, a.QuestionID, string(value)); err != nil {
			if isMissingReference(err) {
				return fmt.Errorf("%w: %s", domain.ErrQuestionNotFound, a.QuestionID)
			}
			return fmt.Errorf("failed to insert answer: %w", err)
		}
	}

	reward := submission.Reward
	queryReward := `
		INSERT INTO rewards (id, user_id, survey_id, points, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(ctx, queryReward,
		reward.ID, reward.UserID, reward.SurveyID, reward.Points, reward.Reason, string(reward.Status), reward.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reward: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *responseRepository) ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]*domain.Response, error) {
	query := `
		SELECT r.id, r.survey_id, r.user_id, r.completed, r.submitted_at,
			a.id, a.question_id, a.value
		FROM responses r
		LEFT JOIN answers a ON a.response_id = r.id
		WHERE r.survey_id = $1
		ORDER BY r.submitted_at, r.id
	`
	rows, err := r.db.QueryContext(ctx, query, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	defer rows.Close()

	responses := []*domain.Response{}
	byID := make(map[uuid.UUID]*domain.Response)
	for rows.Next() {
		var resp domain.Response
		var answerID uuid.NullUUID
		var questionID sql.NullString
		var raw []byte
		if err := rows.Scan(
			&resp.ID, &resp.SurveyID, &resp.UserID, &resp.Completed, &resp.SubmittedAt,
			&answerID, &questionID, &raw,
		); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}

		current, ok := byID[resp.ID]
		if !ok {
			resp.Answers = []domain.Answer{}
			current = &resp
			byID[resp.ID] = current
			responses = append(responses, current)
		}
		if !answerID.Valid {
			continue
		}

		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("failed to decode answer %s: %w", answerID.UUID, err)
		}
		current.Answers = append(current.Answers, domain.Answer{
			ID:         answerID.UUID,
			ResponseID: current.ID,
			QuestionID: questionID.String,
			Value:      value,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating responses: %w", err)
	}
	return responses, nil
}

func (r *responseRepository) CountBySurvey(ctx context.Context, surveyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM responses WHERE survey_id = $1`, surveyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}

// CountForCreator counts responses received by the surveys a user created.
func (r *responseRepository) CountForCreator(ctx context.Context, creatorID string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM responses r
		JOIN surveys s ON s.id = r.survey_id
		WHERE s.creator_id = $1
	`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, creatorID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}

func isMissingReference(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pqForeignKeyViolation || pqErr.Code == pqInvalidTextRepr
}
