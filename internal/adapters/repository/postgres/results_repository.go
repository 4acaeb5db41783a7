package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

type resultsRepository struct {
	db *sql.DB
}

func NewResultsRepository(db *sql.DB) ports.ResultsRepository {
	return &resultsRepository{
		db: db,
	}
}

func (r *resultsRepository) ReplaceTallies(ctx context.Context, surveyID uuid.UUID, tallies []domain.OptionTally) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM survey_results WHERE survey_id = $1`, surveyID); err != nil {
		return fmt.Errorf("failed to clear results for survey %s: %w", surveyID, err)
	}

	query := `
		INSERT INTO survey_results (survey_id, question_id, option, answer_count, last_updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (survey_id, question_id, option) DO UPDATE
		SET answer_count = EXCLUDED.answer_count,
		    last_updated_at = EXCLUDED.last_updated_at
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare results statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range tallies {
		if _, err := stmt.ExecContext(ctx, surveyID, t.QuestionID, t.Option, t.Count, t.LastUpdatedAt); err != nil {
			return fmt.Errorf("failed to store result for survey %s: %w", surveyID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *resultsRepository) GetTallies(ctx context.Context, surveyID uuid.UUID) ([]domain.OptionTally, error) {
	query := `
		SELECT survey_id, question_id, option, answer_count, last_updated_at
		FROM survey_results
		WHERE survey_id = $1
		ORDER BY question_id, option
	`
	rows, err := r.db.QueryContext(ctx, query, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}
	defer rows.Close()

	var tallies []domain.OptionTally
	for rows.Next() {
		var t domain.OptionTally
		if err := rows.Scan(&t.SurveyID, &t.QuestionID, &t.Option, &t.Count, &t.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		tallies = append(tallies, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}
	return tallies, nil
}
