package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/survey/internal/core/domain"
)

type ResultsRepository interface {
	// ReplaceTallies swaps the stored option counts of a survey for tallies.
	ReplaceTallies(ctx context.Context, surveyID uuid.UUID, tallies []domain.OptionTally) error
	GetTallies(ctx context.Context, surveyID uuid.UUID) ([]domain.OptionTally, error)
}

type ResultsService interface {
	GetResults(ctx context.Context, surveyID string) (*domain.SurveyResults, error)
	GetSummarizedResults(ctx context.Context, surveyID string) (*domain.SurveyResults, error)
}

type SummaryService interface {
	SummarizeAllResults(ctx context.Context) error
}
