package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/survey/internal/core/domain"
)

type SurveyRepository interface {
	Save(ctx context.Context, survey *domain.Survey) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Survey, error)
	GetAll(ctx context.Context) ([]*domain.Survey, error)
	ListVisible(ctx context.Context, userID string, limit, offset int, query string) ([]*domain.SurveySummary, error)
	CountByCreator(ctx context.Context, creatorID string) (int64, error)
	// Delete removes the survey and everything that hangs off it in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}

type QuestionInput struct {
	Text      string
	Type      domain.QuestionType
	Required  bool
	Options   []string
	MinLength *int
	MaxLength *int
	MinDate   *string
	MaxDate   *string
	MinTime   *string
	MaxTime   *string
}

type CreateSurveyInput struct {
	CreatorID   string
	Title       string
	Description string
	IsAnonymous bool
	StartDate   time.Time
	EndDate     time.Time
	Questions   []QuestionInput
}

type ListSurveysInput struct {
	UserID string
	Page   int
	Query  string
}

type SurveyService interface {
	Create(ctx context.Context, input CreateSurveyInput) (*domain.Survey, error)
	GetSurvey(ctx context.Context, id string) (*domain.Survey, error)
	ListSurveys(ctx context.Context, input ListSurveysInput) ([]*domain.SurveySummary, error)
	Delete(ctx context.Context, id string, userID string) error
}
