package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/survey/internal/core/domain"
)

type ResponseRepository interface {
	HasResponded(ctx context.Context, surveyID uuid.UUID, userID string) (bool, error)
	// CreateSubmission writes the response, its answers and the reward atomically.
	CreateSubmission(ctx context.Context, submission *domain.Submission) error
	ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]*domain.Response, error)
	CountBySurvey(ctx context.Context, surveyID uuid.UUID) (int64, error)
	CountForCreator(ctx context.Context, creatorID string) (int64, error)
}

type RewardRepository interface {
	SumPointsByUser(ctx context.Context, userID string) (int64, error)
}

type SubmitResponseInput struct {
	SurveyID     uuid.UUID
	RespondentID string
	Answers      map[string]any
}

type ResponseService interface {
	Submit(ctx context.Context, input SubmitResponseInput) (uuid.UUID, error)
	ListResponses(ctx context.Context, surveyID string) ([]*domain.Response, error)
}
