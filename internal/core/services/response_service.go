package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/survey/internal/core/answers"
	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

type responseService struct {
	surveyRepo   ports.SurveyRepository
	responseRepo ports.ResponseRepository
}

func NewResponseService(surveyRepo ports.SurveyRepository, responseRepo ports.ResponseRepository) ports.ResponseService {
	return &responseService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
	}
}

// Submit validates the answers against the survey's questions and stores the
// response, its answers and the completion reward as one unit.
//
// The duplicate check runs before, and outside of, the write transaction, so
// two concurrent submissions by the same respondent may both be stored.
func (s *responseService) Submit(ctx context.Context, input ports.SubmitResponseInput) (uuid.UUID, error) {
	if input.RespondentID == "" {
		return uuid.Nil, domain.ErrUnauthenticated
	}

	survey, err := s.surveyRepo.GetByID(ctx, input.SurveyID)
	if err != nil {
		return uuid.Nil, err
	}

	validated, err := answers.Validate(survey.Questions, input.Answers)
	if err != nil {
		return uuid.Nil, err
	}

	hasResponded, err := s.responseRepo.HasResponded(ctx, input.SurveyID, input.RespondentID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check existing response: %w", err)
	}
	if hasResponded {
		return uuid.Nil, domain.ErrDuplicateSubmission
	}

	now := time.Now()
	responseID := uuid.New()

	submission := &domain.Submission{
		Response: domain.Response{
			ID:          responseID,
			SurveyID:    input.SurveyID,
			UserID:      input.RespondentID,
			Completed:   true,
			SubmittedAt: now,
		},
		Reward: domain.Reward{
			ID:        uuid.New(),
			UserID:    input.RespondentID,
			SurveyID:  input.SurveyID,
			Points:    domain.CompletionRewardPoints,
			Reason:    domain.CompletionRewardReason,
			Status:    domain.RewardPending,
			CreatedAt: now,
		},
	}

	questionIDs := make([]string, 0, len(validated))
	for id := range validated {
		questionIDs = append(questionIDs, id)
	}
	sort.Strings(questionIDs)

	for _, id := range questionIDs {
		submission.Response.Answers = append(submission.Response.Answers, domain.Answer{
			ID:         uuid.New(),
			ResponseID: responseID,
			QuestionID: id,
			Value:      answers.Normalize(validated[id]),
		})
	}

	if err := s.responseRepo.CreateSubmission(ctx, submission); err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return uuid.Nil, err
		}
		return uuid.Nil, fmt.Errorf("%w: %w", domain.ErrPersistenceFailure, err)
	}

	return responseID, nil
}

func (s *responseService) ListResponses(ctx context.Context, surveyID string) ([]*domain.Response, error) {
	id, err := uuid.Parse(surveyID)
	if err != nil {
		return nil, domain.ErrInvalidSurveyID
	}

	if _, err := s.surveyRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	return s.responseRepo.ListBySurvey(ctx, id)
}
