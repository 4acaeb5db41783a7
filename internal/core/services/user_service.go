package services

import (
	"context"
	"fmt"

	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

type UserService struct {
	repo         ports.UserRepository
	surveyRepo   ports.SurveyRepository
	responseRepo ports.ResponseRepository
	rewardRepo   ports.RewardRepository
}

func NewUserService(repo ports.UserRepository, surveyRepo ports.SurveyRepository, responseRepo ports.ResponseRepository, rewardRepo ports.RewardRepository) ports.UserService {
	return &UserService{
		repo:         repo,
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		rewardRepo:   rewardRepo,
	}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// ListEmployees returns the users that can be picked as survey recipients.
func (s *UserService) ListEmployees(ctx context.Context, requesterID string) ([]*domain.User, error) {
	if requesterID == "" {
		return nil, domain.ErrUnauthenticated
	}
	users, err := s.repo.ListEmployees(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return users, nil
}

func (s *UserService) Dashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	surveys, err := s.surveyRepo.CountByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count surveys: %w", err)
	}
	responses, err := s.responseRepo.CountForCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count responses: %w", err)
	}
	points, err := s.rewardRepo.SumPointsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum reward points: %w", err)
	}

	return &domain.Dashboard{
		SurveyCount:   surveys,
		ResponseCount: responses,
		RewardPoints:  points,
	}, nil
}
