package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/survey/internal/core/answers"
	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultNotifyConcurrency = 4

type notificationService struct {
	surveyRepo       ports.SurveyRepository
	userRepo         ports.UserRepository
	notificationRepo ports.NotificationRepository
	notifier         ports.Notifier
	logger           *zap.Logger
	concurrency      int
}

func NewNotificationService(
	surveyRepo ports.SurveyRepository,
	userRepo ports.UserRepository,
	notificationRepo ports.NotificationRepository,
	notifier ports.Notifier,
	logger *zap.Logger,
) ports.NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &notificationService{
		surveyRepo:       surveyRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		logger:           logger,
		concurrency:      defaultNotifyConcurrency,
	}
}

func (s *notificationService) NotifyRecipients(ctx context.Context, input ports.NotifyInput) ([]domain.NotificationOutcome, error) {
	ids := uniqueIDs(input.UserIDs)
	if len(ids) == 0 {
		var c answers.Collector
		c.Add("user_ids", "at least one recipient is required")
		return nil, c.Err()
	}

	survey, err := s.surveyRepo.GetByID(ctx, input.SurveyID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = survey.Title
	}

	users, err := s.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recipients: %w", err)
	}
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	outcomes := make([]domain.NotificationOutcome, len(ids))

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, id := range ids {
		user, ok := byID[id]
		if !ok {
			outcomes[i] = domain.NotificationOutcome{UserID: id, Error: domain.ErrUserNotFound.Error()}
			continue
		}
		i := i
		g.Go(func() error {
			outcomes[i] = s.send(ctx, survey.ID, title, user)
			return nil
		})
	}
	// Failures land in outcomes; the workers never return an error.
	g.Wait()

	return outcomes, nil
}

func (s *notificationService) send(ctx context.Context, surveyID uuid.UUID, title string, user *domain.User) domain.NotificationOutcome {
	outcome := domain.NotificationOutcome{UserID: user.ID, Email: user.Email}
	record := &domain.EmailNotification{
		ID:        uuid.New(),
		SurveyID:  surveyID,
		UserID:    user.ID,
		Email:     user.Email,
		Status:    domain.NotificationSent,
		CreatedAt: time.Now(),
	}

	if err := s.notifier.NotifySurvey(ctx, user.Email, title, surveyID); err != nil {
		s.logger.Warn("failed to send survey notification",
			zap.String("survey_id", surveyID.String()),
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
		outcome.Error = err.Error()
		record.Status = domain.NotificationFailed
		record.Error = err.Error()
	} else {
		outcome.Sent = true
	}

	if err := s.notificationRepo.Record(ctx, record); err != nil {
		s.logger.Error("failed to record survey notification",
			zap.String("survey_id", surveyID.String()),
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
	}

	return outcome
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
