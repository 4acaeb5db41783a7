package http

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/survey/internal/core/answers"
	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

// fakeAuth treats any token of the form "user:<id>" as valid.
type fakeAuth struct{}

func (fakeAuth) LoginWithGoogle(ctx context.Context, googleToken string) (string, string, error) {
	if googleToken != "valid_token" {
		return "", "", domain.ErrUnauthenticated
	}
	return "user:u1", "refresh-1", nil
}

func (fakeAuth) RefreshAccessToken(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken != "refresh-1" {
		return "", "", domain.ErrUnauthenticated
	}
	return "user:u1-new", refreshToken, nil
}

func (fakeAuth) Logout(ctx context.Context, refreshToken string) error { return nil }

func (fakeAuth) ParseAccessToken(accessToken string) (string, error) {
	if len(accessToken) > 5 && accessToken[:5] == "user:" {
		return accessToken[5:], nil
	}
	return "", domain.ErrUnauthenticated
}

type fakeSurveyService struct {
	created  []ports.CreateSurveyInput
	survey   *domain.Survey
	listed   []ports.ListSurveysInput
	deleteFn func(id, userID string) error
}

func (s *fakeSurveyService) Create(ctx context.Context, input ports.CreateSurveyInput) (*domain.Survey, error) {
	s.created = append(s.created, input)
	if input.Title == "" {
		var c answers.Collector
		c.Add("title", "title is required")
		return nil, c.Err()
	}
	return &domain.Survey{ID: uuid.New(), Title: input.Title, CreatorID: input.CreatorID}, nil
}

func (s *fakeSurveyService) GetSurvey(ctx context.Context, id string) (*domain.Survey, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidSurveyID
	}
	if s.survey == nil || s.survey.ID.String() != id {
		return nil, domain.ErrSurveyNotFound
	}
	return s.survey, nil
}

func (s *fakeSurveyService) ListSurveys(ctx context.Context, input ports.ListSurveysInput) ([]*domain.SurveySummary, error) {
	s.listed = append(s.listed, input)
	return []*domain.SurveySummary{}, nil
}

func (s *fakeSurveyService) Delete(ctx context.Context, id string, userID string) error {
	return s.deleteFn(id, userID)
}

type fakeResponseService struct {
	submitted []ports.SubmitResponseInput
	err       error
}

func (s *fakeResponseService) Submit(ctx context.Context, input ports.SubmitResponseInput) (uuid.UUID, error) {
	s.submitted = append(s.submitted, input)
	if s.err != nil {
		return uuid.Nil, s.err
	}
	return uuid.MustParse("11111111-2222-3333-4444-555555555555"), nil
}

func (s *fakeResponseService) ListResponses(ctx context.Context, surveyID string) ([]*domain.Response, error) {
	return []*domain.Response{}, nil
}

type fakeResultsService struct {
	summarized bool
}

func (s *fakeResultsService) GetResults(ctx context.Context, surveyID string) (*domain.SurveyResults, error) {
	return &domain.SurveyResults{Title: "live"}, nil
}

func (s *fakeResultsService) GetSummarizedResults(ctx context.Context, surveyID string) (*domain.SurveyResults, error) {
	s.summarized = true
	return &domain.SurveyResults{Title: "summarized"}, nil
}

type fakeNotificationService struct {
	mu     sync.Mutex
	inputs []ports.NotifyInput
}

func (s *fakeNotificationService) NotifyRecipients(ctx context.Context, input ports.NotifyInput) ([]domain.NotificationOutcome, error) {
	s.mu.Lock()
	s.inputs = append(s.inputs, input)
	s.mu.Unlock()

	var outcomes []domain.NotificationOutcome
	for _, id := range input.UserIDs {
		outcomes = append(outcomes, domain.NotificationOutcome{UserID: id, Sent: id != "bad"})
	}
	return outcomes, nil
}

func (s *fakeNotificationService) calls() []ports.NotifyInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.NotifyInput(nil), s.inputs...)
}

type fakeUserService struct{}

func (fakeUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if id != "u1" {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{ID: "u1", Email: "u1@example.com"}, nil
}

func (fakeUserService) ListEmployees(ctx context.Context, requesterID string) ([]*domain.User, error) {
	return []*domain.User{{ID: "e1"}}, nil
}

func (fakeUserService) Dashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	return &domain.Dashboard{SurveyCount: 2, ResponseCount: 5, RewardPoints: 10}, nil
}

type fakeWebhookVerifier struct{}

func (fakeWebhookVerifier) Verify(payload []byte, headers http.Header) error {
	if headers.Get("svix-signature") != "ok" {
		return errors.New("no matching signature found")
	}
	return nil
}

type fakeIdentityService struct {
	events []ports.IdentityEvent
}

func (s *fakeIdentityService) HandleEvent(ctx context.Context, event ports.IdentityEvent) error {
	s.events = append(s.events, event)
	return nil
}
