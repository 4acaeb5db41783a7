package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/survey/internal/core/domain"
)

type fakeSurveyRepo struct {
	mu      sync.Mutex
	surveys map[uuid.UUID]*domain.Survey
	saveErr error
	deleted []uuid.UUID
}

func newFakeSurveyRepo(surveys ...*domain.Survey) *fakeSurveyRepo {
	r := &fakeSurveyRepo{surveys: make(map[uuid.UUID]*domain.Survey)}
	for _, s := range surveys {
		r.surveys[s.ID] = s
	}
	return r
}

func (r *fakeSurveyRepo) Save(ctx context.Context, survey *domain.Survey) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surveys[survey.ID] = survey
	return nil
}

func (r *fakeSurveyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.surveys[id]
	if !ok {
		return nil, domain.ErrSurveyNotFound
	}
	return s, nil
}

func (r *fakeSurveyRepo) GetAll(ctx context.Context) ([]*domain.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Survey
	for _, s := range r.surveys {
		out = append(out, s)
	}
	return out, nil
}

type listCall struct {
	userID        string
	limit, offset int
	query         string
}

type fakeListRepo struct {
	*fakeSurveyRepo
	calls []listCall
}

func (r *fakeSurveyRepo) ListVisible(ctx context.Context, userID string, limit, offset int, query string) ([]*domain.SurveySummary, error) {
	return nil, nil
}

func (r *fakeListRepo) ListVisible(ctx context.Context, userID string, limit, offset int, query string) ([]*domain.SurveySummary, error) {
	r.calls = append(r.calls, listCall{userID, limit, offset, query})
	return []*domain.SurveySummary{}, nil
}

func (r *fakeSurveyRepo) CountByCreator(ctx context.Context, creatorID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.surveys {
		if s.CreatorID == creatorID {
			n++
		}
	}
	return n, nil
}

func (r *fakeSurveyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.surveys, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeResponseRepo struct {
	mu          sync.Mutex
	responses   []*domain.Response
	rewards     []domain.Reward
	hasErr      error
	createErr   error
	hasResponse bool
}

func (r *fakeResponseRepo) HasResponded(ctx context.Context, surveyID uuid.UUID, userID string) (bool, error) {
	if r.hasErr != nil {
		return false, r.hasErr
	}
	if r.hasResponse {
		return true, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID && resp.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeResponseRepo) CreateSubmission(ctx context.Context, submission *domain.Submission) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resp := submission.Response
	r.responses = append(r.responses, &resp)
	r.rewards = append(r.rewards, submission.Reward)
	return nil
}

func (r *fakeResponseRepo) ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]*domain.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Response
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID {
			out = append(out, resp)
		}
	}
	return out, nil
}

func (r *fakeResponseRepo) CountBySurvey(ctx context.Context, surveyID uuid.UUID) (int64, error) {
	list, _ := r.ListBySurvey(ctx, surveyID)
	return int64(len(list)), nil
}

func (r *fakeResponseRepo) CountForCreator(ctx context.Context, creatorID string) (int64, error) {
	return int64(len(r.responses)), nil
}

type fakeRewardRepo struct {
	points map[string]int64
}

func (r *fakeRewardRepo) SumPointsByUser(ctx context.Context, userID string) (int64, error) {
	return r.points[userID], nil
}

type fakeResultsRepo struct {
	mu      sync.Mutex
	tallies map[uuid.UUID][]domain.OptionTally
}

func newFakeResultsRepo() *fakeResultsRepo {
	return &fakeResultsRepo{tallies: make(map[uuid.UUID][]domain.OptionTally)}
}

func (r *fakeResultsRepo) ReplaceTallies(ctx context.Context, surveyID uuid.UUID, tallies []domain.OptionTally) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tallies[surveyID] = tallies
	return nil
}

func (r *fakeResultsRepo) GetTallies(ctx context.Context, surveyID uuid.UUID) ([]domain.OptionTally, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tallies[surveyID], nil
}

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	removed map[string]*domain.User
	deleted []string
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*domain.User), removed: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *fakeUserRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListEmployees(ctx context.Context, excludeID string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if u.ID != excludeID && u.Role == domain.RoleEmployee {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Upsert(ctx context.Context, user *domain.User) error {
	return r.Create(ctx, user)
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		r.removed[id] = u
	}
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeUserRepo) RestoreByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.removed {
		if u.Email == email {
			delete(r.removed, id)
			r.users[id] = u
			return u, nil
		}
	}
	return nil, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
	fail map[string]bool
}

func (n *fakeNotifier) NotifySurvey(ctx context.Context, recipient string, surveyTitle string, surveyID uuid.UUID) error {
	if n.fail[recipient] {
		return errors.New("smtp: mailbox unavailable")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, recipient)
	return nil
}

type fakeNotificationRepo struct {
	mu      sync.Mutex
	records []*domain.EmailNotification
}

func (r *fakeNotificationRepo) Record(ctx context.Context, n *domain.EmailNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, n)
	return nil
}

type fakeAuthRepo struct {
	tokens map[string]*domain.RefreshToken
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{tokens: make(map[string]*domain.RefreshToken)}
}

func (r *fakeAuthRepo) StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	r.tokens[token.TokenHash] = token
	return nil
}

func (r *fakeAuthRepo) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	return r.tokens[tokenHash], nil
}

func (r *fakeAuthRepo) RevokeRefreshToken(ctx context.Context, id string) error {
	for _, t := range r.tokens {
		if t.ID == id {
			t.Revoked = true
		}
	}
	return nil
}
