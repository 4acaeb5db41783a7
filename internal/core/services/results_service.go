package services

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

type resultsService struct {
	surveyRepo   ports.SurveyRepository
	responseRepo ports.ResponseRepository
	resultsRepo  ports.ResultsRepository
}

func NewResultsService(surveyRepo ports.SurveyRepository, responseRepo ports.ResponseRepository, resultsRepo ports.ResultsRepository) ports.ResultsService {
	return &resultsService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		resultsRepo:  resultsRepo,
	}
}

func (s *resultsService) GetResults(ctx context.Context, surveyID string) (*domain.SurveyResults, error) {
	survey, err := s.survey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	responses, err := s.responseRepo.ListBySurvey(ctx, survey.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	return tallyResponses(survey, responses), nil
}

// GetSummarizedResults reads the counts materialised by the summary job
// instead of scanning every response.
func (s *resultsService) GetSummarizedResults(ctx context.Context, surveyID string) (*domain.SurveyResults, error) {
	survey, err := s.survey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	tallies, err := s.resultsRepo.GetTallies(ctx, survey.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tallies: %w", err)
	}

	responseCount, err := s.responseRepo.CountBySurvey(ctx, survey.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count responses: %w", err)
	}

	byQuestion := make(map[uuid.UUID][]domain.OptionCount)
	for _, t := range tallies {
		byQuestion[t.QuestionID] = append(byQuestion[t.QuestionID], domain.OptionCount{Option: t.Option, Count: t.Count})
	}

	results := &domain.SurveyResults{
		SurveyID:      survey.ID,
		Title:         survey.Title,
		ResponseCount: responseCount,
		Questions:     []domain.QuestionResult{},
	}
	for _, q := range survey.Questions {
		if !q.Type.HasOptions() {
			continue
		}
		counts := byQuestion[q.ID]
		qr := domain.QuestionResult{
			QuestionID: q.ID,
			Text:       q.Text,
			Type:       q.Type,
			Options:    orderCounts(q.Options, countsToMap(counts)),
		}
		// A checkbox answer spreads over several options, so its answered
		// count cannot be recovered from the tallies.
		if q.Type != domain.QuestionCheckbox {
			for _, c := range counts {
				qr.Answered += c.Count
			}
		}
		results.Questions = append(results.Questions, qr)
	}

	return results, nil
}

func (s *resultsService) survey(ctx context.Context, surveyID string) (*domain.Survey, error) {
	id, err := uuid.Parse(surveyID)
	if err != nil {
		return nil, domain.ErrInvalidSurveyID
	}
	return s.surveyRepo.GetByID(ctx, id)
}

// skipped reports whether value is an unanswered question. Skipped answers
// are stored as the string "null", which for a choice question only means
// skipped when "null" is not one of its options. Free-form answers cannot tell
// a skip from a literal "null" and always read as skipped.
func skipped(q domain.Question, value any) bool {
	if value == nil {
		return true
	}
	if value != "null" {
		return false
	}
	return !q.Type.HasOptions() || !slices.Contains(q.Options, "null")
}

// tallyResponses counts, per question, how many responses answered it and,
// for choice questions, how often each option was picked. A checkbox answer
// counts once for every option it contains.
func tallyResponses(survey *domain.Survey, responses []*domain.Response) *domain.SurveyResults {
	answered := make(map[string]int64)
	picks := make(map[string]map[string]int64)
	questions := make(map[string]domain.Question, len(survey.Questions))
	for _, q := range survey.Questions {
		questions[q.ID.String()] = q
	}

	for _, r := range responses {
		for _, a := range r.Answers {
			if skipped(questions[a.QuestionID], a.Value) {
				continue
			}
			answered[a.QuestionID]++
			if picks[a.QuestionID] == nil {
				picks[a.QuestionID] = make(map[string]int64)
			}
			for _, opt := range selectedOptions(a.Value) {
				picks[a.QuestionID][opt]++
			}
		}
	}

	results := &domain.SurveyResults{
		SurveyID:      survey.ID,
		Title:         survey.Title,
		ResponseCount: int64(len(responses)),
		Questions:     make([]domain.QuestionResult, 0, len(survey.Questions)),
	}
	for _, q := range survey.Questions {
		id := q.ID.String()
		qr := domain.QuestionResult{
			QuestionID: q.ID,
			Text:       q.Text,
			Type:       q.Type,
			Answered:   answered[id],
		}
		if q.Type.HasOptions() {
			qr.Options = orderCounts(q.Options, picks[id])
		}
		results.Questions = append(results.Questions, qr)
	}
	return results
}

func selectedOptions(value any) []string {
	switch v := value.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			if s, ok := elem.(string); ok && s != "" {
				out = append(out, s)
			} else if !ok {
				out = append(out, fmt.Sprint(elem))
			}
		}
		return out
	case []string:
		return v
	}
	return []string{fmt.Sprint(value)}
}

// orderCounts lists declared options first, in declaration order and
// including those nobody picked, followed by any undeclared values sorted
// by name.
func orderCounts(declared []string, counts map[string]int64) []domain.OptionCount {
	out := make([]domain.OptionCount, 0, len(declared)+len(counts))
	seen := make(map[string]bool, len(declared))
	for _, opt := range declared {
		if seen[opt] {
			continue
		}
		seen[opt] = true
		out = append(out, domain.OptionCount{Option: opt, Count: counts[opt]})
	}

	var extra []string
	for opt := range counts {
		if !seen[opt] {
			extra = append(extra, opt)
		}
	}
	sort.Strings(extra)
	for _, opt := range extra {
		out = append(out, domain.OptionCount{Option: opt, Count: counts[opt]})
	}
	return out
}

func countsToMap(counts []domain.OptionCount) map[string]int64 {
	m := make(map[string]int64, len(counts))
	for _, c := range counts {
		m[c.Option] += c.Count
	}
	return m
}

func resultsToTallies(results *domain.SurveyResults, now time.Time) []domain.OptionTally {
	var tallies []domain.OptionTally
	for _, q := range results.Questions {
		for _, opt := range q.Options {
			tallies = append(tallies, domain.OptionTally{
				SurveyID:      results.SurveyID,
				QuestionID:    q.QuestionID,
				Option:        opt.Option,
				Count:         opt.Count,
				LastUpdatedAt: now,
			})
		}
	}
	return tallies
}
