package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/survey/internal/core/domain"
)

func answered(survey *domain.Survey, values ...any) *domain.Response {
	r := &domain.Response{ID: uuid.New(), SurveyID: survey.ID}
	for i, v := range values {
		if v == nil {
			continue
		}
		r.Answers = append(r.Answers, domain.Answer{QuestionID: survey.Questions[i].ID.String(), Value: v})
	}
	return r
}

func TestResultsService_GetResults(t *testing.T) {
	survey := sampleSurvey()
	responses := &fakeResponseRepo{responses: []*domain.Response{
		answered(survey, "Ann", "Pizza", []any{"Soda", "Cake"}),
		answered(survey, "Bob", "Pizza", []any{"Cake"}),
		answered(survey, "Cy", "Sushi", "null"),
	}}
	svc := NewResultsService(newFakeSurveyRepo(survey), responses, newFakeResultsRepo())

	results, err := svc.GetResults(context.Background(), survey.ID.String())
	require.NoError(t, err)

	assert.Equal(t, int64(3), results.ResponseCount)
	require.Len(t, results.Questions, 3)

	text := results.Questions[0]
	assert.Equal(t, int64(3), text.Answered)
	assert.Nil(t, text.Options)

	radio := results.Questions[1]
	assert.Equal(t, int64(3), radio.Answered)
	assert.Equal(t, []domain.OptionCount{
		{Option: "Pizza", Count: 2},
		{Option: "Salad", Count: 0},
		{Option: "Sushi", Count: 1},
	}, radio.Options)

	checkbox := results.Questions[2]
	assert.Equal(t, int64(2), checkbox.Answered)
	assert.Equal(t, []domain.OptionCount{
		{Option: "Soda", Count: 1},
		{Option: "Cake", Count: 2},
	}, checkbox.Options)
}

func TestResultsService_GetResults_NullOption(t *testing.T) {
	survey := sampleSurvey()
	survey.Questions[1].Options = []string{"Pizza", "Salad", "null"}
	responses := &fakeResponseRepo{responses: []*domain.Response{
		answered(survey, "null", "null", "null"),
		answered(survey, "Ann", "Pizza"),
	}}
	svc := NewResultsService(newFakeSurveyRepo(survey), responses, newFakeResultsRepo())

	results, err := svc.GetResults(context.Background(), survey.ID.String())
	require.NoError(t, err)

	assert.Equal(t, int64(1), results.Questions[0].Answered)

	radio := results.Questions[1]
	assert.Equal(t, int64(2), radio.Answered)
	assert.Equal(t, []domain.OptionCount{
		{Option: "Pizza", Count: 1},
		{Option: "Salad", Count: 0},
		{Option: "null", Count: 1},
	}, radio.Options)

	assert.Equal(t, int64(0), results.Questions[2].Answered)
}

func TestSummaryService_SummarizeAllResults(t *testing.T) {
	survey := sampleSurvey()
	responses := &fakeResponseRepo{responses: []*domain.Response{
		answered(survey, "Ann", "Salad", []any{"Soda"}),
		answered(survey, "Bob", "Salad"),
	}}
	surveys := newFakeSurveyRepo(survey)
	resultsRepo := newFakeResultsRepo()

	err := NewSummaryService(surveys, responses, resultsRepo).SummarizeAllResults(context.Background())
	require.NoError(t, err)

	tallies := resultsRepo.tallies[survey.ID]
	require.Len(t, tallies, 4)
	for _, tally := range tallies {
		assert.Equal(t, survey.ID, tally.SurveyID)
		assert.False(t, tally.LastUpdatedAt.IsZero())
	}

	svc := NewResultsService(surveys, responses, resultsRepo)
	results, err := svc.GetSummarizedResults(context.Background(), survey.ID.String())
	require.NoError(t, err)

	assert.Equal(t, int64(2), results.ResponseCount)
	require.Len(t, results.Questions, 2)
	assert.Equal(t, int64(2), results.Questions[0].Answered)
	assert.Equal(t, []domain.OptionCount{
		{Option: "Pizza", Count: 0},
		{Option: "Salad", Count: 2},
	}, results.Questions[0].Options)
	assert.Equal(t, []domain.OptionCount{
		{Option: "Soda", Count: 1},
		{Option: "Cake", Count: 0},
	}, results.Questions[1].Options)
}

func TestResultsService_InvalidID(t *testing.T) {
	svc := NewResultsService(newFakeSurveyRepo(), &fakeResponseRepo{}, newFakeResultsRepo())

	_, err := svc.GetResults(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidSurveyID)

	_, err = svc.GetSummarizedResults(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrSurveyNotFound)
}
