package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/survey/internal/core/domain"
)

func TestSurveyRepository_SaveAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSurveyRepository(db)

	owner := createUser(t, db, domain.RoleManager)
	survey := createSurvey(t, db, owner.ID, false, "Quarterly pulse")

	got, err := repo.GetByID(ctx, survey.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quarterly pulse", got.Title)
	assert.Equal(t, owner.ID, got.CreatorID)
	require.Len(t, got.Questions, 3)
	assert.Equal(t, []string{"Red", "Blue"}, got.Questions[1].Options)
	assert.Equal(t, []string{}, got.Questions[0].Options)
	require.NotNil(t, got.Questions[0].MaxLength)
	assert.Equal(t, 200, *got.Questions[0].MaxLength)
	assert.Nil(t, got.Questions[0].MinLength)
	for i, q := range got.Questions {
		assert.Equal(t, i, q.Position)
	}

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrSurveyNotFound)
}

func TestSurveyRepository_ListVisible(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSurveyRepository(db)

	me := createUser(t, db, domain.RoleManager)
	other := createUser(t, db, domain.RoleManager)

	createSurvey(t, db, me.ID, false, "My private survey")
	createSurvey(t, db, other.ID, true, "Open team survey")
	createSurvey(t, db, other.ID, false, "Someone else's survey")

	visible, err := repo.ListVisible(ctx, me.ID, 10, 0, "")
	require.NoError(t, err)
	titles := []string{}
	for _, s := range visible {
		titles = append(titles, s.Title)
	}
	assert.ElementsMatch(t, []string{"My private survey", "Open team survey"}, titles)

	filtered, err := repo.ListVisible(ctx, me.ID, 10, 0, "TEAM")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Open team survey", filtered[0].Title)

	paged, err := repo.ListVisible(ctx, me.ID, 1, 1, "")
	require.NoError(t, err)
	assert.Len(t, paged, 1)

	count, err := repo.CountByCreator(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSurveyRepository_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSurveyRepository(db)
	responses := NewResponseRepository(db)

	owner := createUser(t, db, domain.RoleManager)
	respondent := createUser(t, db, domain.RoleEmployee)
	survey := createSurvey(t, db, owner.ID, false, "Doomed")

	require.NoError(t, responses.CreateSubmission(ctx, submission(survey, respondent.ID, map[string]any{
		survey.Questions[0].ID.String(): "Ann",
		survey.Questions[1].ID.String(): "Red",
	})))
	require.NoError(t, NewResultsRepository(db).ReplaceTallies(ctx, survey.ID, []domain.OptionTally{
		{SurveyID: survey.ID, QuestionID: survey.Questions[1].ID, Option: "Red", Count: 1},
	}))

	require.NoError(t, repo.Delete(ctx, survey.ID))

	assert.Equal(t, 0, countRows(t, db, `SELECT COUNT(*) FROM surveys WHERE id = $1`, survey.ID))
	assert.Equal(t, 0, countRows(t, db, `SELECT COUNT(*) FROM questions WHERE survey_id = $1`, survey.ID))
	assert.Equal(t, 0, countRows(t, db, `SELECT COUNT(*) FROM responses WHERE survey_id = $1`, survey.ID))
	assert.Equal(t, 0, countRows(t, db, `SELECT COUNT(*) FROM answers`))
	assert.Equal(t, 0, countRows(t, db, `SELECT COUNT(*) FROM survey_results WHERE survey_id = $1`, survey.ID))
	assert.Equal(t, 1, countRows(t, db, `SELECT COUNT(*) FROM rewards WHERE user_id = $1 AND survey_id IS NULL`, respondent.ID))

	assert.ErrorIs(t, repo.Delete(ctx, survey.ID), domain.ErrSurveyNotFound)
}
