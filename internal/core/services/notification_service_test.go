package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
	"go.uber.org/zap"
)

func TestNotificationService_NotifyRecipients(t *testing.T) {
	survey := sampleSurvey()
	users := newFakeUserRepo(
		&domain.User{ID: "a", Email: "a@example.com"},
		&domain.User{ID: "b", Email: "b@example.com"},
		&domain.User{ID: "c", Email: "c@example.com"},
	)
	notifier := &fakeNotifier{fail: map[string]bool{"b@example.com": true}}
	records := &fakeNotificationRepo{}

	svc := NewNotificationService(newFakeSurveyRepo(survey), users, records, notifier, zap.NewNop())

	outcomes, err := svc.NotifyRecipients(context.Background(), ports.NotifyInput{
		SurveyID: survey.ID,
		UserIDs:  []string{"a", "b", "missing", "c", "a"},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	assert.Equal(t, domain.NotificationOutcome{UserID: "a", Email: "a@example.com", Sent: true}, outcomes[0])
	assert.False(t, outcomes[1].Sent)
	assert.Contains(t, outcomes[1].Error, "mailbox unavailable")
	assert.Equal(t, domain.NotificationOutcome{UserID: "missing", Error: domain.ErrUserNotFound.Error()}, outcomes[2])
	assert.True(t, outcomes[3].Sent)

	assert.ElementsMatch(t, []string{"a@example.com", "c@example.com"}, notifier.sent)

	require.Len(t, records.records, 3)
	statuses := map[string]domain.NotificationStatus{}
	for _, r := range records.records {
		statuses[r.UserID] = r.Status
	}
	assert.Equal(t, map[string]domain.NotificationStatus{
		"a": domain.NotificationSent,
		"b": domain.NotificationFailed,
		"c": domain.NotificationSent,
	}, statuses)
}

func TestNotificationService_NoRecipients(t *testing.T) {
	svc := NewNotificationService(newFakeSurveyRepo(), newFakeUserRepo(), &fakeNotificationRepo{}, &fakeNotifier{}, nil)

	_, err := svc.NotifyRecipients(context.Background(), ports.NotifyInput{SurveyID: uuid.New(), UserIDs: []string{" "}})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestNotificationService_UnknownSurvey(t *testing.T) {
	svc := NewNotificationService(newFakeSurveyRepo(), newFakeUserRepo(), &fakeNotificationRepo{}, &fakeNotifier{}, nil)

	_, err := svc.NotifyRecipients(context.Background(), ports.NotifyInput{SurveyID: uuid.New(), UserIDs: []string{"a"}})
	assert.ErrorIs(t, err, domain.ErrSurveyNotFound)
}
