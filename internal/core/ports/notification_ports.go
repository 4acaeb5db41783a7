package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/survey/internal/core/domain"
)

// Notifier delivers a "new survey" message to one recipient.
type Notifier interface {
	NotifySurvey(ctx context.Context, recipient string, surveyTitle string, surveyID uuid.UUID) error
}

type NotificationRepository interface {
	Record(ctx context.Context, notification *domain.EmailNotification) error
}

type NotifyInput struct {
	SurveyID uuid.UUID
	Title    string
	UserIDs  []string
}

type NotificationService interface {
	// NotifyRecipients sends to every resolvable recipient and reports each
	// outcome. Delivery failures never make it return an error.
	NotifyRecipients(ctx context.Context, input NotifyInput) ([]domain.NotificationOutcome, error)
}
