package mail

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

var ErrNotConfigured = errors.New("mail delivery is not configured")

// Disabled is the notifier used when no SMTP host is set. Every send fails
// with ErrNotConfigured so recipients are reported as not notified.
type Disabled struct{}

var _ ports.Notifier = Disabled{}

func (Disabled) NotifySurvey(context.Context, string, string, uuid.UUID) error {
	return ErrNotConfigured
}
