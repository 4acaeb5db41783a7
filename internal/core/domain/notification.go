package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

type EmailNotification struct {
	ID        uuid.UUID          `json:"id"`
	SurveyID  uuid.UUID          `json:"survey_id"`
	UserID    string             `json:"user_id"`
	Email     string             `json:"email"`
	Status    NotificationStatus `json:"status"`
	Error     string             `json:"error,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// NotificationOutcome is the per-recipient result of a best-effort batch send.
type NotificationOutcome struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Sent   bool   `json:"sent"`
	Error  string `json:"error,omitempty"`
}
