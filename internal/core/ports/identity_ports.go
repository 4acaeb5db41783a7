package ports

import (
	"context"
	"net/http"
)

const (
	IdentityUserCreated = "user.created"
	IdentityUserUpdated = "user.updated"
	IdentityUserDeleted = "user.deleted"
)

type IdentityEvent struct {
	Type      string
	UserID    string
	Email     string
	FirstName string
	LastName  string
}

// WebhookVerifier checks the signature of an identity provider webhook.
type WebhookVerifier interface {
	Verify(payload []byte, headers http.Header) error
}

type IdentitySyncService interface {
	HandleEvent(ctx context.Context, event IdentityEvent) error
}
