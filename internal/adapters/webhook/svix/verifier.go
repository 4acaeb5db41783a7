package svix

import (
	"fmt"
	"net/http"

	svix "github.com/svix/svix-webhooks/go"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

type Verifier struct {
	wh *svix.Webhook
}

// NewVerifier accepts the signing secret in the "whsec_..." form shown by the provider.
func NewVerifier(secret string) (ports.WebhookVerifier, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook secret: %w", err)
	}
	return &Verifier{wh: wh}, nil
}

func (v *Verifier) Verify(payload []byte, headers http.Header) error {
	return v.wh.Verify(payload, headers)
}
