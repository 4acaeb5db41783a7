package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/vncsmyrnk/survey/internal/core/ports"
	"go.uber.org/zap"
)

const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	verifier ports.WebhookVerifier
	service  ports.IdentitySyncService
}

func NewWebhookHandler(verifier ports.WebhookVerifier, service ports.IdentitySyncService) *WebhookHandler {
	return &WebhookHandler{
		verifier: verifier,
		service:  service,
	}
}

type identityWebhookPayload struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// HandleIdentityEvent godoc
// @Summary      Identity provider webhook
// @Description  Mirrors user.created, user.updated and user.deleted events into the users table. Requests must carry valid svix signature headers.
// @Tags         webhooks
// @Accept       json
// @Success      200
// @Failure      400
// @Failure      500
// @Router       /webhooks/identity [post]
func (h *WebhookHandler) HandleIdentityEvent(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to read body")
		return
	}

	if err := h.verifier.Verify(payload, r.Header); err != nil {
		LoggerFromContext(r.Context()).Warn("rejected identity webhook", zap.Error(err))
		writeError(w, r, http.StatusBadRequest, "invalid webhook signature")
		return
	}

	var evt identityWebhookPayload
	if err := json.Unmarshal(payload, &evt); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid webhook payload")
		return
	}

	event := ports.IdentityEvent{
		Type:      evt.Type,
		UserID:    evt.Data.ID,
		FirstName: evt.Data.FirstName,
		LastName:  evt.Data.LastName,
	}
	if len(evt.Data.EmailAddresses) > 0 {
		event.Email = evt.Data.EmailAddresses[0].EmailAddress
	}

	if err := h.service.HandleEvent(r.Context(), event); err != nil {
		LoggerFromContext(r.Context()).Error("failed to handle identity webhook",
			zap.String("type", evt.Type),
			zap.String("user_id", evt.Data.ID),
			zap.Error(err),
		)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}
