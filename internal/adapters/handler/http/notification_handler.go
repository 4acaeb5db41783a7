package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service: service,
	}
}

type notifyRequest struct {
	UserIDs []string `json:"user_ids"`
	Title   string   `json:"title"`
}

type notifyResponse struct {
	Sent     int                          `json:"sent"`
	Failed   int                          `json:"failed"`
	Outcomes []domain.NotificationOutcome `json:"outcomes"`
}

// NotifyRecipients godoc
// @Summary      Emails a survey to users
// @Description  Sends the "new survey" email to every listed user and reports the outcome per recipient. Individual delivery failures do not fail the request.
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400
// @Failure      404
// @Router       /api/surveys/{id}/notifications [post]
func (h *NotificationHandler) NotifyRecipients(w http.ResponseWriter, r *http.Request) {
	surveyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, domain.ErrInvalidSurveyID)
		return
	}

	var req notifyRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	outcomes, err := h.service.NotifyRecipients(r.Context(), ports.NotifyInput{
		SurveyID: surveyID,
		Title:    req.Title,
		UserIDs:  req.UserIDs,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := notifyResponse{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Sent {
			resp.Sent++
		} else {
			resp.Failed++
		}
	}
	writeJSON(w, r, http.StatusOK, resp)
}
