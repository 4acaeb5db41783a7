package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

type ResponseHandler struct {
	service ports.ResponseService
}

func NewResponseHandler(service ports.ResponseService) *ResponseHandler {
	return &ResponseHandler{
		service: service,
	}
}

type submitResponseRequest struct {
	Answers map[string]any `json:"answers"`
}

type submitResponseResponse struct {
	ResponseID uuid.UUID `json:"response_id"`
}

// SubmitResponse godoc
// @Summary      Submits answers to a survey
// @Description  Validates the answers against the survey's questions and stores them together with the completion reward. A user can respond once per survey.
// @Tags         responses
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400
// @Failure      401
// @Failure      404
// @Failure      409
// @Router       /api/surveys/{id}/responses [post]
func (h *ResponseHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	surveyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, domain.ErrInvalidSurveyID)
		return
	}

	userID, ok := userIDFrom(r)
	if !ok {
		writeServiceError(w, r, domain.ErrUnauthenticated)
		return
	}

	var req submitResponseRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Answers == nil {
		req.Answers = map[string]any{}
	}

	responseID, err := h.service.Submit(r.Context(), ports.SubmitResponseInput{
		SurveyID:     surveyID,
		RespondentID: userID,
		Answers:      req.Answers,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, submitResponseResponse{ResponseID: responseID})
}

func (h *ResponseHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	responses, err := h.service.ListResponses(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, responses)
}
