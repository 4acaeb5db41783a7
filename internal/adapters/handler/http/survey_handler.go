package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
	"go.uber.org/zap"
)

type SurveyHandler struct {
	service       ports.SurveyService
	notifications ports.NotificationService
}

func NewSurveyHandler(service ports.SurveyService, notifications ports.NotificationService) *SurveyHandler {
	return &SurveyHandler{
		service:       service,
		notifications: notifications,
	}
}

// flexTime accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
type flexTime struct {
	time.Time
}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

type questionRequest struct {
	Text      string              `json:"text"`
	Type      domain.QuestionType `json:"type"`
	Required  bool                `json:"required"`
	Options   []string            `json:"options"`
	MinLength *int                `json:"min_length"`
	MaxLength *int                `json:"max_length"`
	MinDate   *string             `json:"min_date"`
	MaxDate   *string             `json:"max_date"`
	MinTime   *string             `json:"min_time"`
	MaxTime   *string             `json:"max_time"`
}

type createSurveyRequest struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	IsAnonymous   bool              `json:"is_anonymous"`
	StartDate     flexTime          `json:"start_date"`
	EndDate       flexTime          `json:"end_date"`
	Questions     []questionRequest `json:"questions"`
	NotifyUserIDs []string          `json:"notify_user_ids"`
}

// CreateSurvey godoc
// @Summary      Creates a survey
// @Description  Creates a survey with its ordered questions. Users listed in notify_user_ids are emailed afterwards on a best-effort basis.
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400
// @Failure      401
// @Router       /api/surveys [post]
func (h *SurveyHandler) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeServiceError(w, r, domain.ErrUnauthenticated)
		return
	}

	var req createSurveyRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	input := ports.CreateSurveyInput{
		CreatorID:   userID,
		Title:       req.Title,
		Description: req.Description,
		IsAnonymous: req.IsAnonymous,
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
	}
	for _, q := range req.Questions {
		input.Questions = append(input.Questions, ports.QuestionInput{
			Text:      q.Text,
			Type:      domain.QuestionType(strings.ToUpper(string(q.Type))),
			Required:  q.Required,
			Options:   q.Options,
			MinLength: q.MinLength,
			MaxLength: q.MaxLength,
			MinDate:   q.MinDate,
			MaxDate:   q.MaxDate,
			MinTime:   q.MinTime,
			MaxTime:   q.MaxTime,
		})
	}

	survey, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if len(req.NotifyUserIDs) > 0 && h.notifications != nil {
		go h.notify(context.WithoutCancel(r.Context()), LoggerFromContext(r.Context()), survey, req.NotifyUserIDs)
	}

	writeJSON(w, r, http.StatusCreated, survey)
}

func (h *SurveyHandler) notify(ctx context.Context, logger *zap.Logger, survey *domain.Survey, userIDs []string) {
	outcomes, err := h.notifications.NotifyRecipients(ctx, ports.NotifyInput{
		SurveyID: survey.ID,
		Title:    survey.Title,
		UserIDs:  userIDs,
	})
	if err != nil {
		logger.Warn("survey notifications skipped", zap.String("survey_id", survey.ID.String()), zap.Error(err))
		return
	}
	sent := 0
	for _, o := range outcomes {
		if o.Sent {
			sent++
		}
	}
	logger.Info("survey notifications sent",
		zap.String("survey_id", survey.ID.String()),
		zap.Int("sent", sent),
		zap.Int("requested", len(outcomes)),
	)
}

// ListSurveys godoc
// @Summary      Lists surveys
// @Description  Lists the surveys created by the caller plus every anonymous survey, ten per page, newest first.
// @Tags         surveys
// @Produce      json
// @Param        page  query  int     false  "page number, starting at 1"
// @Param        q     query  string  false  "title search"
// @Success      200
// @Failure      401
// @Router       /api/surveys [get]
func (h *SurveyHandler) ListSurveys(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeServiceError(w, r, domain.ErrUnauthenticated)
		return
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	surveys, err := h.service.ListSurveys(r.Context(), ports.ListSurveysInput{
		UserID: userID,
		Page:   page,
		Query:  r.URL.Query().Get("q"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, surveys)
}

func (h *SurveyHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	survey, err := h.service.GetSurvey(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, survey)
}

// DeleteSurvey godoc
// @Summary      Deletes a survey
// @Description  Deletes the survey with its questions, responses and answers. Only the creator may delete it.
// @Tags         surveys
// @Success      204
// @Failure      403
// @Failure      404
// @Router       /api/surveys/{id} [delete]
func (h *SurveyHandler) DeleteSurvey(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeServiceError(w, r, domain.ErrUnauthenticated)
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
