package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/vncsmyrnk/survey/internal/core/answers"
	"github.com/vncsmyrnk/survey/internal/core/domain"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error  string               `json:"error"`
	Fields []answers.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}

// writeServiceError maps core errors to status codes. Unknown errors are
// logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *answers.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: domain.ErrValidationFailed.Error(), Fields: verr.Issues})
	case errors.Is(err, domain.ErrValidationFailed), errors.Is(err, domain.ErrInvalidSurveyID):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, r, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, r, http.StatusForbidden, domain.ErrForbidden.Error())
	case errors.Is(err, domain.ErrSurveyNotFound),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateSubmission):
		writeError(w, r, http.StatusConflict, domain.ErrDuplicateSubmission.Error())
	case errors.Is(err, domain.ErrPersistenceFailure):
		LoggerFromContext(r.Context()).Error("persistence failure", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, domain.ErrPersistenceFailure.Error())
	default:
		LoggerFromContext(r.Context()).Error("request failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, domain.ErrInternal.Error())
	}
}
