package domain

import "errors"

var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("not allowed to access this survey")
	ErrSurveyNotFound      = errors.New("survey not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidSurveyID     = errors.New("invalid survey id")
	ErrValidationFailed    = errors.New("validation failed")
	ErrDuplicateSubmission = errors.New("user has already submitted a response")
	ErrPersistenceFailure  = errors.New("failed to persist changes")
	ErrInternal            = errors.New("internal server error")
)
