package answers

import (
	"fmt"
	"strings"

	"github.com/vncsmyrnk/survey/internal/core/domain"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field that failed validation.
type ValidationError struct {
	Issues []FieldError
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return domain.ErrValidationFailed.Error()
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("%s: %s", domain.ErrValidationFailed, strings.Join(parts, "; "))
}

// Is lets callers match any validation error with errors.Is(err, domain.ErrValidationFailed).
func (err *ValidationError) Is(target error) bool {
	return target == domain.ErrValidationFailed
}

// Collector accumulates field errors and turns them into a *ValidationError.
type Collector struct {
	issues []FieldError
}

func (c *Collector) Add(field, message string) {
	c.issues = append(c.issues, FieldError{Field: field, Message: message})
}

func (c *Collector) Err() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks submitted against one rule per question and reports every
// failing question, in question order. Submitted ids that match no question
// are ignored. On success the submitted map is returned as is.
func Validate(questions []domain.Question, submitted map[string]any) (map[string]any, error) {
	var collector Collector
	for _, q := range questions {
		id := q.ID.String()
		value, present := submitted[id]
		if msg, ok := BuildRule(q)(value, present); !ok {
			collector.Add(id, msg)
		}
	}

	if err := collector.Err(); err != nil {
		return nil, err
	}
	return submitted, nil
}
