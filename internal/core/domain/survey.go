package domain

import (
	"time"

	"github.com/google/uuid"
)

type QuestionType string

const (
	QuestionText     QuestionType = "TEXT"
	QuestionRadio    QuestionType = "RADIO"
	QuestionCheckbox QuestionType = "CHECKBOX"
	QuestionDate     QuestionType = "DATE"
	QuestionTime     QuestionType = "TIME"
	QuestionDropdown QuestionType = "DROPDOWN"
)

// Known reports whether t is one of the supported question types.
func (t QuestionType) Known() bool {
	switch t {
	case QuestionText, QuestionRadio, QuestionCheckbox, QuestionDate, QuestionTime, QuestionDropdown:
		return true
	}
	return false
}

// HasOptions reports whether answers to t are picked from the question's option list.
func (t QuestionType) HasOptions() bool {
	return t == QuestionRadio || t == QuestionCheckbox || t == QuestionDropdown
}

type Survey struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsAnonymous bool       `json:"is_anonymous"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	CreatorID   string     `json:"creator_id"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Question bounds are stored as entered: dates as YYYY-MM-DD, times as HH:MM.
type Question struct {
	ID        uuid.UUID    `json:"id"`
	SurveyID  uuid.UUID    `json:"survey_id"`
	Text      string       `json:"text"`
	Type      QuestionType `json:"type"`
	Required  bool         `json:"required"`
	Options   []string     `json:"options"`
	MinLength *int         `json:"min_length,omitempty"`
	MaxLength *int         `json:"max_length,omitempty"`
	MinDate   *string      `json:"min_date,omitempty"`
	MaxDate   *string      `json:"max_date,omitempty"`
	MinTime   *string      `json:"min_time,omitempty"`
	MaxTime   *string      `json:"max_time,omitempty"`
	Position  int          `json:"order"`
}

type SurveySummary struct {
	Survey
	ResponseCount int64 `json:"response_count"`
}
