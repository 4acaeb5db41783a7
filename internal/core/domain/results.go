package domain

import (
	"time"

	"github.com/google/uuid"
)

type OptionCount struct {
	Option string `json:"option"`
	Count  int64  `json:"count"`
}

type QuestionResult struct {
	QuestionID uuid.UUID     `json:"question_id"`
	Text       string        `json:"text"`
	Type       QuestionType  `json:"type"`
	Answered   int64         `json:"answered"`
	Options    []OptionCount `json:"options,omitempty"`
}

type SurveyResults struct {
	SurveyID      uuid.UUID        `json:"survey_id"`
	Title         string           `json:"title"`
	ResponseCount int64            `json:"response_count"`
	Questions     []QuestionResult `json:"questions"`
}

// OptionTally is one materialised row of per-option answer counts.
type OptionTally struct {
	SurveyID      uuid.UUID
	QuestionID    uuid.UUID
	Option        string
	Count         int64
	LastUpdatedAt time.Time
}
