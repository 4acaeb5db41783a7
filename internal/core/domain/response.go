package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	CompletionRewardPoints = 10
	CompletionRewardReason = "Survey completion"
)

type RewardStatus string

const (
	RewardPending  RewardStatus = "pending"
	RewardApproved RewardStatus = "approved"
	RewardPaid     RewardStatus = "paid"
)

type Response struct {
	ID          uuid.UUID `json:"id"`
	SurveyID    uuid.UUID `json:"survey_id"`
	UserID      string    `json:"user_id"`
	Completed   bool      `json:"completed"`
	SubmittedAt time.Time `json:"submitted_at"`
	Answers     []Answer  `json:"answers"`
}

// Answer.Value holds the normalised, JSON-safe answer.
type Answer struct {
	ID         uuid.UUID `json:"id"`
	ResponseID uuid.UUID `json:"response_id"`
	QuestionID string    `json:"question_id"`
	Value      any       `json:"value"`
}

type Reward struct {
	ID        uuid.UUID    `json:"id"`
	UserID    string       `json:"user_id"`
	SurveyID  uuid.UUID    `json:"survey_id"`
	Points    int          `json:"points"`
	Reason    string       `json:"reason"`
	Status    RewardStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

// Submission is the unit written atomically when a respondent completes a survey.
type Submission struct {
	Response Response
	Reward   Reward
}
