package models

import (
	"time"

	"github.com/google/uuid"
)

// Answer is one graded response to one question within one player quiz.
// Immutable once written; player scores are derived by summing these.
type Answer struct {
	ID              uuid.UUID `json:"id"`
	PlayerQuizID    uuid.UUID `json:"player_quiz_id"`
	QuestionID      uuid.UUID `json:"question_id"`
	SubmittedAnswer string    `json:"submitted_answer,omitempty"`
	SubmittedOrder  []string  `json:"submitted_order,omitempty"`
	IsCorrect       bool      `json:"is_correct"`
	PointsAwarded   int       `json:"points_awarded"`
	CreatedAt       time.Time `json:"created_at"`
}
