package models

import (
	"time"

	"github.com/google/uuid"
)

// QuestionType identifies how a question is presented and graded.
type QuestionType string

const (
	QuestionMCQ         QuestionType = "mcq"
	QuestionShortAnswer QuestionType = "short_answer"
	QuestionImage       QuestionType = "image"
	QuestionRanking     QuestionType = "ranking"
)

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMCQ, QuestionShortAnswer, QuestionImage, QuestionRanking:
		return true
	}
	return false
}

// Question belongs to exactly one quiz. For ranking questions CorrectOrder
// holds the expected ordering; all other types grade against CorrectAnswer.
type Question struct {
	ID            uuid.UUID    `json:"id"`
	QuizID        uuid.UUID    `json:"quiz_id"`
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correct_answer,omitempty"`
	CorrectOrder  []string     `json:"correct_order,omitempty"`
	MediaURL      string       `json:"media_url,omitempty"`
	Points        int          `json:"points"`
	CreatedAt     time.Time    `json:"created_at"`
}
