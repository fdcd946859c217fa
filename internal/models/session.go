package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is a time-boxed hosting window for one quiz, identified by a
// human-enterable join code. A quiz may have many sessions (rehosting
// creates a new one). Expiry is lazy: the first read observing
// now >= EndTime persists IsActive=false.
type Session struct {
	ID        uuid.UUID `json:"id"`
	QuizID    uuid.UUID `json:"quiz_id"`
	JoinCode  string    `json:"join_code"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
