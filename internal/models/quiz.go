package models

import (
	"time"

	"github.com/google/uuid"
)

// Quiz represents a quiz authored by a user.
// TotalPoints is derived: the sum of the quiz's question points, recomputed
// whenever questions change.
type Quiz struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CreatedBy       uuid.UUID `json:"created_by"`
	DurationMinutes int       `json:"duration"`
	TotalPoints     int       `json:"total_points"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
