package models

import (
	"time"

	"github.com/google/uuid"
)

// PlayerQuiz is one player's participation record within one session.
// At most one exists per (session, player) pair. Score is derived by
// summing the player's answer points.
type PlayerQuiz struct {
	ID          uuid.UUID  `json:"id"`
	SessionID   uuid.UUID  `json:"session_id"`
	PlayerID    uuid.UUID  `json:"player_id"`
	DisplayName string     `json:"display_name"`
	AvatarURL   string     `json:"avatar_url,omitempty"`
	Score       int        `json:"score"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
