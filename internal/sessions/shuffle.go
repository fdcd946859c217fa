package sessions

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/quizhive/backend/internal/models"
)

// PlayerQuestion is a question as delivered to a player: correct answers are
// stripped and option order is randomized.
type PlayerQuestion struct {
	ID       uuid.UUID           `json:"id"`
	Text     string              `json:"text"`
	Type     models.QuestionType `json:"type"`
	Options  []string            `json:"options"`
	MediaURL string              `json:"media_url,omitempty"`
	Points   int                 `json:"points"`
}

// ShuffleForPlayer returns a freshly randomized view of the quiz's questions.
// Question order and, for choice-bearing types, option order are shuffled
// independently per call; no seed is persisted, so two players (or the same
// player retrying) may see different orders.
func ShuffleForPlayer(questions []models.Question) []PlayerQuestion {
	out := make([]PlayerQuestion, 0, len(questions))
	for _, q := range questions {
		opts := append([]string(nil), q.Options...)
		if len(opts) > 1 {
			rand.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
		}
		out = append(out, PlayerQuestion{
			ID:       q.ID,
			Text:     q.Text,
			Type:     q.Type,
			Options:  opts,
			MediaURL: q.MediaURL,
			Points:   q.Points,
		})
	}
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
