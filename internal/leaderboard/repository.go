package leaderboard

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one leaderboard row for a session.
type Entry struct {
	PlayerQuizID uuid.UUID  `json:"player_quiz_id"`
	PlayerID     uuid.UUID  `json:"player_id"`
	DisplayName  string     `json:"display_name"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	Score        int        `json:"score"`
	Attempted    int        `json:"attempted"`
	Correct      int        `json:"correct"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// ResultEntry is one row of a player's results transcript. The correct and
// submitted answers are a string for scalar types and an ordered list for
// ranking questions.
type ResultEntry struct {
	QuestionID      uuid.UUID `json:"question_id"`
	Question        string    `json:"question"`
	Type            string    `json:"type"`
	Options         []string  `json:"options"`
	CorrectAnswer   string    `json:"correct_answer,omitempty"`
	CorrectOrder    []string  `json:"correct_order,omitempty"`
	SubmittedAnswer string    `json:"submitted_answer,omitempty"`
	SubmittedOrder  []string  `json:"submitted_order,omitempty"`
	IsCorrect       bool      `json:"is_correct"`
	PointsAwarded   int       `json:"points_awarded"`
	MediaURL        string    `json:"media_url,omitempty"`
}

// Repository reads session standings and per-player transcripts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a leaderboard repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListBySession returns the session's players ordered by score descending,
// earliest completion first. Attempted/correct counts are filled in later.
func (r *Repository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*Entry, error) {
	const query = `SELECT pq.id, pq.player_id, pq.display_name, COALESCE(pq.avatar_url,''), pq.score, pq.completed_at
		FROM player_quizzes pq
		WHERE pq.session_id = $1
		ORDER BY pq.score DESC, pq.completed_at ASC NULLS LAST`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.PlayerQuizID, &e.PlayerID, &e.DisplayName, &e.AvatarURL, &e.Score, &e.CompletedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// CountAnswers returns (attempted, correct) for one player-quiz.
func (r *Repository) CountAnswers(ctx context.Context, playerQuizID uuid.UUID) (int, int, error) {
	const query = `SELECT COUNT(*), COUNT(*) FILTER (WHERE is_correct)
		FROM answers WHERE player_quiz_id = $1`
	var attempted, correct int
	if err := r.pool.QueryRow(ctx, query, playerQuizID).Scan(&attempted, &correct); err != nil {
		return 0, 0, err
	}
	return attempted, correct, nil
}

// ListResults returns the answer transcript for one player-quiz, joined with
// question details, in submission order.
func (r *Repository) ListResults(ctx context.Context, playerQuizID uuid.UUID) ([]ResultEntry, error) {
	const query = `SELECT q.id, q.text, q.type, q.options,
			COALESCE(q.correct_answer,''), q.correct_order,
			COALESCE(a.submitted_answer,''), a.submitted_order,
			a.is_correct, a.points_awarded, COALESCE(q.media_url,'')
		FROM answers a
		JOIN questions q ON q.id = a.question_id
		WHERE a.player_quiz_id = $1
		ORDER BY a.created_at`
	rows, err := r.pool.Query(ctx, query, playerQuizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []ResultEntry
	for rows.Next() {
		var e ResultEntry
		if err := rows.Scan(&e.QuestionID, &e.Question, &e.Type, &e.Options,
			&e.CorrectAnswer, &e.CorrectOrder, &e.SubmittedAnswer, &e.SubmittedOrder,
			&e.IsCorrect, &e.PointsAwarded, &e.MediaURL); err != nil {
			return nil, err
		}
		e.MediaURL = strings.TrimSpace(e.MediaURL)
		results = append(results, e)
	}
	return results, rows.Err()
}
