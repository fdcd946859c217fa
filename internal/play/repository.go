package play

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizhive/backend/internal/models"
)

// Repository handles answer persistence and score aggregation.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a play repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetPlayerQuizByID returns a player-quiz record by its own ID.
func (r *Repository) GetPlayerQuizByID(ctx context.Context, id uuid.UUID) (*models.PlayerQuiz, error) {
	const query = `SELECT id, session_id, player_id, display_name, COALESCE(avatar_url,''), score, completed_at, created_at
		FROM player_quizzes WHERE id = $1`
	var pq models.PlayerQuiz
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&pq.ID, &pq.SessionID, &pq.PlayerID, &pq.DisplayName, &pq.AvatarURL, &pq.Score, &pq.CompletedAt, &pq.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &pq, nil
}

// InsertAnswer persists a single graded answer.
func (r *Repository) InsertAnswer(ctx context.Context, a *models.Answer) error {
	const query = `INSERT INTO answers (player_quiz_id, question_id, submitted_answer, submitted_order, is_correct, points_awarded)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, a.PlayerQuizID, a.QuestionID, a.SubmittedAnswer, a.SubmittedOrder, a.IsCorrect, a.PointsAwarded).
		Scan(&a.ID, &a.CreatedAt)
}

// InsertAnswers bulk-inserts graded answers.
func (r *Repository) InsertAnswers(ctx context.Context, answers []*models.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	const query = `INSERT INTO answers (player_quiz_id, question_id, submitted_answer, submitted_order, is_correct, points_awarded)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	for _, a := range answers {
		batch.Queue(query, a.PlayerQuizID, a.QuestionID, a.SubmittedAnswer, a.SubmittedOrder, a.IsCorrect, a.PointsAwarded)
	}
	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for _, a := range answers {
		if err := results.QueryRow().Scan(&a.ID, &a.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

// RecomputeScore re-derives the player's score as the sum of awarded points
// over all their answers and writes it back.
func (r *Repository) RecomputeScore(ctx context.Context, playerQuizID uuid.UUID) (int, error) {
	const query = `UPDATE player_quizzes SET
		score = (SELECT COALESCE(SUM(points_awarded), 0) FROM answers WHERE player_quiz_id = $1)
		WHERE id = $1
		RETURNING score`
	var score int
	if err := r.pool.QueryRow(ctx, query, playerQuizID).Scan(&score); err != nil {
		return 0, err
	}
	return score, nil
}

// SetCompleted stamps completed_at once. Returns pgx.ErrNoRows if the
// player-quiz was already completed, which guards against double credit.
func (r *Repository) SetCompleted(ctx context.Context, playerQuizID uuid.UUID) (time.Time, error) {
	const query = `UPDATE player_quizzes SET completed_at = NOW()
		WHERE id = $1 AND completed_at IS NULL
		RETURNING completed_at`
	var completedAt time.Time
	if err := r.pool.QueryRow(ctx, query, playerQuizID).Scan(&completedAt); err != nil {
		return time.Time{}, err
	}
	return completedAt, nil
}
