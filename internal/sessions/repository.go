package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizhive/backend/internal/models"
)

// joinCodeAttempts bounds retries when a generated code collides.
const joinCodeAttempts = 5

// Repository handles session and player-quiz persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a sessions repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateForQuiz opens a new session for a quiz with a fresh join code.
// The session is active from creation until start + duration.
func (r *Repository) CreateForQuiz(ctx context.Context, quizID uuid.UUID, duration time.Duration) (*models.Session, error) {
	const query = `INSERT INTO sessions (quiz_id, join_code, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, quiz_id, join_code, start_time, end_time, is_active, created_at`
	start := time.Now()
	end := start.Add(duration)
	for attempt := 0; attempt < joinCodeAttempts; attempt++ {
		code, err := GenerateJoinCode()
		if err != nil {
			return nil, err
		}
		var s models.Session
		err = r.pool.QueryRow(ctx, query, quizID, code, start, end).
			Scan(&s.ID, &s.QuizID, &s.JoinCode, &s.StartTime, &s.EndTime, &s.IsActive, &s.CreatedAt)
		if err == nil {
			return &s, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue // join code collision, try another
		}
		return nil, err
	}
	return nil, errors.New("could not allocate a unique join code")
}

// GetByID returns a session by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	const query = `SELECT id, quiz_id, join_code, start_time, end_time, is_active, created_at
		FROM sessions WHERE id = $1`
	var s models.Session
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&s.ID, &s.QuizID, &s.JoinCode, &s.StartTime, &s.EndTime, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByJoinCode returns a session by join code.
func (r *Repository) GetByJoinCode(ctx context.Context, code string) (*models.Session, error) {
	const query = `SELECT id, quiz_id, join_code, start_time, end_time, is_active, created_at
		FROM sessions WHERE join_code = $1`
	var s models.Session
	err := r.pool.QueryRow(ctx, query, code).
		Scan(&s.ID, &s.QuizID, &s.JoinCode, &s.StartTime, &s.EndTime, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Deactivate persists is_active = false for a session.
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE sessions SET is_active = FALSE WHERE id = $1`, id)
	return err
}

// CheckAndExpire is the single expiry transition: if now is past the session's
// end time it persists is_active=false (first observing read only) and returns
// ErrSessionExpired. Safe to call from any read path, idempotent on repeat.
func (r *Repository) CheckAndExpire(ctx context.Context, s *models.Session, now time.Time) error {
	if now.Before(s.EndTime) {
		return nil
	}
	if s.IsActive {
		if err := r.Deactivate(ctx, s.ID); err != nil {
			return err
		}
		s.IsActive = false
	}
	return ErrSessionExpired
}

// CreatePlayerQuiz inserts a join record for (session, player) with score 0.
// Returns ErrAlreadyJoined when a record already exists.
func (r *Repository) CreatePlayerQuiz(ctx context.Context, pq *models.PlayerQuiz) error {
	const query = `INSERT INTO player_quizzes (session_id, player_id, display_name, avatar_url)
		VALUES ($1, $2, $3, NULLIF($4,''))
		RETURNING id, score, created_at`
	err := r.pool.QueryRow(ctx, query, pq.SessionID, pq.PlayerID, pq.DisplayName, pq.AvatarURL).
		Scan(&pq.ID, &pq.Score, &pq.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyJoined
	}
	return err
}

// GetPlayerQuiz returns the join record for (session, player) if one exists.
func (r *Repository) GetPlayerQuiz(ctx context.Context, sessionID, playerID uuid.UUID) (*models.PlayerQuiz, error) {
	const query = `SELECT id, session_id, player_id, display_name, COALESCE(avatar_url,''), score, completed_at, created_at
		FROM player_quizzes WHERE session_id = $1 AND player_id = $2`
	var pq models.PlayerQuiz
	err := r.pool.QueryRow(ctx, query, sessionID, playerID).
		Scan(&pq.ID, &pq.SessionID, &pq.PlayerID, &pq.DisplayName, &pq.AvatarURL, &pq.Score, &pq.CompletedAt, &pq.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &pq, nil
}
