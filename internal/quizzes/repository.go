package quizzes

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizhive/backend/internal/models"
)

// Repository handles quiz and question persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a quiz repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new quiz.
func (r *Repository) Create(ctx context.Context, q *models.Quiz) error {
	const query = `INSERT INTO quizzes (title, description, created_by, duration_minutes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, total_points, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, q.Title, q.Description, q.CreatedBy, q.DurationMinutes).
		Scan(&q.ID, &q.TotalPoints, &q.CreatedAt, &q.UpdatedAt)
}

// GetByID returns a quiz by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	const query = `SELECT id, title, description, created_by, duration_minutes, total_points, created_at, updated_at
		FROM quizzes WHERE id = $1`
	var q models.Quiz
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&q.ID, &q.Title, &q.Description, &q.CreatedBy, &q.DurationMinutes, &q.TotalPoints, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// List returns quizzes, optionally filtered by creator.
func (r *Repository) List(ctx context.Context, createdBy *uuid.UUID) ([]models.Quiz, error) {
	query := `SELECT id, title, description, created_by, duration_minutes, total_points, created_at, updated_at FROM quizzes`
	var args []interface{}
	if createdBy != nil {
		query += ` WHERE created_by = $1`
		args = append(args, *createdBy)
	}
	rows, err := r.pool.Query(ctx, query+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Quiz
	for rows.Next() {
		var q models.Quiz
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &q.CreatedBy, &q.DurationMinutes, &q.TotalPoints, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// Update applies field updates to a quiz. Nil fields are left unchanged.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, title, description *string, durationMinutes *int) error {
	const query = `UPDATE quizzes SET
		title = COALESCE($1, title),
		description = COALESCE($2, description),
		duration_minutes = COALESCE($3, duration_minutes),
		updated_at = NOW()
		WHERE id = $4`
	_, err := r.pool.Exec(ctx, query, title, description, durationMinutes, id)
	return err
}

// Delete removes a quiz and its dependent rows. The schema carries no
// cascades, so children go first, inside one transaction.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	statements := []string{
		`DELETE FROM answers WHERE player_quiz_id IN
			(SELECT pq.id FROM player_quizzes pq JOIN sessions s ON s.id = pq.session_id WHERE s.quiz_id = $1)`,
		`DELETE FROM player_quizzes WHERE session_id IN (SELECT id FROM sessions WHERE quiz_id = $1)`,
		`DELETE FROM sessions WHERE quiz_id = $1`,
		`DELETE FROM questions WHERE quiz_id = $1`,
		`DELETE FROM user_hosted_quizzes WHERE quiz_id = $1`,
		`DELETE FROM quizzes WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, id); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// AddQuestions bulk-inserts questions for a quiz.
func (r *Repository) AddQuestions(ctx context.Context, quizID uuid.UUID, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	const query = `INSERT INTO questions (quiz_id, text, type, options, correct_answer, correct_order, media_url, points)
		VALUES ($1, $2, $3, $4, NULLIF($5,''), $6, NULLIF($7,''), $8)
		RETURNING id, created_at`
	for _, q := range questions {
		q.QuizID = quizID
		batch.Queue(query, quizID, q.Text, q.Type, q.Options, q.CorrectAnswer, q.CorrectOrder, q.MediaURL, q.Points)
	}
	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for _, q := range questions {
		if err := results.QueryRow().Scan(&q.ID, &q.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

// GetQuestion returns a question by ID.
func (r *Repository) GetQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	const query = `SELECT id, quiz_id, text, type, options, COALESCE(correct_answer,''), correct_order, COALESCE(media_url,''), points, created_at
		FROM questions WHERE id = $1`
	var q models.Question
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&q.ID, &q.QuizID, &q.Text, &q.Type, &q.Options, &q.CorrectAnswer, &q.CorrectOrder, &q.MediaURL, &q.Points, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListQuestions returns all questions for a quiz.
func (r *Repository) ListQuestions(ctx context.Context, quizID uuid.UUID) ([]models.Question, error) {
	const query = `SELECT id, quiz_id, text, type, options, COALESCE(correct_answer,''), correct_order, COALESCE(media_url,''), points, created_at
		FROM questions WHERE quiz_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Text, &q.Type, &q.Options, &q.CorrectAnswer, &q.CorrectOrder, &q.MediaURL, &q.Points, &q.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// UpdateQuestion applies field updates to a single question by ID.
func (r *Repository) UpdateQuestion(ctx context.Context, q *models.Question) error {
	const query = `UPDATE questions SET
		text = $1, type = $2, options = $3,
		correct_answer = NULLIF($4,''), correct_order = $5,
		media_url = NULLIF($6,''), points = $7
		WHERE id = $8`
	_, err := r.pool.Exec(ctx, query, q.Text, q.Type, q.Options, q.CorrectAnswer, q.CorrectOrder, q.MediaURL, q.Points, q.ID)
	return err
}

// RecomputeTotalPoints re-derives a quiz's total from its questions and persists it.
func (r *Repository) RecomputeTotalPoints(ctx context.Context, quizID uuid.UUID) (int, error) {
	const query = `UPDATE quizzes SET
		total_points = (SELECT COALESCE(SUM(points), 0) FROM questions WHERE quiz_id = $1),
		updated_at = NOW()
		WHERE id = $1
		RETURNING total_points`
	var total int
	if err := r.pool.QueryRow(ctx, query, quizID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// AddHosted records a quiz in the user's hosted set (idempotent).
func (r *Repository) AddHosted(ctx context.Context, userID, quizID uuid.UUID) error {
	const query = `INSERT INTO user_hosted_quizzes (user_id, quiz_id) VALUES ($1, $2)
		ON CONFLICT (user_id, quiz_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, userID, quizID)
	return err
}

// CountHosted returns how many quizzes the user has hosted.
func (r *Repository) CountHosted(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM user_hosted_quizzes WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}
