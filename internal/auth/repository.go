package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizhive/backend/internal/models"
)

// Repository handles user persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByID returns a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const q = `SELECT id, username, email, password_hash, COALESCE(avatar_url,''), total_points, badges, created_at, updated_at
		FROM users WHERE id = $1`
	var u models.User
	err := r.pool.QueryRow(ctx, q, id).Scan(&u.ID, &u.Username, &u.Email, &u.Password,
		&u.AvatarURL, &u.TotalPoints, &u.Badges, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `SELECT id, username, email, password_hash, COALESCE(avatar_url,''), total_points, badges, created_at, updated_at
		FROM users WHERE email = $1`
	var u models.User
	err := r.pool.QueryRow(ctx, q, email).Scan(&u.ID, &u.Username, &u.Email, &u.Password,
		&u.AvatarURL, &u.TotalPoints, &u.Badges, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user.
func (r *Repository) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	const q = `INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, password_hash, COALESCE(avatar_url,''), total_points, badges, created_at, updated_at`
	var u models.User
	err := r.pool.QueryRow(ctx, q, username, email, passwordHash).
		Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.AvatarURL, &u.TotalPoints, &u.Badges, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AddPoints adds the given amount to the user's lifetime total_points.
func (r *Repository) AddPoints(ctx context.Context, id uuid.UUID, points int) error {
	const q = `UPDATE users SET total_points = total_points + $1, updated_at = NOW() WHERE id = $2`
	_, err := r.pool.Exec(ctx, q, points, id)
	return err
}
