package badges

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads badge inputs and persists the computed set.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a badges repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CountPlays returns how many sessions the user has joined as a player.
func (r *Repository) CountPlays(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM player_quizzes WHERE player_id = $1`, userID).Scan(&n)
	return n, err
}

// ReplaceBadges overwrites the user's stored badge list with the given set.
func (r *Repository) ReplaceBadges(ctx context.Context, userID uuid.UUID, badges []string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET badges = $1, updated_at = NOW() WHERE id = $2`, badges, userID)
	return err
}
