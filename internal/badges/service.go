package badges

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quizhive/backend/internal/models"
)

// UserSource fetches the user record. Satisfied by auth.Repository.
type UserSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// HostCounter counts hosted quizzes. Satisfied by quizzes.Repository.
type HostCounter interface {
	CountHosted(ctx context.Context, userID uuid.UUID) (int, error)
}

// Service recomputes and stores a user's badge set. Used by the badges
// endpoint and by the background worker.
type Service struct {
	repo  *Repository
	users UserSource
	hosts HostCounter
}

// NewService creates a badges service.
func NewService(repo *Repository, users UserSource, hosts HostCounter) *Service {
	return &Service{repo: repo, users: users, hosts: hosts}
}

// Recompute derives the user's full badge set from current counts and
// replaces the stored list. Returns the new set.
func (s *Service) Recompute(ctx context.Context, userID uuid.UUID) ([]string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	plays, err := s.repo.CountPlays(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count plays: %w", err)
	}
	hosts, err := s.hosts.CountHosted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count hosted: %w", err)
	}

	earned := Compute(plays, user.TotalPoints, hosts)
	if err := s.repo.ReplaceBadges(ctx, userID, earned); err != nil {
		return nil, fmt.Errorf("replace badges: %w", err)
	}
	return earned, nil
}
