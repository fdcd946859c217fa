package leaderboard

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/quizhive/backend/internal/auth"
	"github.com/quizhive/backend/internal/models"
	"github.com/quizhive/backend/pkg/response"
)

// SessionSource provides the session lookups results resolution needs.
// Satisfied by sessions.Repository.
type SessionSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	GetPlayerQuiz(ctx context.Context, sessionID, playerID uuid.UUID) (*models.PlayerQuiz, error)
}

// Handler serves session leaderboards and per-player result transcripts.
type Handler struct {
	repo     *Repository
	sessions SessionSource
	logger   *zap.Logger
}

// NewHandler creates a leaderboard handler.
func NewHandler(repo *Repository, sessions SessionSource, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, sessions: sessions, logger: logger}
}

// Get handles GET /quizzes/leaderboard/:sessionId. Standings are live during
// a session, so the response is marked uncacheable.
func (h *Handler) Get(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.BadRequest(c, "invalid session id")
		return
	}
	ctx := c.Request.Context()

	if _, err := h.sessions.GetByID(ctx, sessionID); err != nil {
		response.NotFound(c, "session not found")
		return
	}

	entries, err := h.repo.ListBySession(ctx, sessionID)
	if err != nil {
		h.logger.Error("load leaderboard failed", zap.Error(err), zap.String("session_id", sessionID.String()))
		response.Internal(c, "failed to load leaderboard")
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, e := range entries {
		g.Go(func() error {
			attempted, correct, err := h.repo.CountAnswers(gctx, e.PlayerQuizID)
			if err != nil {
				return err
			}
			e.Attempted = attempted
			e.Correct = correct
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.logger.Error("count answers failed", zap.Error(err))
		response.Internal(c, "failed to load leaderboard")
		return
	}

	SortEntries(entries)

	c.Header("Cache-Control", "no-store")
	response.OK(c, gin.H{"leaderboard": entries})
}

// Results handles GET /quizzes/results/:sessionId. Returns the calling
// player's graded transcript for the session.
func (h *Handler) Results(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.BadRequest(c, "invalid session id")
		return
	}
	userID := auth.CurrentUserID(c)
	ctx := c.Request.Context()

	session, err := h.sessions.GetByID(ctx, sessionID)
	if err != nil {
		response.NotFound(c, "session not found")
		return
	}
	pq, err := h.sessions.GetPlayerQuiz(ctx, session.ID, userID)
	if err != nil {
		response.NotFound(c, "you did not play this session")
		return
	}
	results, err := h.repo.ListResults(ctx, pq.ID)
	if err != nil {
		h.logger.Error("load results failed", zap.Error(err), zap.String("player_quiz_id", pq.ID.String()))
		response.Internal(c, "failed to load results")
		return
	}
	if len(results) == 0 {
		response.NotFound(c, "no answers recorded for this session")
		return
	}

	response.OK(c, gin.H{"result": gin.H{
		"session_id":   session.ID,
		"score":        pq.Score,
		"completed_at": pq.CompletedAt,
		"answers":      results,
	}})
}
