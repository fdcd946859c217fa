package play

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/quizhive/backend/internal/models"
	"github.com/quizhive/backend/internal/realtime"
	"github.com/quizhive/backend/pkg/response"
)

// AnswerStore is the persistence surface for answers and scores.
// Satisfied by Repository.
type AnswerStore interface {
	GetPlayerQuizByID(ctx context.Context, id uuid.UUID) (*models.PlayerQuiz, error)
	InsertAnswer(ctx context.Context, a *models.Answer) error
	InsertAnswers(ctx context.Context, answers []*models.Answer) error
	RecomputeScore(ctx context.Context, playerQuizID uuid.UUID) (int, error)
	SetCompleted(ctx context.Context, playerQuizID uuid.UUID) (time.Time, error)
}

// QuestionSource provides question lookups for grading.
// Satisfied by quizzes.Repository.
type QuestionSource interface {
	GetQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error)
}

// PointsStore credits lifetime points to a user. Satisfied by auth.Repository.
type PointsStore interface {
	AddPoints(ctx context.Context, userID uuid.UUID, points int) error
}

// BadgeQueue enqueues badge recomputation jobs. Satisfied by queue.Queue.
type BadgeQueue interface {
	EnqueueBadgeRecompute(ctx context.Context, userID uuid.UUID) error
}

// SubmitAnswerRequest is the body for POST /quizzes/answer.
type SubmitAnswerRequest struct {
	PlayerQuizID    string   `json:"player_quiz_id" binding:"required,uuid"`
	QuestionID      string   `json:"question_id" binding:"required,uuid"`
	SubmittedAnswer string   `json:"submitted_answer"`
	SubmittedOrder  []string `json:"submitted_order"`
}

// CompletionAnswer is one answer inside a completion batch.
type CompletionAnswer struct {
	QuestionID      string   `json:"question_id" binding:"required,uuid"`
	SubmittedAnswer string   `json:"submitted_answer"`
	SubmittedOrder  []string `json:"submitted_order"`
}

// CompleteRequest is the body for POST /quizzes/complete.
type CompleteRequest struct {
	PlayerQuizID string             `json:"player_quiz_id" binding:"required,uuid"`
	Answers      []CompletionAnswer `json:"answers" binding:"required,min=1"`
}

// Handler handles answer submission and quiz completion.
type Handler struct {
	repo      AnswerStore
	questions QuestionSource
	points    PointsStore
	badges    BadgeQueue
	hub       *realtime.Hub
	logger    *zap.Logger
}

// NewHandler creates a play handler.
func NewHandler(repo AnswerStore, questions QuestionSource, points PointsStore, badges BadgeQueue, hub *realtime.Hub, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, questions: questions, points: points, badges: badges, hub: hub, logger: logger}
}

// SubmitAnswer handles POST /quizzes/answer. Grades one answer and updates
// the player's running score.
func (h *Handler) SubmitAnswer(c *gin.Context) {
	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "player_quiz_id and question_id are required")
		return
	}
	if req.SubmittedAnswer == "" && len(req.SubmittedOrder) == 0 {
		response.BadRequest(c, "submitted_answer or submitted_order is required")
		return
	}
	playerQuizID := uuid.MustParse(req.PlayerQuizID)
	questionID := uuid.MustParse(req.QuestionID)
	ctx := c.Request.Context()

	if _, err := h.repo.GetPlayerQuizByID(ctx, playerQuizID); err != nil {
		response.NotFound(c, "player quiz not found")
		return
	}
	question, err := h.questions.GetQuestion(ctx, questionID)
	if err != nil {
		response.NotFound(c, "question not found")
		return
	}

	isCorrect, pointsEarned := Grade(question, req.SubmittedAnswer, req.SubmittedOrder)
	answer := &models.Answer{
		PlayerQuizID:    playerQuizID,
		QuestionID:      questionID,
		SubmittedAnswer: req.SubmittedAnswer,
		SubmittedOrder:  req.SubmittedOrder,
		IsCorrect:       isCorrect,
		PointsAwarded:   pointsEarned,
	}
	if err := h.repo.InsertAnswer(ctx, answer); err != nil {
		h.logger.Error("insert answer failed", zap.Error(err))
		response.Internal(c, "failed to save answer")
		return
	}
	if _, err := h.repo.RecomputeScore(ctx, playerQuizID); err != nil {
		h.logger.Error("recompute score failed", zap.Error(err))
		response.Internal(c, "failed to update score")
		return
	}

	response.Created(c, gin.H{"is_correct": isCorrect, "points_earned": pointsEarned})
}

// CompleteQuiz handles POST /quizzes/complete. Grades the submitted batch,
// finalizes the player's score, and credits lifetime points. Completion is
// single-shot: a repeat call for the same player-quiz returns 409.
func (h *Handler) CompleteQuiz(c *gin.Context) {
	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "player_quiz_id and a non-empty answers list are required")
		return
	}
	playerQuizID := uuid.MustParse(req.PlayerQuizID)

	// Gin does not dive into slice elements, so question IDs are validated here.
	questionIDs := make([]uuid.UUID, len(req.Answers))
	for i, in := range req.Answers {
		qid, err := uuid.Parse(in.QuestionID)
		if err != nil {
			response.BadRequest(c, "invalid question_id: "+in.QuestionID)
			return
		}
		questionIDs[i] = qid
	}
	ctx := c.Request.Context()

	pq, err := h.repo.GetPlayerQuizByID(ctx, playerQuizID)
	if err != nil {
		response.NotFound(c, "player quiz not found")
		return
	}
	if pq.CompletedAt != nil {
		response.Conflict(c, "quiz already completed")
		return
	}

	// Grade concurrently; all answers finish before anything is persisted.
	answers := make([]*models.Answer, len(req.Answers))
	g, gctx := errgroup.WithContext(ctx)
	for i, in := range req.Answers {
		g.Go(func() error {
			question, err := h.questions.GetQuestion(gctx, questionIDs[i])
			if err != nil {
				return err
			}
			isCorrect, pointsEarned := Grade(question, in.SubmittedAnswer, in.SubmittedOrder)
			answers[i] = &models.Answer{
				PlayerQuizID:    playerQuizID,
				QuestionID:      questionIDs[i],
				SubmittedAnswer: in.SubmittedAnswer,
				SubmittedOrder:  in.SubmittedOrder,
				IsCorrect:       isCorrect,
				PointsAwarded:   pointsEarned,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "question not found")
			return
		}
		h.logger.Error("grading failed", zap.Error(err))
		response.Internal(c, "failed to grade answers")
		return
	}

	// Claim completion before writing anything. Of two concurrent
	// completions only the claimant inserts answers, so the score cannot
	// double-sum and lifetime points are credited once.
	completedAt, err := h.repo.SetCompleted(ctx, playerQuizID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Conflict(c, "quiz already completed")
			return
		}
		response.Internal(c, "failed to complete quiz")
		return
	}

	if err := h.repo.InsertAnswers(ctx, answers); err != nil {
		h.logger.Error("insert answers failed", zap.Error(err))
		response.Internal(c, "failed to save answers")
		return
	}
	score, err := h.repo.RecomputeScore(ctx, playerQuizID)
	if err != nil {
		response.Internal(c, "failed to update score")
		return
	}

	if err := h.points.AddPoints(ctx, pq.PlayerID, score); err != nil {
		h.logger.Error("credit lifetime points failed", zap.Error(err), zap.String("player_id", pq.PlayerID.String()))
	}
	if err := h.badges.EnqueueBadgeRecompute(ctx, pq.PlayerID); err != nil {
		h.logger.Warn("enqueue badge recompute failed", zap.Error(err))
	}
	h.hub.BroadcastToSessionAndPublish(pq.SessionID, "leaderboard_updated", gin.H{
		"player_quiz_id": pq.ID,
		"score":          score,
	})

	response.OK(c, gin.H{
		"session_id":   pq.SessionID,
		"score":        score,
		"completed_at": completedAt,
	})
}
