package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quizhive/backend/internal/auth"
	"github.com/quizhive/backend/internal/models"
	"github.com/quizhive/backend/internal/realtime"
	"github.com/quizhive/backend/pkg/response"
)

// QuizSource provides the quiz lookups the session lifecycle needs.
// Satisfied by quizzes.Repository.
type QuizSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error)
	ListQuestions(ctx context.Context, quizID uuid.UUID) ([]models.Question, error)
	AddHosted(ctx context.Context, userID, quizID uuid.UUID) error
}

// UserSource provides player identity lookups. Satisfied by auth.Repository.
type UserSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// StartRequest is the body for POST /quizzes/session/start and /quizzes/rehost.
type StartRequest struct {
	QuizID   string `json:"quiz_id" binding:"required,uuid"`
	Duration *int   `json:"duration"` // minutes; falls back to quiz duration, then the configured default
}

// Handler handles session lifecycle HTTP endpoints.
type Handler struct {
	repo            *Repository
	quizzes         QuizSource
	users           UserSource
	hub             *realtime.Hub
	defaultDuration time.Duration
	logger          *zap.Logger
}

// NewHandler creates a sessions handler.
func NewHandler(repo *Repository, quizzes QuizSource, users UserSource, hub *realtime.Hub, defaultDurationMinutes int, logger *zap.Logger) *Handler {
	if defaultDurationMinutes <= 0 {
		defaultDurationMinutes = 10
	}
	return &Handler{
		repo:            repo,
		quizzes:         quizzes,
		users:           users,
		hub:             hub,
		defaultDuration: time.Duration(defaultDurationMinutes) * time.Minute,
		logger:          logger,
	}
}

// Start handles POST /quizzes/session/start.
func (h *Handler) Start(c *gin.Context) {
	h.startSession(c)
}

// Rehost handles POST /quizzes/rehost. Rehosting opens a brand new session
// (and join code) for the same quiz.
func (h *Handler) Rehost(c *gin.Context) {
	h.startSession(c)
}

func (h *Handler) startSession(c *gin.Context) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	quizID, err := uuid.Parse(req.QuizID)
	if err != nil {
		response.BadRequest(c, "invalid quiz_id")
		return
	}
	userID := auth.CurrentUserID(c)

	quiz, err := h.quizzes.GetByID(c.Request.Context(), quizID)
	if err != nil {
		response.NotFound(c, "quiz not found")
		return
	}

	duration := h.defaultDuration
	if quiz.DurationMinutes > 0 {
		duration = time.Duration(quiz.DurationMinutes) * time.Minute
	}
	if req.Duration != nil && *req.Duration > 0 {
		duration = time.Duration(*req.Duration) * time.Minute
	}

	session, err := h.repo.CreateForQuiz(c.Request.Context(), quizID, duration)
	if err != nil {
		h.logger.Error("create session failed", zap.Error(err), zap.String("quiz_id", quizID.String()))
		response.Internal(c, "failed to start session")
		return
	}
	if err := h.quizzes.AddHosted(c.Request.Context(), userID, quizID); err != nil {
		h.logger.Warn("add hosted quiz failed", zap.Error(err), zap.String("user_id", userID.String()))
	}

	response.Created(c, gin.H{"session_id": session.ID, "join_code": session.JoinCode})
}

// Join handles GET /quizzes/join/:code.
func (h *Handler) Join(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, "join code required")
		return
	}
	userID := auth.CurrentUserID(c)

	session, err := h.repo.GetByJoinCode(c.Request.Context(), code)
	if err != nil {
		response.NotFound(c, "no session for this code")
		return
	}
	if err := h.repo.CheckAndExpire(c.Request.Context(), session, time.Now()); err != nil {
		if errors.Is(err, ErrSessionExpired) {
			response.BadRequest(c, "session expired")
			return
		}
		response.Internal(c, "failed to check session")
		return
	}

	if _, err := h.repo.GetPlayerQuiz(c.Request.Context(), session.ID, userID); err == nil {
		response.Conflict(c, "already joined this session")
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.NotFound(c, "user not found")
		return
	}

	pq := &models.PlayerQuiz{
		SessionID:   session.ID,
		PlayerID:    userID,
		DisplayName: user.Username,
		AvatarURL:   user.AvatarURL,
	}
	if err := h.repo.CreatePlayerQuiz(c.Request.Context(), pq); err != nil {
		if errors.Is(err, ErrAlreadyJoined) {
			response.Conflict(c, "already joined this session")
			return
		}
		h.logger.Error("create player quiz failed", zap.Error(err))
		response.Internal(c, "failed to join session")
		return
	}

	h.hub.BroadcastToSessionAndPublish(session.ID, "player_joined", gin.H{
		"player_quiz_id": pq.ID,
		"display_name":   pq.DisplayName,
	})
	response.OK(c, gin.H{"session_id": session.ID, "player_quiz_id": pq.ID})
}

// Questions handles GET /quizzes/session/:sessionId. Returns the session's
// questions in a per-request random order with correct answers stripped.
func (h *Handler) Questions(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.BadRequest(c, "invalid session id")
		return
	}

	session, err := h.repo.GetByID(c.Request.Context(), sessionID)
	if err != nil {
		response.NotFound(c, "session not found")
		return
	}
	if err := h.repo.CheckAndExpire(c.Request.Context(), session, time.Now()); err != nil {
		if errors.Is(err, ErrSessionExpired) {
			response.BadRequest(c, "session expired")
			return
		}
		response.Internal(c, "failed to check session")
		return
	}

	questions, err := h.quizzes.ListQuestions(c.Request.Context(), session.QuizID)
	if err != nil {
		response.Internal(c, "failed to load questions")
		return
	}
	if len(questions) == 0 {
		response.NotFound(c, "no questions for this session")
		return
	}

	response.OK(c, gin.H{
		"questions":  ShuffleForPlayer(questions),
		"duration":   int(session.EndTime.Sub(session.StartTime).Minutes()),
		"start_time": session.StartTime,
	})
}
