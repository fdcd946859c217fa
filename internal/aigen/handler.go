package aigen

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quizhive/backend/internal/auth"
	"github.com/quizhive/backend/internal/models"
	"github.com/quizhive/backend/internal/quizzes"
	"github.com/quizhive/backend/internal/sessions"
	"github.com/quizhive/backend/pkg/response"
)

// QuestionConfig carries per-question overrides, matched to generated
// questions by index.
type QuestionConfig struct {
	Points int `json:"points"`
}

// GenerateRequest is the body for POST /ai-quiz/generate.
type GenerateRequest struct {
	Topic           string           `json:"topic" binding:"required"`
	NumQuestions    int              `json:"num_questions" binding:"required,gt=0"`
	Duration        int              `json:"duration"` // minutes
	QuestionConfigs []QuestionConfig `json:"question_configs"`
}

// Handler generates quizzes from a topic and persists them through the same
// path as manual authoring.
type Handler struct {
	generator       TextGenerator
	quizzes         *quizzes.Repository
	sessions        *sessions.Repository
	maxQuestions    int
	defaultDuration time.Duration
	logger          *zap.Logger
}

// NewHandler creates an AI generation handler.
func NewHandler(generator TextGenerator, quizRepo *quizzes.Repository, sessionRepo *sessions.Repository, maxQuestions, defaultDurationMinutes int, logger *zap.Logger) *Handler {
	if maxQuestions <= 0 {
		maxQuestions = 20
	}
	if defaultDurationMinutes <= 0 {
		defaultDurationMinutes = 10
	}
	return &Handler{
		generator:       generator,
		quizzes:         quizRepo,
		sessions:        sessionRepo,
		maxQuestions:    maxQuestions,
		defaultDuration: time.Duration(defaultDurationMinutes) * time.Minute,
		logger:          logger,
	}
}

// Generate handles POST /ai-quiz/generate.
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "topic and num_questions are required")
		return
	}
	if h.generator == nil {
		response.ServiceUnavailable(c, "ai generation is not configured")
		return
	}
	userID := auth.CurrentUserID(c)

	count := req.NumQuestions
	if count > h.maxQuestions {
		count = h.maxQuestions
	}

	raw, err := h.generator.Generate(c.Request.Context(), BuildPrompt(req.Topic, count))
	if err != nil {
		h.logger.Error("ai generation failed", zap.Error(err), zap.String("topic", req.Topic))
		response.Internal(c, "failed to generate questions")
		return
	}

	generated, err := ParseQuestions(raw)
	if err != nil {
		h.logger.Error("ai output unparsable", zap.Error(err), zap.String("topic", req.Topic))
		response.Internal(c, "failed to parse generated questions")
		return
	}
	generated = FilterUsable(generated)
	if len(generated) == 0 {
		response.Internal(c, "model returned no usable questions")
		return
	}

	questions := make([]*models.Question, 0, len(generated))
	for i, g := range generated {
		points := 10
		if i < len(req.QuestionConfigs) && req.QuestionConfigs[i].Points > 0 {
			points = req.QuestionConfigs[i].Points
		}
		questions = append(questions, &models.Question{
			Text:          g.Question,
			Type:          models.QuestionMCQ,
			Options:       g.Options,
			CorrectAnswer: g.CorrectAnswer,
			Points:        points,
		})
	}

	quiz := &models.Quiz{
		Title:       req.Topic,
		Description: "AI generated quiz about " + req.Topic,
		CreatedBy:   userID,
	}
	duration := h.defaultDuration
	if req.Duration > 0 {
		duration = time.Duration(req.Duration) * time.Minute
	}
	quiz.DurationMinutes = int(duration.Minutes())

	ctx := c.Request.Context()
	if err := h.quizzes.Create(ctx, quiz); err != nil {
		h.logger.Error("create ai quiz failed", zap.Error(err))
		response.Internal(c, "failed to create quiz")
		return
	}
	if err := h.quizzes.AddHosted(ctx, userID, quiz.ID); err != nil {
		h.logger.Warn("add hosted quiz failed", zap.Error(err))
	}
	if err := h.quizzes.AddQuestions(ctx, quiz.ID, questions); err != nil {
		h.logger.Error("insert generated questions failed", zap.Error(err))
		response.Internal(c, "failed to save questions")
		return
	}
	if _, err := h.quizzes.RecomputeTotalPoints(ctx, quiz.ID); err != nil {
		response.Internal(c, "failed to recompute quiz total")
		return
	}

	session, err := h.sessions.CreateForQuiz(ctx, quiz.ID, duration)
	if err != nil {
		h.logger.Error("open session for ai quiz failed", zap.Error(err))
		response.Internal(c, "failed to open session")
		return
	}

	response.Created(c, gin.H{
		"quiz_id":    quiz.ID,
		"session_id": session.ID,
		"join_code":  session.JoinCode,
	})
}
