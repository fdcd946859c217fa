package quizzes

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quizhive/backend/internal/auth"
	"github.com/quizhive/backend/internal/models"
	"github.com/quizhive/backend/internal/sessions"
	"github.com/quizhive/backend/pkg/response"
)

// QuestionInput is a question in create/update request bodies.
type QuestionInput struct {
	ID            string   `json:"id,omitempty"` // set when updating an existing question
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	CorrectOrder  []string `json:"correct_order"`
	MediaURL      string   `json:"media_url"`
	Points        int      `json:"points"`
}

var errInvalidQuestion = errors.New("question text and correct answer are required")

// toModel validates and converts a question input. Points default to 10.
func (in QuestionInput) toModel() (*models.Question, error) {
	qType := models.QuestionType(in.Type)
	if in.Type == "" {
		qType = models.QuestionMCQ
	}
	if !qType.Valid() {
		return nil, errors.New("unknown question type: " + in.Type)
	}
	if in.Text == "" {
		return nil, errInvalidQuestion
	}
	if qType == models.QuestionRanking {
		if len(in.CorrectOrder) == 0 {
			return nil, errInvalidQuestion
		}
	} else if in.CorrectAnswer == "" {
		return nil, errInvalidQuestion
	}
	points := in.Points
	if points <= 0 {
		points = 10
	}
	return &models.Question{
		Text:          in.Text,
		Type:          qType,
		Options:       in.Options,
		CorrectAnswer: in.CorrectAnswer,
		CorrectOrder:  in.CorrectOrder,
		MediaURL:      in.MediaURL,
		Points:        points,
	}, nil
}

// CreateRequest is the body for POST /quizzes.
type CreateRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Duration    int             `json:"duration" binding:"required,gt=0"`
	Questions   []QuestionInput `json:"questions"`
}

// UpdateRequest is the body for PATCH /quizzes/:id.
type UpdateRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Duration    *int            `json:"duration"`
	Questions   []QuestionInput `json:"questions"`
}

// Handler handles quiz authoring HTTP endpoints.
type Handler struct {
	repo     *Repository
	sessions *sessions.Repository
	logger   *zap.Logger
}

// NewHandler creates a quizzes handler.
func NewHandler(repo *Repository, sessionRepo *sessions.Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, sessions: sessionRepo, logger: logger}
}

// Create handles POST /quizzes. Persists the quiz and its questions,
// recomputes the point total, and opens an initial hosting session.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	userID := auth.CurrentUserID(c)

	questions := make([]*models.Question, 0, len(req.Questions))
	for _, in := range req.Questions {
		q, err := in.toModel()
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		questions = append(questions, q)
	}

	quiz := &models.Quiz{
		Title:           req.Title,
		Description:     req.Description,
		CreatedBy:       userID,
		DurationMinutes: req.Duration,
	}
	if err := h.repo.Create(c.Request.Context(), quiz); err != nil {
		h.logger.Error("create quiz failed", zap.Error(err))
		response.Internal(c, "failed to create quiz")
		return
	}
	if err := h.repo.AddHosted(c.Request.Context(), userID, quiz.ID); err != nil {
		h.logger.Warn("add hosted quiz failed", zap.Error(err), zap.String("quiz_id", quiz.ID.String()))
	}
	if err := h.repo.AddQuestions(c.Request.Context(), quiz.ID, questions); err != nil {
		h.logger.Error("insert questions failed", zap.Error(err), zap.String("quiz_id", quiz.ID.String()))
		response.Internal(c, "failed to create questions")
		return
	}
	total, err := h.repo.RecomputeTotalPoints(c.Request.Context(), quiz.ID)
	if err != nil {
		response.Internal(c, "failed to recompute quiz total")
		return
	}
	quiz.TotalPoints = total

	session, err := h.sessions.CreateForQuiz(c.Request.Context(), quiz.ID, time.Duration(quiz.DurationMinutes)*time.Minute)
	if err != nil {
		h.logger.Error("open initial session failed", zap.Error(err), zap.String("quiz_id", quiz.ID.String()))
		response.Internal(c, "failed to open session")
		return
	}

	response.Created(c, gin.H{"quiz": quiz, "session": session})
}

// Update handles PATCH /quizzes/:id. The point total is re-aggregated from
// existing questions before any question replacement is applied.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid quiz id")
		return
	}
	userID := auth.CurrentUserID(c)

	quiz, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "quiz not found")
		return
	}
	if quiz.CreatedBy != userID {
		response.Forbidden(c, "only the quiz owner can update it")
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if _, err := h.repo.RecomputeTotalPoints(c.Request.Context(), id); err != nil {
		response.Internal(c, "failed to recompute quiz total")
		return
	}
	if err := h.repo.Update(c.Request.Context(), id, req.Title, req.Description, req.Duration); err != nil {
		response.Internal(c, "failed to update quiz")
		return
	}

	for _, in := range req.Questions {
		qID, err := uuid.Parse(in.ID)
		if err != nil {
			response.BadRequest(c, "question update requires a valid id")
			return
		}
		q, err := in.toModel()
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		q.ID = qID
		if err := h.repo.UpdateQuestion(c.Request.Context(), q); err != nil {
			response.Internal(c, "failed to update question")
			return
		}
	}

	updated, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to reload quiz")
		return
	}
	response.OK(c, gin.H{"quiz": updated})
}

// AddQuestion handles POST /quizzes/:id/questions.
func (h *Handler) AddQuestion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid quiz id")
		return
	}
	if _, err := h.repo.GetByID(c.Request.Context(), id); err != nil {
		response.NotFound(c, "quiz not found")
		return
	}

	var in QuestionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	q, err := in.toModel()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.repo.AddQuestions(c.Request.Context(), id, []*models.Question{q}); err != nil {
		response.Internal(c, "failed to add question")
		return
	}
	if _, err := h.repo.RecomputeTotalPoints(c.Request.Context(), id); err != nil {
		response.Internal(c, "failed to recompute quiz total")
		return
	}
	response.Created(c, gin.H{"added": true})
}

// GetByID handles GET /quizzes/:id. Returns the quiz and its questions
// (host view, correct answers included).
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid quiz id")
		return
	}
	quiz, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "quiz not found")
		return
	}
	questions, err := h.repo.ListQuestions(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to load questions")
		return
	}
	response.OK(c, gin.H{"quiz": quiz, "questions": questions})
}

// List handles GET /quizzes. Query ?mine=1 returns only quizzes created by the caller.
func (h *Handler) List(c *gin.Context) {
	var createdBy *uuid.UUID
	if c.Query("mine") == "1" {
		uid := auth.CurrentUserID(c)
		createdBy = &uid
	}
	list, err := h.repo.List(c.Request.Context(), createdBy)
	if err != nil {
		response.Internal(c, "failed to list quizzes")
		return
	}
	response.OK(c, list)
}

// Delete handles DELETE /quizzes/:id (owner only).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid quiz id")
		return
	}
	quiz, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "quiz not found")
		return
	}
	if quiz.CreatedBy != auth.CurrentUserID(c) {
		response.Forbidden(c, "only the quiz owner can delete it")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Internal(c, "failed to delete quiz")
		return
	}
	response.NoContent(c)
}
