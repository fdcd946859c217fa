package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quizhive/backend/pkg/response"
	"github.com/quizhive/backend/pkg/utils"
)

// SignupRequest is the body for POST /users/signup.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the body for POST /users/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo       *Repository
	jwt        *JWTService
	cookieName string
	logger     *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, jwt *JWTService, cookieName string, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, jwt: jwt, cookieName: cookieName, logger: logger}
}

// Signup handles POST /users/signup.
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if _, err := h.repo.GetByEmail(c.Request.Context(), req.Email); err == nil {
		response.BadRequest(c, "email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	user, err := h.repo.Create(c.Request.Context(), req.Username, req.Email, hash)
	if err != nil {
		h.logger.Error("create user failed", zap.Error(err))
		response.Internal(c, "failed to create user")
		return
	}

	response.Created(c, gin.H{"user": user.ToPublic()})
}

// Login handles POST /users/login. Issues a signed token as an HttpOnly cookie
// and also returns it in the body for non-browser clients.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.NotFound(c, "no account for this email")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, "invalid password")
		return
	}

	token, err := h.jwt.Generate(user.ID)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, int(h.jwt.ExpiresIn().Seconds()), "/", "", false, true)
	response.OK(c, gin.H{"token": token, "user": user.ToPublic()})
}

// Logout handles POST /users/logout by clearing the auth cookie.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	response.OK(c, gin.H{"logged_out": true})
}

// Me handles GET /users/me.
func (h *Handler) Me(c *gin.Context) {
	userID := CurrentUserID(c)
	user, err := h.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.NotFound(c, "user not found")
		return
	}
	response.OK(c, gin.H{"user": user.ToPublic()})
}
