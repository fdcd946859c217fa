package badges

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quizhive/backend/internal/auth"
	"github.com/quizhive/backend/pkg/response"
)

// Handler serves the badges endpoint.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a badges handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Get handles GET /users/badges. Recomputes from current counts so the
// response never lags behind a pending worker job.
func (h *Handler) Get(c *gin.Context) {
	userID := auth.CurrentUserID(c)

	earned, err := h.service.Recompute(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("recompute badges failed", zap.Error(err), zap.String("user_id", userID.String()))
		response.Internal(c, "failed to compute badges")
		return
	}
	response.OK(c, gin.H{"badges": earned})
}
