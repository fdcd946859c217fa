package media

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quizhive/backend/pkg/response"
	"github.com/quizhive/backend/pkg/storage"
)

// Handler serves question media uploads.
type Handler struct {
	s3     *storage.S3
	logger *zap.Logger
}

// NewHandler creates a media handler. s3 may be nil when storage is not
// configured; endpoints then return 503.
func NewHandler(s3 *storage.S3, logger *zap.Logger) *Handler {
	return &Handler{s3: s3, logger: logger}
}

// Upload handles POST /questions/media/upload. Accepts a multipart image and
// returns the public URL to store as a question's media_url.
func (h *Handler) Upload(c *gin.Context) {
	if h.s3 == nil {
		response.ServiceUnavailable(c, "media storage is not configured")
		return
	}
	quizID, err := uuid.Parse(c.PostForm("quiz_id"))
	if err != nil {
		response.BadRequest(c, "quiz_id is required")
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > storage.MaxMediaFileSize {
		response.BadRequest(c, "file exceeds the 5MB media limit")
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !storage.ValidateMediaFileType(contentType, fileHeader.Filename) {
		response.BadRequest(c, "only image files are allowed")
		return
	}
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(fileHeader.Filename)
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Internal(c, "failed to read upload")
		return
	}
	defer file.Close()

	key := storage.MediaKey(quizID.String(), fileHeader.Filename)
	url, err := h.s3.Upload(c.Request.Context(), key, contentType, file, fileHeader.Size)
	if err != nil {
		h.logger.Error("media upload failed", zap.Error(err), zap.String("key", key))
		response.Internal(c, "failed to upload media")
		return
	}

	response.Created(c, gin.H{"media_url": url, "key": key})
}

// PresignUpload handles POST /questions/media/presign. Returns a pre-signed
// PUT URL so large images can be uploaded directly from the client.
func (h *Handler) PresignUpload(c *gin.Context) {
	if h.s3 == nil {
		response.ServiceUnavailable(c, "media storage is not configured")
		return
	}
	var req struct {
		QuizID   string `json:"quiz_id" binding:"required,uuid"`
		Filename string `json:"filename" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "quiz_id and filename are required")
		return
	}
	if !storage.ValidateMediaFileType("", req.Filename) {
		response.BadRequest(c, "only image files are allowed")
		return
	}

	key := storage.MediaKey(req.QuizID, req.Filename)
	contentType := storage.ContentTypeForFilename(req.Filename)
	url, err := h.s3.GeneratePresignedUploadURL(c.Request.Context(), key, contentType, h.s3.PresignExpire())
	if err != nil {
		h.logger.Error("presign media upload failed", zap.Error(err), zap.String("key", key))
		response.Internal(c, "failed to presign upload")
		return
	}

	response.OK(c, gin.H{
		"upload_url": url,
		"media_url":  h.s3.PublicObjectURL(key),
		"key":        key,
		"expires_in": int(h.s3.PresignExpire().Seconds()),
	})
}
