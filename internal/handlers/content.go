package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/educoreai-lotus/contentstudio-backend/internal/modules/content"
	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/apierr"
	"github.com/educoreai-lotus/contentstudio-backend/internal/platform/logger"
	"github.com/educoreai-lotus/contentstudio-backend/internal/services"
)

type ContentHandler struct {
	log *logger.Logger
	svc services.ContentMutationService
}

func NewContentHandler(log *logger.Logger, svc services.ContentMutationService) *ContentHandler {
	return &ContentHandler{log: log.With("handler", "ContentHandler"), svc: svc}
}

// POST /api/topics/:id/content
func (h *ContentHandler) SubmitContent(c *gin.Context) {
	topicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid topic id"})
		return
	}

	var req struct {
		ContentType        any            `json:"content_type"`
		ContentData        map[string]any `json:"content_data"`
		GenerationMethodID int            `json:"generation_method_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.svc.SubmitContent(c.Request.Context(), nil, services.SubmitContentInput{
		TopicID:            topicID,
		ContentType:        req.ContentType,
		ContentData:        req.ContentData,
		GenerationMethodID: req.GenerationMethodID,
	})
	if err != nil {
		h.log.Warn("content submission failed", "topicID", topicID, "error", err)
		apiErr := submitError(err)
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Error(), "code": apiErr.Code})
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": result, "status_trail": result.StatusTrail})
}

// GET /api/topics/:id/content
func (h *ContentHandler) GetTopicContent(c *gin.Context) {
	topicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid topic id"})
		return
	}

	rows, err := h.svc.GetTopicContent(c.Request.Context(), nil, topicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": rows})
}

// GET /api/topics/:id/content/:type
func (h *ContentHandler) GetContent(c *gin.Context) {
	topicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid topic id"})
		return
	}

	row, err := h.svc.GetContent(c.Request.Context(), nil, topicID, c.Param("type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": row})
}

// GET /api/content/:id/history
func (h *ContentHandler) GetContentHistory(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content id"})
		return
	}

	rows, err := h.svc.GetContentHistory(c.Request.Context(), nil, contentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": rows})
}

func submitError(err error) *apierr.Error {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		return apierr.BadRequest("invalid_submission", err)
	}
	var mismatch *content.MismatchError
	if errors.As(err, &mismatch) {
		return apierr.Unprocessable("language_mismatch", err)
	}
	var detection *content.DetectionFailedError
	if errors.As(err, &detection) {
		return apierr.Unprocessable("language_detection_failed", err)
	}
	var quality *services.QualityCheckFailedError
	if errors.As(err, &quality) {
		return apierr.Unprocessable("quality_check_failed", err)
	}
	var missing *services.MissingCollaboratorError
	if errors.As(err, &missing) {
		return apierr.Unavailable("collaborator_unavailable", err)
	}
	var archive *services.HistoryArchiveError
	if errors.As(err, &archive) {
		return apierr.Internal("archive_failed", err)
	}
	return apierr.Internal("submission_failed", err)
}
