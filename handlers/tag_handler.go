package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/nakayamaryo0731/oaiko/errors"
	"github.com/nakayamaryo0731/oaiko/logger"
	"github.com/nakayamaryo0731/oaiko/middleware"
	"github.com/nakayamaryo0731/oaiko/models"
	"github.com/nakayamaryo0731/oaiko/types"
)

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	tagModel *models.TagModel
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagModel *models.TagModel) *TagHandler {
	return &TagHandler{tagModel: tagModel}
}

// CreateTag handles POST /v1/groups/:groupId/tags.
func (h *TagHandler) CreateTag(c *gin.Context) {
	log := logger.GetLogger()

	var req types.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid create tag request", "error", err)
		_ = c.Error(apperrors.ValidationFailed("リクエストの形式が正しくありません", "invalid_request_payload"))
		return
	}

	tag, err := h.tagModel.CreateTag(c.Request.Context(), c.Param("groupId"), middleware.GetUserID(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, tag)
}

// ListTags handles GET /v1/groups/:groupId/tags.
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tagModel.ListTags(c.Request.Context(), c.Param("groupId"), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if tags == nil {
		tags = []*types.Tag{}
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// DeleteTag handles DELETE /v1/groups/:groupId/tags/:tagId.
func (h *TagHandler) DeleteTag(c *gin.Context) {
	err := h.tagModel.DeleteTag(c.Request.Context(), c.Param("groupId"), c.Param("tagId"), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
