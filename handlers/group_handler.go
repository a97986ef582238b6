// Package handlers contains the gin HTTP handlers. Handlers bind and
// sanity-check requests, delegate to the models, and attach errors to the
// context for the error-handling middleware to render.
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

// GroupHandler handles HTTP requests for groups, members, and categories.
type GroupHandler struct {
	groupModel *models.GroupModel
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupModel *models.GroupModel) *GroupHandler {
	return &GroupHandler{groupModel: groupModel}
}

// CreateGroup handles POST /v1/groups.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	log := logger.GetLogger()
	userID := middleware.GetUserID(c)

	var req types.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid create group request", "error", err)
		_ = c.Error(apperrors.ValidationFailed("リクエストの形式が正しくありません", "invalid_request_payload"))
		return
	}

	group, err := h.groupModel.CreateGroup(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

// ListGroups handles GET /v1/groups.
func (h *GroupHandler) ListGroups(c *gin.Context) {
	summaries, err := h.groupModel.ListGroups(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if summaries == nil {
		summaries = []*types.GroupSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"groups": summaries})
}

// GetGroup handles GET /v1/groups/:groupId.
func (h *GroupHandler) GetGroup(c *gin.Context) {
	group, err := h.groupModel.GetGroup(c.Request.Context(), c.Param("groupId"), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// UpdateClosingDay handles PATCH /v1/groups/:groupId/closing-day.
func (h *GroupHandler) UpdateClosingDay(c *gin.Context) {
	var req types.UpdateClosingDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("リクエストの形式が正しくありません", "invalid_request_payload"))
		return
	}

	err := h.groupModel.UpdateClosingDay(c.Request.Context(), c.Param("groupId"), middleware.GetUserID(c), req.ClosingDay)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMembers handles GET /v1/groups/:groupId/members.
func (h *GroupHandler) ListMembers(c *gin.Context) {
	members, err := h.groupModel.ListMembers(c.Request.Context(), c.Param("groupId"), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

// ListCategories handles GET /v1/groups/:groupId/categories.
func (h *GroupHandler) ListCategories(c *gin.Context) {
	categories, err := h.groupModel.ListCategories(c.Request.Context(), c.Param("groupId"), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
