package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nakayamaryo0731/oaiko/config"
	"github.com/nakayamaryo0731/oaiko/middleware"
	"github.com/nakayamaryo0731/oaiko/models"
)

// InvitationHandler handles HTTP requests for group invitation links.
type InvitationHandler struct {
	groupModel *models.GroupModel
	serverCfg  *config.ServerConfig
}

// NewInvitationHandler creates a new InvitationHandler.
func NewInvitationHandler(groupModel *models.GroupModel, serverCfg *config.ServerConfig) *InvitationHandler {
	return &InvitationHandler{groupModel: groupModel, serverCfg: serverCfg}
}

// CreateInvitation handles POST /v1/groups/:groupId/invitations.
func (h *InvitationHandler) CreateInvitation(c *gin.Context) {
	invitation, err := h.groupModel.CreateInvitation(c.Request.Context(), c.Param("groupId"), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"invitation": invitation,
		"url":        fmt.Sprintf("%s/invite/%s", h.serverCfg.FrontendURL, invitation.Token),
	})
}

// GetInvitation handles GET /v1/invitations/:token. The route is public so
// an invited user can preview the group before signing in.
func (h *InvitationHandler) GetInvitation(c *gin.Context) {
	details, err := h.groupModel.GetInvitationDetails(c.Request.Context(), c.Param("token"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// AcceptInvitation handles POST /v1/invitations/:token/accept.
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	result, err := h.groupModel.AcceptInvitation(c.Request.Context(), c.Param("token"), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyMember {
		status = http.StatusOK
	}
	c.JSON(status, result)
}
