package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nakayamaryo0731/oaiko/middleware"
	"github.com/nakayamaryo0731/oaiko/models"
	"github.com/nakayamaryo0731/oaiko/types"
)

// SettlementHandler handles HTTP requests for settlement summaries and
// settlement confirmation.
type SettlementHandler struct {
	settlementModel *models.SettlementModel
	expenseModel    *models.ExpenseModel
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementModel *models.SettlementModel, expenseModel *models.ExpenseModel) *SettlementHandler {
	return &SettlementHandler{settlementModel: settlementModel, expenseModel: expenseModel}
}

// GetSummary handles GET /v1/groups/:groupId/settlements/summary.
func (h *SettlementHandler) GetSummary(c *gin.Context) {
	groupID := c.Param("groupId")
	userID := middleware.GetUserID(c)

	period, ok, err := parsePeriod(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !ok {
		period, _, err = h.expenseModel.CurrentPeriod(c.Request.Context(), groupID, userID)
		if err != nil {
			_ = c.Error(err)
			return
		}
	}

	summary, err := h.settlementModel.GetSummary(c.Request.Context(), groupID, userID, period)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ConfirmSettlement handles POST /v1/groups/:groupId/settlements.
func (h *SettlementHandler) ConfirmSettlement(c *gin.Context) {
	groupID := c.Param("groupId")
	userID := middleware.GetUserID(c)

	period, ok, err := parsePeriod(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !ok {
		period, _, err = h.expenseModel.CurrentPeriod(c.Request.Context(), groupID, userID)
		if err != nil {
			_ = c.Error(err)
			return
		}
	}

	settlement, err := h.settlementModel.ConfirmSettlement(c.Request.Context(), groupID, userID, period)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, settlement)
}

// ListSettlements handles GET /v1/groups/:groupId/settlements.
func (h *SettlementHandler) ListSettlements(c *gin.Context) {
	settlements, err := h.settlementModel.ListSettlements(c.Request.Context(), c.Param("groupId"), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if settlements == nil {
		settlements = []*types.Settlement{}
	}
	c.JSON(http.StatusOK, gin.H{"settlements": settlements})
}
