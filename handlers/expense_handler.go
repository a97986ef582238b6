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

// ExpenseHandler handles HTTP requests for expenses.
type ExpenseHandler struct {
	expenseModel *models.ExpenseModel
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseModel *models.ExpenseModel) *ExpenseHandler {
	return &ExpenseHandler{expenseModel: expenseModel}
}

// CreateExpense handles POST /v1/groups/:groupId/expenses.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	log := logger.GetLogger()

	var req types.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid create expense request", "error", err)
		_ = c.Error(apperrors.ValidationFailed("リクエストの形式が正しくありません", "invalid_request_payload"))
		return
	}

	resp, err := h.expenseModel.CreateExpense(c.Request.Context(), c.Param("groupId"), middleware.GetUserID(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListExpenses handles GET /v1/groups/:groupId/expenses. Without year/month
// query parameters it lists the group's current settlement period.
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	groupID := c.Param("groupId")
	userID := middleware.GetUserID(c)

	period, ok, err := parsePeriod(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	closingDay := 0
	if !ok {
		period, closingDay, err = h.expenseModel.CurrentPeriod(c.Request.Context(), groupID, userID)
		if err != nil {
			_ = c.Error(err)
			return
		}
	}

	expenses, err := h.expenseModel.ListExpenses(c.Request.Context(), groupID, userID, period)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if expenses == nil {
		expenses = []*types.ExpenseResponse{}
	}
	resp := gin.H{
		"expenses": expenses,
		"year":     period.Year,
		"month":    period.Month,
	}
	if closingDay > 0 {
		resp["closingDay"] = closingDay
	}
	c.JSON(http.StatusOK, resp)
}

// GetExpense handles GET /v1/groups/:groupId/expenses/:expenseId.
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	resp, err := h.expenseModel.GetExpense(c.Request.Context(), c.Param("groupId"), c.Param("expenseId"), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateExpense handles PUT /v1/groups/:groupId/expenses/:expenseId.
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	var req types.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("リクエストの形式が正しくありません", "invalid_request_payload"))
		return
	}

	resp, err := h.expenseModel.UpdateExpense(c.Request.Context(), c.Param("groupId"), c.Param("expenseId"), middleware.GetUserID(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteExpense handles DELETE /v1/groups/:groupId/expenses/:expenseId.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	err := h.expenseModel.DeleteExpense(c.Request.Context(), c.Param("groupId"), c.Param("expenseId"), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
