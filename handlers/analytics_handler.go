package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nakayamaryo0731/oaiko/middleware"
	"github.com/nakayamaryo0731/oaiko/models"
)

// AnalyticsHandler handles HTTP requests for spending analytics.
type AnalyticsHandler struct {
	analyticsModel *models.AnalyticsModel
	expenseModel   *models.ExpenseModel
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsModel *models.AnalyticsModel, expenseModel *models.ExpenseModel) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsModel: analyticsModel, expenseModel: expenseModel}
}

// CategoryBreakdown handles GET /v1/groups/:groupId/analytics/categories.
func (h *AnalyticsHandler) CategoryBreakdown(c *gin.Context) {
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

	resp, err := h.analyticsModel.CategoryBreakdown(c.Request.Context(), groupID, userID, period)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// TagBreakdown handles GET /v1/groups/:groupId/analytics/tags.
func (h *AnalyticsHandler) TagBreakdown(c *gin.Context) {
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

	resp, err := h.analyticsModel.TagBreakdown(c.Request.Context(), groupID, userID, period)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MonthlyTrend handles GET /v1/groups/:groupId/analytics/trend. The months
// query parameter selects the window and defaults to six months.
func (h *AnalyticsHandler) MonthlyTrend(c *gin.Context) {
	months := models.TrendWindowShort
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			parsed = 0
		}
		months = parsed
	}

	resp, err := h.analyticsModel.MonthlyTrend(c.Request.Context(), c.Param("groupId"), middleware.GetUserID(c), months)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
