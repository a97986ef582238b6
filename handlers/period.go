package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/nakayamaryo0731/oaiko/errors"
	"github.com/nakayamaryo0731/oaiko/internal/expense"
)

// parsePeriod reads the optional year/month query parameters. It returns
// ok=false when neither is present so the caller can fall back to the
// group's current settlement period.
func parsePeriod(c *gin.Context) (expense.Period, bool, error) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" && monthStr == "" {
		return expense.Period{}, false, nil
	}

	invalid := apperrors.ValidationFailed("期間の指定が正しくありません", "invalid_period")

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 9999 {
		return expense.Period{}, false, invalid
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return expense.Period{}, false, invalid
	}

	return expense.Period{Year: year, Month: month}, true, nil
}
