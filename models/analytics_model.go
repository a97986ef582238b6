package models

import (
	"context"
	"time"

	apperrors "github.com/nakayamaryo0731/oaiko/errors"
	"github.com/nakayamaryo0731/oaiko/internal/expense"
	"github.com/nakayamaryo0731/oaiko/internal/store"
	"github.com/nakayamaryo0731/oaiko/types"
)

// Trend windows offered by the API.
const (
	TrendWindowShort = 6
	TrendWindowLong  = 12
)

// AnalyticsModel aggregates a group's expenses into category, tag, and trend
// views.
type AnalyticsModel struct {
	expenses   store.ExpenseStore
	groups     store.GroupStore
	categories store.CategoryStore
	tags       store.TagStore
	now        Clock
}

// NewAnalyticsModel creates a new AnalyticsModel.
func NewAnalyticsModel(expenses store.ExpenseStore, groups store.GroupStore, categories store.CategoryStore, tags store.TagStore, now Clock) *AnalyticsModel {
	return &AnalyticsModel{
		expenses:   expenses,
		groups:     groups,
		categories: categories,
		tags:       tags,
		now:        now,
	}
}

// CategoryBreakdown aggregates one period's expenses by category.
func (am *AnalyticsModel) CategoryBreakdown(ctx context.Context, groupID, userID string, period expense.Period) (*types.CategoryBreakdownResponse, error) {
	if _, err := verifyMember(ctx, am.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return nil, err
	}

	group, err := am.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	expenses, err := am.periodExpenses(ctx, group, period)
	if err != nil {
		return nil, err
	}

	categories, err := am.categories.ListCategories(ctx, groupID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	categoryInfo := make(map[string]expense.CategoryInfo, len(categories))
	for _, c := range categories {
		categoryInfo[c.ID] = expense.CategoryInfo{Name: c.Name, Icon: c.Icon}
	}

	resp := expense.AggregateCategoryBreakdown(expenses, categoryInfo)
	return &resp, nil
}

// TagBreakdown aggregates one period's expenses by tag. An expense counts its
// full amount toward every tag it carries.
func (am *AnalyticsModel) TagBreakdown(ctx context.Context, groupID, userID string, period expense.Period) (*types.TagBreakdownResponse, error) {
	if _, err := verifyMember(ctx, am.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return nil, err
	}

	group, err := am.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	expenses, err := am.periodExpenses(ctx, group, period)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(expenses))
	var total int64
	for i, e := range expenses {
		ids[i] = e.ID
		total += e.Amount
	}

	links, err := am.expenses.ListTagIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	tags, err := am.tags.ListTags(ctx, groupID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	tagInfo := make(map[string]expense.TagInfo, len(tags))
	for _, tag := range tags {
		tagInfo[tag.ID] = expense.TagInfo{Name: tag.Name, Color: tag.Color}
	}

	resp := expense.AggregateTagBreakdown(expenses, links, tagInfo, total)
	return &resp, nil
}

// MonthlyTrend returns per-period totals for the last months periods ending
// at the currently open one. Supported windows are 6 and 12 months.
func (am *AnalyticsModel) MonthlyTrend(ctx context.Context, groupID, userID string, months int) (*types.TrendResponse, error) {
	if months != TrendWindowShort && months != TrendWindowLong {
		return nil, apperrors.ValidationFailed("期間は6ヶ月または12ヶ月を指定してください", "trend_window_invalid")
	}

	if _, err := verifyMember(ctx, am.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return nil, err
	}

	group, err := am.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	anchor := expense.ResolveCurrentPeriod(am.now(), group.ClosingDay)
	earliest := anchor
	for i := 1; i < months; i++ {
		earliest = earliest.Prev()
	}

	from, _ := expense.PeriodBounds(earliest, group.ClosingDay)
	_, to := expense.PeriodBounds(anchor, group.ClosingDay)

	rows, err := am.expenses.ListExpensesByDateRange(ctx, groupID, from, to)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	totals := make(map[string]int64)
	for _, e := range rows {
		day, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			continue
		}
		p := expense.ResolveCurrentPeriod(day, group.ClosingDay)
		totals[p.Key()] += e.Amount
	}

	points := expense.AggregateMonthlyTrend(anchor.Year, anchor.Month, months, totals)
	return &types.TrendResponse{Trend: points}, nil
}

func (am *AnalyticsModel) periodExpenses(ctx context.Context, group *types.Group, period expense.Period) ([]types.Expense, error) {
	from, to := expense.PeriodBounds(period, group.ClosingDay)
	rows, err := am.expenses.ListExpensesByDateRange(ctx, group.ID, from, to)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	expenses := make([]types.Expense, len(rows))
	for i, e := range rows {
		expenses[i] = *e
	}
	return expenses, nil
}
