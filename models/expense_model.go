package models

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/nakayamaryo0731/oaiko/errors"
	"github.com/nakayamaryo0731/oaiko/internal/expense"
	"github.com/nakayamaryo0731/oaiko/internal/store"
	"github.com/nakayamaryo0731/oaiko/logger"
	"github.com/nakayamaryo0731/oaiko/types"
)

// ExpenseModel implements expense CRUD. Every write revalidates the full
// input, recomputes the per-member shares, and refuses to touch a settlement
// period that has already been confirmed.
type ExpenseModel struct {
	expenses    store.ExpenseStore
	groups      store.GroupStore
	categories  store.CategoryStore
	tags        store.TagStore
	settlements store.SettlementStore
	now         Clock
}

// NewExpenseModel creates a new ExpenseModel.
func NewExpenseModel(expenses store.ExpenseStore, groups store.GroupStore, categories store.CategoryStore, tags store.TagStore, settlements store.SettlementStore, now Clock) *ExpenseModel {
	return &ExpenseModel{
		expenses:    expenses,
		groups:      groups,
		categories:  categories,
		tags:        tags,
		settlements: settlements,
		now:         now,
	}
}

// CreateExpense validates the request, computes the per-member shares, and
// persists the expense with its shares and tag links.
func (em *ExpenseModel) CreateExpense(ctx context.Context, groupID, userID string, req *types.CreateExpenseRequest) (*types.ExpenseResponse, error) {
	log := logger.GetLogger()

	if _, err := verifyMember(ctx, em.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return nil, err
	}

	group, err := em.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	exp, shares, err := em.buildExpense(ctx, group, req)
	if err != nil {
		return nil, err
	}

	if err := em.ensurePeriodOpen(ctx, group, exp.Date); err != nil {
		return nil, err
	}

	id, err := em.expenses.CreateExpense(ctx, exp, shares, req.TagIDs)
	if err != nil {
		log.Errorw("Failed to create expense", "groupId", groupID, "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}
	exp.ID = id
	for i := range shares {
		shares[i].ExpenseID = id
	}

	if err := em.tags.TouchTags(ctx, req.TagIDs); err != nil {
		log.Warnw("Failed to touch tags", "expenseId", id, "error", err)
	}

	return &types.ExpenseResponse{Expense: *exp, Shares: shares, TagIDs: req.TagIDs}, nil
}

// GetExpense retrieves one expense with its shares and tags.
func (em *ExpenseModel) GetExpense(ctx context.Context, groupID, expenseID, userID string) (*types.ExpenseResponse, error) {
	if _, err := verifyMember(ctx, em.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return nil, err
	}

	exp, err := em.getGroupExpense(ctx, groupID, expenseID)
	if err != nil {
		return nil, err
	}

	shares, err := em.expenses.ListShares(ctx, []string{expenseID})
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	links, err := em.expenses.ListTagIDs(ctx, []string{expenseID})
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return &types.ExpenseResponse{Expense: *exp, Shares: shares, TagIDs: links[expenseID]}, nil
}

// UpdateExpense replaces an expense after full revalidation. Both the stored
// date and the new date must fall in open periods.
func (em *ExpenseModel) UpdateExpense(ctx context.Context, groupID, expenseID, userID string, req *types.CreateExpenseRequest) (*types.ExpenseResponse, error) {
	if _, err := verifyMember(ctx, em.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return nil, err
	}

	group, err := em.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	current, err := em.getGroupExpense(ctx, groupID, expenseID)
	if err != nil {
		return nil, err
	}
	if err := em.ensurePeriodOpen(ctx, group, current.Date); err != nil {
		return nil, err
	}

	exp, shares, err := em.buildExpense(ctx, group, req)
	if err != nil {
		return nil, err
	}
	if err := em.ensurePeriodOpen(ctx, group, exp.Date); err != nil {
		return nil, err
	}

	exp.ID = expenseID
	for i := range shares {
		shares[i].ExpenseID = expenseID
	}

	if err := em.expenses.UpdateExpense(ctx, exp, shares, req.TagIDs); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Expense", expenseID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	if err := em.tags.TouchTags(ctx, req.TagIDs); err != nil {
		logger.GetLogger().Warnw("Failed to touch tags", "expenseId", expenseID, "error", err)
	}

	return &types.ExpenseResponse{Expense: *exp, Shares: shares, TagIDs: req.TagIDs}, nil
}

// DeleteExpense removes an expense unless its period is settled.
func (em *ExpenseModel) DeleteExpense(ctx context.Context, groupID, expenseID, userID string) error {
	if _, err := verifyMember(ctx, em.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return err
	}

	group, err := em.groups.GetGroup(ctx, groupID)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}

	exp, err := em.getGroupExpense(ctx, groupID, expenseID)
	if err != nil {
		return err
	}
	if err := em.ensurePeriodOpen(ctx, group, exp.Date); err != nil {
		return err
	}

	if err := em.expenses.DeleteExpense(ctx, expenseID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Expense", expenseID)
		}
		return apperrors.NewDatabaseError(err)
	}

	return nil
}

// ListExpenses retrieves the group's expenses for one settlement period,
// enriched with shares and tag links.
func (em *ExpenseModel) ListExpenses(ctx context.Context, groupID, userID string, period expense.Period) ([]*types.ExpenseResponse, error) {
	if _, err := verifyMember(ctx, em.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return nil, err
	}

	group, err := em.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	from, to := expense.PeriodBounds(period, group.ClosingDay)
	expenses, err := em.expenses.ListExpensesByDateRange(ctx, groupID, from, to)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	ids := make([]string, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}

	shares, err := em.expenses.ListShares(ctx, ids)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	links, err := em.expenses.ListTagIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	sharesByExpense := make(map[string][]types.ExpenseShare)
	for _, share := range shares {
		sharesByExpense[share.ExpenseID] = append(sharesByExpense[share.ExpenseID], share)
	}

	responses := make([]*types.ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = &types.ExpenseResponse{
			Expense: *e,
			Shares:  sharesByExpense[e.ID],
			TagIDs:  links[e.ID],
		}
	}

	return responses, nil
}

// CurrentPeriod resolves the settlement period that is open today for the
// group.
func (em *ExpenseModel) CurrentPeriod(ctx context.Context, groupID, userID string) (expense.Period, int, error) {
	if _, err := verifyMember(ctx, em.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return expense.Period{}, 0, err
	}

	group, err := em.groups.GetGroup(ctx, groupID)
	if err != nil {
		return expense.Period{}, 0, apperrors.NewDatabaseError(err)
	}

	return expense.ResolveCurrentPeriod(em.now(), group.ClosingDay), group.ClosingDay, nil
}

// buildExpense validates the request against the group's roster and returns
// the expense with its computed shares, in roster order.
func (em *ExpenseModel) buildExpense(ctx context.Context, group *types.Group, req *types.CreateExpenseRequest) (*types.Expense, []types.ExpenseShare, error) {
	amount, err := expense.AmountFromFloat(req.Amount)
	if err != nil {
		return nil, nil, asAppError(err)
	}

	input := expense.ExpenseInput{Amount: amount, Date: req.Date, Memo: req.Memo}
	if err := expense.ValidateExpenseInput(input, em.now.today()); err != nil {
		return nil, nil, asAppError(err)
	}

	title, err := expense.ValidateTitle(req.Title)
	if err != nil {
		return nil, nil, asAppError(err)
	}

	members, err := em.groups.ListMembers(ctx, group.ID)
	if err != nil {
		return nil, nil, apperrors.NewDatabaseError(err)
	}
	roster := rosterIDs(members)

	if !contains(roster, req.PayerID) {
		return nil, nil, apperrors.ValidationFailed("支払者はメンバーに含まれている必要があります", "payer_not_member")
	}

	if err := expense.ValidateSplitDetails(req.Split, amount, roster); err != nil {
		return nil, nil, asAppError(err)
	}

	if err := em.verifyCategory(ctx, group.ID, req.CategoryID); err != nil {
		return nil, nil, err
	}
	if err := em.verifyTags(ctx, group.ID, req.TagIDs); err != nil {
		return nil, nil, err
	}

	shareAmounts, err := expense.CalculateSplit(req.Split, amount, roster)
	if err != nil {
		return nil, nil, apperrors.InternalServerError(err.Error())
	}

	shares := make([]types.ExpenseShare, 0, len(roster))
	for _, memberID := range roster {
		shares = append(shares, types.ExpenseShare{UserID: memberID, Amount: shareAmounts[memberID]})
	}

	exp := &types.Expense{
		GroupID:    group.ID,
		PayerID:    req.PayerID,
		CategoryID: req.CategoryID,
		Amount:     amount,
		Date:       req.Date,
		Title:      title,
		Memo:       req.Memo,
		Split:      req.Split,
	}

	return exp, shares, nil
}

func (em *ExpenseModel) verifyCategory(ctx context.Context, groupID, categoryID string) error {
	category, err := em.categories.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Category", categoryID)
		}
		return apperrors.NewDatabaseError(err)
	}
	if category.GroupID != groupID {
		return apperrors.NotFound("Category", categoryID)
	}
	return nil
}

func (em *ExpenseModel) verifyTags(ctx context.Context, groupID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	if len(tagIDs) > types.MaxTagsPerExpense {
		return apperrors.ValidationFailed("タグは1つの支出に10個までです", "too_many_tags")
	}

	tags, err := em.tags.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	if len(tags) != len(tagIDs) {
		return apperrors.NotFound("Tag", tagIDs)
	}
	for _, tag := range tags {
		if tag.GroupID != groupID {
			return apperrors.NotFound("Tag", tag.ID)
		}
	}
	return nil
}

// ensurePeriodOpen rejects the write when the settlement period containing
// the date has already been confirmed.
func (em *ExpenseModel) ensurePeriodOpen(ctx context.Context, group *types.Group, date string) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return apperrors.ValidationFailed("日付の形式が正しくありません", "date_format")
	}

	period := expense.ResolveCurrentPeriod(day, group.ClosingDay)
	_, err = em.settlements.GetSettlement(ctx, group.ID, period.Year, period.Month)
	if err == nil {
		return apperrors.SettledPeriod(period.Key())
	}
	if !errors.Is(err, store.ErrNotFound) {
		return apperrors.NewDatabaseError(err)
	}

	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// getGroupExpense fetches an expense and checks it belongs to the group.
func (em *ExpenseModel) getGroupExpense(ctx context.Context, groupID, expenseID string) (*types.Expense, error) {
	exp, err := em.expenses.GetExpense(ctx, expenseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Expense", expenseID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	if exp.GroupID != groupID {
		return nil, apperrors.NotFound("Expense", expenseID)
	}
	return exp, nil
}
