package models

import (
	"context"
	"errors"

	apperrors "github.com/nakayamaryo0731/oaiko/errors"
	"github.com/nakayamaryo0731/oaiko/internal/expense"
	"github.com/nakayamaryo0731/oaiko/internal/store"
	"github.com/nakayamaryo0731/oaiko/logger"
	"github.com/nakayamaryo0731/oaiko/types"
)

// SettlementModel computes per-period balances and transfer suggestions, and
// records confirmed settlement snapshots.
type SettlementModel struct {
	expenses    store.ExpenseStore
	groups      store.GroupStore
	settlements store.SettlementStore
	now         Clock
}

// NewSettlementModel creates a new SettlementModel.
func NewSettlementModel(expenses store.ExpenseStore, groups store.GroupStore, settlements store.SettlementStore, now Clock) *SettlementModel {
	return &SettlementModel{
		expenses:    expenses,
		groups:      groups,
		settlements: settlements,
		now:         now,
	}
}

// GetSummary computes the settlement view of one period: total, per-member
// balances, and suggested transfers.
func (sm *SettlementModel) GetSummary(ctx context.Context, groupID, userID string, period expense.Period) (*types.SettlementSummary, error) {
	if _, err := verifyMember(ctx, sm.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return nil, err
	}

	expenses, shares, roster, err := sm.loadPeriod(ctx, groupID, period)
	if err != nil {
		return nil, err
	}

	balances := expense.ComputeBalances(expenses, shares, roster)
	transfers := expense.SuggestTransfers(balances)

	var total int64
	for _, e := range expenses {
		total += e.Amount
	}

	return &types.SettlementSummary{
		Year:        period.Year,
		Month:       period.Month,
		TotalAmount: total,
		Balances:    balances,
		Transfers:   transfers,
	}, nil
}

// ConfirmSettlement freezes a period. Owner only; a second confirmation of
// the same period is rejected.
func (sm *SettlementModel) ConfirmSettlement(ctx context.Context, groupID, userID string, period expense.Period) (*types.Settlement, error) {
	log := logger.GetLogger()

	if _, err := verifyMember(ctx, sm.groups, groupID, userID, types.MemberRoleOwner); err != nil {
		return nil, err
	}

	expenses, _, _, err := sm.loadPeriod(ctx, groupID, period)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, e := range expenses {
		total += e.Amount
	}

	settlement := &types.Settlement{
		GroupID:     groupID,
		Year:        period.Year,
		Month:       period.Month,
		TotalAmount: total,
		ConfirmedBy: userID,
	}

	id, err := sm.settlements.CreateSettlement(ctx, settlement)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, apperrors.SettledPeriod(period.Key())
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	settlement.ID = id
	settlement.ConfirmedAt = sm.now()

	log.Infow("Settlement confirmed", "groupId", groupID, "period", period.Key(), "total", total)

	return settlement, nil
}

// ListSettlements retrieves the group's confirmed settlements, newest first.
func (sm *SettlementModel) ListSettlements(ctx context.Context, groupID, userID string) ([]*types.Settlement, error) {
	if _, err := verifyMember(ctx, sm.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return nil, err
	}

	settlements, err := sm.settlements.ListSettlements(ctx, groupID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return settlements, nil
}

// loadPeriod fetches the period's expenses, their shares, and the roster.
func (sm *SettlementModel) loadPeriod(ctx context.Context, groupID string, period expense.Period) ([]types.Expense, []types.ExpenseShare, []string, error) {
	group, err := sm.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, nil, apperrors.NewDatabaseError(err)
	}

	from, to := expense.PeriodBounds(period, group.ClosingDay)
	rows, err := sm.expenses.ListExpensesByDateRange(ctx, groupID, from, to)
	if err != nil {
		return nil, nil, nil, apperrors.NewDatabaseError(err)
	}

	expenses := make([]types.Expense, len(rows))
	ids := make([]string, len(rows))
	for i, e := range rows {
		expenses[i] = *e
		ids[i] = e.ID
	}

	shares, err := sm.expenses.ListShares(ctx, ids)
	if err != nil {
		return nil, nil, nil, apperrors.NewDatabaseError(err)
	}

	members, err := sm.groups.ListMembers(ctx, groupID)
	if err != nil {
		return nil, nil, nil, apperrors.NewDatabaseError(err)
	}

	return expenses, shares, rosterIDs(members), nil
}
