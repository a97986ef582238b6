// Package store defines the persistence interfaces consumed by the model
// layer. Implementations live in the postgres subpackage.
package store

import (
	"context"

	"github.com/nakayamaryo0731/oaiko/types"
)

// Transaction represents a database transaction that can be committed or
// rolled back.
type Transaction interface {
	Commit() error
	Rollback() error
}

// GroupStore handles group and membership data operations.
type GroupStore interface {
	CreateGroup(ctx context.Context, group *types.Group) (string, error)
	GetGroup(ctx context.Context, id string) (*types.Group, error)
	UpdateClosingDay(ctx context.Context, groupID string, closingDay int) error
	ListGroupsForUser(ctx context.Context, userID string) ([]*types.GroupSummary, error)
	AddMember(ctx context.Context, member *types.GroupMember) error
	GetMember(ctx context.Context, groupID, userID string) (*types.GroupMember, error)
	ListMembers(ctx context.Context, groupID string) ([]*types.GroupMember, error)
}

// CategoryStore handles expense category data operations.
type CategoryStore interface {
	CreateCategories(ctx context.Context, categories []*types.Category) error
	GetCategory(ctx context.Context, id string) (*types.Category, error)
	ListCategories(ctx context.Context, groupID string) ([]*types.Category, error)
}

// TagStore handles tag data operations.
type TagStore interface {
	CreateTag(ctx context.Context, tag *types.Tag) (string, error)
	GetTagsByIDs(ctx context.Context, ids []string) ([]*types.Tag, error)
	ListTags(ctx context.Context, groupID string) ([]*types.Tag, error)
	CountTags(ctx context.Context, groupID string) (int, error)
	TouchTags(ctx context.Context, ids []string) error
	DeleteTag(ctx context.Context, id string) error
}

// ExpenseStore handles expense data operations, including the materialized
// per-member shares and tag links written alongside each expense.
type ExpenseStore interface {
	BeginTx(ctx context.Context) (Transaction, error)
	CreateExpense(ctx context.Context, expense *types.Expense, shares []types.ExpenseShare, tagIDs []string) (string, error)
	GetExpense(ctx context.Context, id string) (*types.Expense, error)
	UpdateExpense(ctx context.Context, expense *types.Expense, shares []types.ExpenseShare, tagIDs []string) error
	DeleteExpense(ctx context.Context, id string) error
	ListExpensesByDateRange(ctx context.Context, groupID, from, to string) ([]*types.Expense, error)
	ListShares(ctx context.Context, expenseIDs []string) ([]types.ExpenseShare, error)
	ListTagIDs(ctx context.Context, expenseIDs []string) (map[string][]string, error)
}

// InvitationStore handles group invitation data operations.
type InvitationStore interface {
	CreateInvitation(ctx context.Context, inv *types.GroupInvitation) (string, error)
	GetInvitationByToken(ctx context.Context, token string) (*types.GroupInvitation, error)
	MarkInvitationUsed(ctx context.Context, id, usedBy string) error
}

// SettlementStore handles confirmed settlement snapshots.
type SettlementStore interface {
	CreateSettlement(ctx context.Context, settlement *types.Settlement) (string, error)
	GetSettlement(ctx context.Context, groupID string, year, month int) (*types.Settlement, error)
	ListSettlements(ctx context.Context, groupID string) ([]*types.Settlement, error)
}
