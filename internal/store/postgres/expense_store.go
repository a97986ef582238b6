package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nakayamaryo0731/oaiko/internal/store"
	"github.com/nakayamaryo0731/oaiko/types"
)

// ExpenseStore implements store.ExpenseStore using PostgreSQL. Split details
// are persisted as JSONB alongside the scalar columns; per-member shares and
// tag links are materialized into their own tables in the same transaction.
type ExpenseStore struct {
	pool db
	tx   pgx.Tx
}

// NewExpenseStore creates a new ExpenseStore instance.
func NewExpenseStore(pool *pgxpool.Pool) *ExpenseStore {
	return &ExpenseStore{pool: pool}
}

// BeginTx starts a new database transaction.
func (s *ExpenseStore) BeginTx(ctx context.Context) (store.Transaction, error) {
	if s.tx != nil {
		return nil, errors.New("transaction already started")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	s.tx = tx
	return &Transaction{tx: tx}, nil
}

// CreateExpense inserts an expense with its shares and tag links and returns
// the generated ID. All rows are written in one transaction.
func (s *ExpenseStore) CreateExpense(ctx context.Context, expense *types.Expense, shares []types.ExpenseShare, tagIDs []string) (string, error) {
	split, err := json.Marshal(expense.Split)
	if err != nil {
		return "", err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO expenses (group_id, payer_id, category_id, amount, date, title, memo, split_details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id string
	err = tx.QueryRow(ctx, query,
		expense.GroupID,
		expense.PayerID,
		expense.CategoryID,
		expense.Amount,
		expense.Date,
		expense.Title,
		expense.Memo,
		split,
	).Scan(&id)
	if err != nil {
		return "", err
	}

	if err = insertShares(ctx, tx, id, shares); err != nil {
		return "", err
	}
	if err = insertTagLinks(ctx, tx, id, tagIDs); err != nil {
		return "", err
	}

	if err = tx.Commit(ctx); err != nil {
		return "", err
	}

	return id, nil
}

// GetExpense retrieves an expense by its ID.
func (s *ExpenseStore) GetExpense(ctx context.Context, id string) (*types.Expense, error) {
	query := `
		SELECT id, group_id, payer_id, category_id, amount, date, title, memo, split_details, created_at, updated_at
		FROM expenses
		WHERE id = $1`

	expense := &types.Expense{}
	var split []byte
	err := s.queryRow(ctx, query, id).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.CategoryID,
		&expense.Amount,
		&expense.Date,
		&expense.Title,
		&expense.Memo,
		&split,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	if err = json.Unmarshal(split, &expense.Split); err != nil {
		return nil, err
	}

	return expense, nil
}

// UpdateExpense replaces an expense and rebuilds its shares and tag links.
func (s *ExpenseStore) UpdateExpense(ctx context.Context, expense *types.Expense, shares []types.ExpenseShare, tagIDs []string) error {
	split, err := json.Marshal(expense.Split)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE expenses
		SET payer_id = $1,
			category_id = $2,
			amount = $3,
			date = $4,
			title = $5,
			memo = $6,
			split_details = $7,
			updated_at = NOW()
		WHERE id = $8`

	result, err := tx.Exec(ctx, query,
		expense.PayerID,
		expense.CategoryID,
		expense.Amount,
		expense.Date,
		expense.Title,
		expense.Memo,
		split,
		expense.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	if _, err = tx.Exec(ctx, `DELETE FROM expense_shares WHERE expense_id = $1`, expense.ID); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `DELETE FROM expense_tags WHERE expense_id = $1`, expense.ID); err != nil {
		return err
	}

	if err = insertShares(ctx, tx, expense.ID, shares); err != nil {
		return err
	}
	if err = insertTagLinks(ctx, tx, expense.ID, tagIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// DeleteExpense removes an expense. Shares and tag links go with it by
// cascade.
func (s *ExpenseStore) DeleteExpense(ctx context.Context, id string) error {
	result, err := s.exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}

// ListExpensesByDateRange retrieves a group's expenses with from <= date <= to,
// newest date first. Dates are canonical YYYY-MM-DD strings, so the range
// comparison is lexicographic.
func (s *ExpenseStore) ListExpensesByDateRange(ctx context.Context, groupID, from, to string) ([]*types.Expense, error) {
	query := `
		SELECT id, group_id, payer_id, category_id, amount, date, title, memo, split_details, created_at, updated_at
		FROM expenses
		WHERE group_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC, created_at DESC`

	rows, err := s.query(ctx, query, groupID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*types.Expense
	for rows.Next() {
		expense := &types.Expense{}
		var split []byte
		err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.CategoryID,
			&expense.Amount,
			&expense.Date,
			&expense.Title,
			&expense.Memo,
			&split,
			&expense.CreatedAt,
			&expense.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err = json.Unmarshal(split, &expense.Split); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}

// ListShares retrieves the materialized shares for the given expenses.
func (s *ExpenseStore) ListShares(ctx context.Context, expenseIDs []string) ([]types.ExpenseShare, error) {
	if len(expenseIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT expense_id, user_id, amount
		FROM expense_shares
		WHERE expense_id = ANY($1)
		ORDER BY expense_id, user_id`

	rows, err := s.query(ctx, query, expenseIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []types.ExpenseShare
	for rows.Next() {
		var share types.ExpenseShare
		if err := rows.Scan(&share.ExpenseID, &share.UserID, &share.Amount); err != nil {
			return nil, err
		}
		shares = append(shares, share)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shares, nil
}

// ListTagIDs retrieves the tag links for the given expenses, keyed by expense.
func (s *ExpenseStore) ListTagIDs(ctx context.Context, expenseIDs []string) (map[string][]string, error) {
	if len(expenseIDs) == 0 {
		return map[string][]string{}, nil
	}

	query := `
		SELECT expense_id, tag_id
		FROM expense_tags
		WHERE expense_id = ANY($1)
		ORDER BY expense_id, tag_id`

	rows, err := s.query(ctx, query, expenseIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make(map[string][]string)
	for rows.Next() {
		var expenseID, tagID string
		if err := rows.Scan(&expenseID, &tagID); err != nil {
			return nil, err
		}
		links[expenseID] = append(links[expenseID], tagID)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return links, nil
}

func insertShares(ctx context.Context, tx pgx.Tx, expenseID string, shares []types.ExpenseShare) error {
	for _, share := range shares {
		_, err := tx.Exec(ctx,
			`INSERT INTO expense_shares (expense_id, user_id, amount) VALUES ($1, $2, $3)`,
			expenseID, share.UserID, share.Amount,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func insertTagLinks(ctx context.Context, tx pgx.Tx, expenseID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO expense_tags (expense_id, tag_id) VALUES ($1, $2)`,
			expenseID, tagID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Helper methods for database operations

func (s *ExpenseStore) queryRow(ctx context.Context, query string, args ...interface{}) pgx.Row {
	if s.tx != nil {
		return s.tx.QueryRow(ctx, query, args...)
	}
	return s.pool.QueryRow(ctx, query, args...)
}

func (s *ExpenseStore) query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error) {
	if s.tx != nil {
		return s.tx.Query(ctx, query, args...)
	}
	return s.pool.Query(ctx, query, args...)
}

func (s *ExpenseStore) exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error) {
	if s.tx != nil {
		return s.tx.Exec(ctx, query, args...)
	}
	return s.pool.Exec(ctx, query, args...)
}

// Transaction wraps a pgx.Tx to implement store.Transaction
type Transaction struct {
	tx pgx.Tx
}

func (t *Transaction) Commit() error {
	return t.tx.Commit(context.Background())
}

func (t *Transaction) Rollback() error {
	return t.tx.Rollback(context.Background())
}
