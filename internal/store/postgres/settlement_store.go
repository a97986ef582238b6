package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nakayamaryo0731/oaiko/internal/store"
	"github.com/nakayamaryo0731/oaiko/types"
)

// SettlementStore implements store.SettlementStore using PostgreSQL.
type SettlementStore struct {
	pool db
}

// NewSettlementStore creates a new SettlementStore instance.
func NewSettlementStore(pool *pgxpool.Pool) *SettlementStore {
	return &SettlementStore{pool: pool}
}

// CreateSettlement records a confirmed settlement snapshot and returns its
// generated ID. The unique constraint on (group_id, year, month) makes a
// second confirmation of the same period a store.ErrConflict.
func (s *SettlementStore) CreateSettlement(ctx context.Context, settlement *types.Settlement) (string, error) {
	query := `
		INSERT INTO settlements (group_id, year, month, total_amount, confirmed_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (group_id, year, month) DO NOTHING
		RETURNING id`

	rows, err := s.pool.Query(ctx, query,
		settlement.GroupID,
		settlement.Year,
		settlement.Month,
		settlement.TotalAmount,
		settlement.ConfirmedBy,
	)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return "", err
		}
		return "", store.ErrConflict
	}

	var id string
	if err = rows.Scan(&id); err != nil {
		return "", err
	}

	return id, nil
}

// GetSettlement retrieves the confirmed settlement for a period, if any.
func (s *SettlementStore) GetSettlement(ctx context.Context, groupID string, year, month int) (*types.Settlement, error) {
	query := `
		SELECT id, group_id, year, month, total_amount, confirmed_by, confirmed_at
		FROM settlements
		WHERE group_id = $1 AND year = $2 AND month = $3`

	settlement := &types.Settlement{}
	err := s.pool.QueryRow(ctx, query, groupID, year, month).Scan(
		&settlement.ID,
		&settlement.GroupID,
		&settlement.Year,
		&settlement.Month,
		&settlement.TotalAmount,
		&settlement.ConfirmedBy,
		&settlement.ConfirmedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	return settlement, nil
}

// ListSettlements retrieves a group's confirmed settlements, newest period
// first.
func (s *SettlementStore) ListSettlements(ctx context.Context, groupID string) ([]*types.Settlement, error) {
	query := `
		SELECT id, group_id, year, month, total_amount, confirmed_by, confirmed_at
		FROM settlements
		WHERE group_id = $1
		ORDER BY year DESC, month DESC`

	rows, err := s.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settlements []*types.Settlement
	for rows.Next() {
		settlement := &types.Settlement{}
		err := rows.Scan(
			&settlement.ID,
			&settlement.GroupID,
			&settlement.Year,
			&settlement.Month,
			&settlement.TotalAmount,
			&settlement.ConfirmedBy,
			&settlement.ConfirmedAt,
		)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, settlement)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return settlements, nil
}
