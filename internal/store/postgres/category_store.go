package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nakayamaryo0731/oaiko/internal/store"
	"github.com/nakayamaryo0731/oaiko/types"
)

// CategoryStore implements store.CategoryStore using PostgreSQL.
type CategoryStore struct {
	pool db
}

// NewCategoryStore creates a new CategoryStore instance.
func NewCategoryStore(pool *pgxpool.Pool) *CategoryStore {
	return &CategoryStore{pool: pool}
}

// CreateCategories inserts categories in a single batch. Used when seeding a
// new group with its preset categories.
func (s *CategoryStore) CreateCategories(ctx context.Context, categories []*types.Category) error {
	query := `
		INSERT INTO categories (group_id, name, icon, is_preset, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	batch := &pgx.Batch{}
	for _, c := range categories {
		batch.Queue(query, c.GroupID, c.Name, c.Icon, c.IsPreset, c.SortOrder)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	for _, c := range categories {
		if err := results.QueryRow().Scan(&c.ID); err != nil {
			return err
		}
	}

	return nil
}

// GetCategory retrieves a category by its ID.
func (s *CategoryStore) GetCategory(ctx context.Context, id string) (*types.Category, error) {
	query := `
		SELECT id, group_id, name, icon, is_preset, sort_order, created_at
		FROM categories
		WHERE id = $1`

	category := &types.Category{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.GroupID,
		&category.Name,
		&category.Icon,
		&category.IsPreset,
		&category.SortOrder,
		&category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	return category, nil
}

// ListCategories retrieves all categories of a group in display order.
func (s *CategoryStore) ListCategories(ctx context.Context, groupID string) ([]*types.Category, error) {
	query := `
		SELECT id, group_id, name, icon, is_preset, sort_order, created_at
		FROM categories
		WHERE group_id = $1
		ORDER BY sort_order ASC, created_at ASC`

	rows, err := s.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*types.Category
	for rows.Next() {
		category := &types.Category{}
		err := rows.Scan(
			&category.ID,
			&category.GroupID,
			&category.Name,
			&category.Icon,
			&category.IsPreset,
			&category.SortOrder,
			&category.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}
