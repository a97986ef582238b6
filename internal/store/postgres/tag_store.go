package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nakayamaryo0731/oaiko/internal/store"
	"github.com/nakayamaryo0731/oaiko/types"
)

// TagStore implements store.TagStore using PostgreSQL.
type TagStore struct {
	pool db
}

// NewTagStore creates a new TagStore instance.
func NewTagStore(pool *pgxpool.Pool) *TagStore {
	return &TagStore{pool: pool}
}

// CreateTag inserts a tag and returns its generated ID. A duplicate name
// within the group maps to store.ErrConflict via the unique constraint.
func (s *TagStore) CreateTag(ctx context.Context, tag *types.Tag) (string, error) {
	query := `
		INSERT INTO tags (group_id, name, color)
		VALUES ($1, $2, $3)
		ON CONFLICT (group_id, name) DO NOTHING
		RETURNING id`

	rows, err := s.pool.Query(ctx, query, tag.GroupID, tag.Name, tag.Color)
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

// GetTagsByIDs retrieves the given tags. Missing IDs are silently skipped;
// callers compare lengths when existence matters.
func (s *TagStore) GetTagsByIDs(ctx context.Context, ids []string) ([]*types.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, group_id, name, color, last_used_at, created_at, updated_at
		FROM tags
		WHERE id = ANY($1)`

	rows, err := s.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTags(rows)
}

// ListTags retrieves all tags of a group, most recently used first.
func (s *TagStore) ListTags(ctx context.Context, groupID string) ([]*types.Tag, error) {
	query := `
		SELECT id, group_id, name, color, last_used_at, created_at, updated_at
		FROM tags
		WHERE group_id = $1
		ORDER BY last_used_at DESC NULLS LAST, created_at DESC`

	rows, err := s.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTags(rows)
}

// CountTags returns the number of tags in a group.
func (s *TagStore) CountTags(ctx context.Context, groupID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tags WHERE group_id = $1`, groupID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// TouchTags records that the given tags were just attached to an expense.
func (s *TagStore) TouchTags(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := s.pool.Exec(ctx,
		`UPDATE tags SET last_used_at = NOW(), updated_at = NOW() WHERE id = ANY($1)`, ids,
	)
	return err
}

// DeleteTag removes a tag. Links from expenses are removed by cascade.
func (s *TagStore) DeleteTag(ctx context.Context, id string) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}

func scanTags(rows pgx.Rows) ([]*types.Tag, error) {
	var tags []*types.Tag
	for rows.Next() {
		tag := &types.Tag{}
		err := rows.Scan(
			&tag.ID,
			&tag.GroupID,
			&tag.Name,
			&tag.Color,
			&tag.LastUsedAt,
			&tag.CreatedAt,
			&tag.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}
