// Package postgres implements the store interfaces on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nakayamaryo0731/oaiko/internal/store"
	"github.com/nakayamaryo0731/oaiko/types"
)

// GroupStore implements store.GroupStore using PostgreSQL.
type GroupStore struct {
	pool db
}

// NewGroupStore creates a new GroupStore instance.
func NewGroupStore(pool *pgxpool.Pool) *GroupStore {
	return &GroupStore{pool: pool}
}

// CreateGroup inserts a group and returns its generated ID.
func (s *GroupStore) CreateGroup(ctx context.Context, group *types.Group) (string, error) {
	query := `
		INSERT INTO groups (name, description, closing_day)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id string
	err := s.pool.QueryRow(ctx, query,
		group.Name,
		group.Description,
		group.ClosingDay,
	).Scan(&id)
	if err != nil {
		return "", err
	}

	return id, nil
}

// GetGroup retrieves a group by its ID.
func (s *GroupStore) GetGroup(ctx context.Context, id string) (*types.Group, error) {
	query := `
		SELECT id, name, description, closing_day, created_at, updated_at
		FROM groups
		WHERE id = $1`

	group := &types.Group{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.ClosingDay,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	return group, nil
}

// UpdateClosingDay changes a group's settlement closing day.
func (s *GroupStore) UpdateClosingDay(ctx context.Context, groupID string, closingDay int) error {
	query := `
		UPDATE groups
		SET closing_day = $1, updated_at = NOW()
		WHERE id = $2`

	result, err := s.pool.Exec(ctx, query, closingDay, groupID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}

// ListGroupsForUser retrieves all groups the user belongs to, newest first,
// each with its member count and the user's own role.
func (s *GroupStore) ListGroupsForUser(ctx context.Context, userID string) ([]*types.GroupSummary, error) {
	query := `
		SELECT g.id, g.name, g.description, g.closing_day, g.created_at, g.updated_at,
			(SELECT COUNT(*) FROM group_members mc WHERE mc.group_id = g.id),
			gm.role, gm.joined_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = $1
		ORDER BY g.created_at DESC`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*types.GroupSummary
	for rows.Next() {
		summary := &types.GroupSummary{}
		err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.Description,
			&summary.ClosingDay,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&summary.MemberCount,
			&summary.MyRole,
			&summary.JoinedAt,
		)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// AddMember links a user to a group with a role.
func (s *GroupStore) AddMember(ctx context.Context, member *types.GroupMember) error {
	query := `
		INSERT INTO group_members (group_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (group_id, user_id) DO NOTHING`

	result, err := s.pool.Exec(ctx, query,
		member.GroupID,
		member.UserID,
		member.Role,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrConflict
	}

	return nil
}

// GetMember retrieves a single membership row.
func (s *GroupStore) GetMember(ctx context.Context, groupID, userID string) (*types.GroupMember, error) {
	query := `
		SELECT group_id, user_id, role, joined_at
		FROM group_members
		WHERE group_id = $1 AND user_id = $2`

	member := &types.GroupMember{}
	err := s.pool.QueryRow(ctx, query, groupID, userID).Scan(
		&member.GroupID,
		&member.UserID,
		&member.Role,
		&member.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	return member, nil
}

// ListMembers retrieves every member of a group in join order. Join order
// doubles as the roster order used by split calculations.
func (s *GroupStore) ListMembers(ctx context.Context, groupID string) ([]*types.GroupMember, error) {
	query := `
		SELECT group_id, user_id, role, joined_at
		FROM group_members
		WHERE group_id = $1
		ORDER BY joined_at ASC, user_id ASC`

	rows, err := s.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*types.GroupMember
	for rows.Next() {
		member := &types.GroupMember{}
		err := rows.Scan(
			&member.GroupID,
			&member.UserID,
			&member.Role,
			&member.JoinedAt,
		)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}
