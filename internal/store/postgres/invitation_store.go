package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nakayamaryo0731/oaiko/internal/store"
	"github.com/nakayamaryo0731/oaiko/types"
)

// InvitationStore implements store.InvitationStore using PostgreSQL.
type InvitationStore struct {
	pool db
}

// NewInvitationStore creates a new InvitationStore instance.
func NewInvitationStore(pool *pgxpool.Pool) *InvitationStore {
	return &InvitationStore{pool: pool}
}

// CreateInvitation inserts an invitation and returns its generated ID.
func (s *InvitationStore) CreateInvitation(ctx context.Context, inv *types.GroupInvitation) (string, error) {
	query := `
		INSERT INTO group_invitations (group_id, token, created_by, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id string
	err := s.pool.QueryRow(ctx, query,
		inv.GroupID,
		inv.Token,
		inv.CreatedBy,
		inv.ExpiresAt,
	).Scan(&id)
	if err != nil {
		return "", err
	}

	return id, nil
}

// GetInvitationByToken retrieves an invitation by its opaque token.
func (s *InvitationStore) GetInvitationByToken(ctx context.Context, token string) (*types.GroupInvitation, error) {
	query := `
		SELECT id, group_id, token, created_by, expires_at, used_at, COALESCE(used_by, ''), created_at
		FROM group_invitations
		WHERE token = $1`

	inv := &types.GroupInvitation{}
	err := s.pool.QueryRow(ctx, query, token).Scan(
		&inv.ID,
		&inv.GroupID,
		&inv.Token,
		&inv.CreatedBy,
		&inv.ExpiresAt,
		&inv.UsedAt,
		&inv.UsedBy,
		&inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	return inv, nil
}

// MarkInvitationUsed consumes an invitation. The used_at guard makes the
// operation idempotent-safe under concurrent accepts: only one caller wins.
func (s *InvitationStore) MarkInvitationUsed(ctx context.Context, id, usedBy string) error {
	query := `
		UPDATE group_invitations
		SET used_at = NOW(), used_by = $1
		WHERE id = $2 AND used_at IS NULL`

	result, err := s.pool.Exec(ctx, query, usedBy, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrConflict
	}

	return nil
}
