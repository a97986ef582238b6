package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nakayamaryo0731/oaiko/internal/store"
	"github.com/nakayamaryo0731/oaiko/types"
)

func setupMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestGroupStore_GetGroup(t *testing.T) {
	mock := setupMockPool(t)
	s := &GroupStore{pool: mock}
	ctx := context.Background()

	id := uuid.NewString()
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "name", "description", "closing_day", "created_at", "updated_at"}).
			AddRow(id, "ハウスシェア", "", 25, now, now)

		mock.ExpectQuery("SELECT id, name, description, closing_day, created_at, updated_at FROM groups").
			WithArgs(id).
			WillReturnRows(rows)

		group, err := s.GetGroup(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "ハウスシェア", group.Name)
		assert.Equal(t, 25, group.ClosingDay)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, description, closing_day, created_at, updated_at FROM groups").
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "closing_day", "created_at", "updated_at"}))

		_, err := s.GetGroup(ctx, id)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupStore_UpdateClosingDay(t *testing.T) {
	mock := setupMockPool(t)
	s := &GroupStore{pool: mock}
	ctx := context.Background()

	id := uuid.NewString()

	t.Run("updated", func(t *testing.T) {
		mock.ExpectExec("UPDATE groups SET closing_day").
			WithArgs(15, id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, s.UpdateClosingDay(ctx, id, 15))
	})

	t.Run("missing group", func(t *testing.T) {
		mock.ExpectExec("UPDATE groups SET closing_day").
			WithArgs(15, id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, s.UpdateClosingDay(ctx, id, 15), store.ErrNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("UPDATE groups SET closing_day").
			WithArgs(15, id).
			WillReturnError(errors.New("connection refused"))

		assert.Error(t, s.UpdateClosingDay(ctx, id, 15))
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupStore_AddMember(t *testing.T) {
	mock := setupMockPool(t)
	s := &GroupStore{pool: mock}
	ctx := context.Background()

	member := &types.GroupMember{
		GroupID: uuid.NewString(),
		UserID:  uuid.NewString(),
		Role:    types.MemberRoleMember,
	}

	t.Run("added", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO group_members").
			WithArgs(member.GroupID, member.UserID, member.Role).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, s.AddMember(ctx, member))
	})

	t.Run("already a member", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO group_members").
			WithArgs(member.GroupID, member.UserID, member.Role).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		assert.ErrorIs(t, s.AddMember(ctx, member), store.ErrConflict)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupStore_ListMembers(t *testing.T) {
	mock := setupMockPool(t)
	s := &GroupStore{pool: mock}
	ctx := context.Background()

	groupID := uuid.NewString()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"group_id", "user_id", "role", "joined_at"}).
		AddRow(groupID, "user-a", types.MemberRoleOwner, now.Add(-time.Hour)).
		AddRow(groupID, "user-b", types.MemberRoleMember, now)

	mock.ExpectQuery("SELECT group_id, user_id, role, joined_at FROM group_members").
		WithArgs(groupID).
		WillReturnRows(rows)

	members, err := s.ListMembers(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "user-a", members[0].UserID)
	assert.Equal(t, types.MemberRoleOwner, members[0].Role)

	require.NoError(t, mock.ExpectationsWereMet())
}
