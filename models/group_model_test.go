package models

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nakayamaryo0731/oaiko/errors"
	"github.com/nakayamaryo0731/oaiko/internal/store"
	"github.com/nakayamaryo0731/oaiko/internal/store/mocks"
	"github.com/nakayamaryo0731/oaiko/types"
)

func newGroupModel() (*GroupModel, *mocks.GroupStore, *mocks.CategoryStore, *mocks.InvitationStore) {
	groups := new(mocks.GroupStore)
	categories := new(mocks.CategoryStore)
	invitations := new(mocks.InvitationStore)
	model := NewGroupModel(groups, categories, invitations, 168*time.Hour, fixedNow)
	return model, groups, categories, invitations
}

func TestGroupModel_CreateGroup(t *testing.T) {
	ctx := context.Background()
	model, groups, categories, _ := newGroupModel()

	groups.On("CreateGroup", mock.Anything, mock.Anything).Return("group-1", nil)
	groups.On("AddMember", mock.Anything, mock.MatchedBy(func(m *types.GroupMember) bool {
		return m.GroupID == "group-1" && m.UserID == "user-a" && m.Role == types.MemberRoleOwner
	})).Return(nil)
	categories.On("CreateCategories", mock.Anything, mock.MatchedBy(func(cs []*types.Category) bool {
		return len(cs) == len(types.PresetCategories) && cs[0].Name == "食費" && cs[0].IsPreset
	})).Return(nil)

	group, err := model.CreateGroup(ctx, "user-a", &types.CreateGroupRequest{Name: "  ふたり暮らし "})
	require.NoError(t, err)
	assert.Equal(t, "group-1", group.ID)
	assert.Equal(t, "ふたり暮らし", group.Name)
	assert.Equal(t, types.DefaultClosingDay, group.ClosingDay)

	groups.AssertExpectations(t)
	categories.AssertExpectations(t)
}

func TestGroupModel_CreateGroup_EmptyName(t *testing.T) {
	model, _, _, _ := newGroupModel()

	_, err := model.CreateGroup(context.Background(), "user-a", &types.CreateGroupRequest{Name: "   "})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ValidationError, appErr.Type)
}

func TestGroupModel_UpdateClosingDay(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		role       types.MemberRole
		closingDay int
		wantType   apperrors.ErrorType
	}{
		{name: "owner sets valid day", role: types.MemberRoleOwner, closingDay: 15},
		{name: "day out of range", role: types.MemberRoleOwner, closingDay: 29, wantType: apperrors.ValidationError},
		{name: "member forbidden", role: types.MemberRoleMember, closingDay: 15, wantType: apperrors.GroupAccessError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, groups, _, _ := newGroupModel()

			groups.On("GetMember", mock.Anything, "group-1", "user-a").
				Return(membership("group-1", "user-a", tt.role), nil)
			groups.On("UpdateClosingDay", mock.Anything, "group-1", tt.closingDay).Return(nil)

			err := model.UpdateClosingDay(ctx, "group-1", "user-a", tt.closingDay)

			if tt.wantType == "" {
				require.NoError(t, err)
				return
			}
			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantType, appErr.Type)
		})
	}
}

func TestGroupModel_AcceptInvitation(t *testing.T) {
	ctx := context.Background()
	expires := fixedNow().Add(24 * time.Hour)

	valid := func() *types.GroupInvitation {
		return &types.GroupInvitation{
			ID:        "inv-1",
			GroupID:   "group-1",
			Token:     "token-1",
			CreatedBy: "user-a",
			ExpiresAt: expires,
		}
	}

	t.Run("joins as member", func(t *testing.T) {
		model, groups, _, invitations := newGroupModel()

		invitations.On("GetInvitationByToken", mock.Anything, "token-1").Return(valid(), nil)
		groups.On("AddMember", mock.Anything, mock.MatchedBy(func(m *types.GroupMember) bool {
			return m.UserID == "user-b" && m.Role == types.MemberRoleMember
		})).Return(nil)
		invitations.On("MarkInvitationUsed", mock.Anything, "inv-1", "user-b").Return(nil)

		result, err := model.AcceptInvitation(ctx, "token-1", "user-b")
		require.NoError(t, err)
		assert.Equal(t, "group-1", result.GroupID)
		assert.False(t, result.AlreadyMember)
	})

	t.Run("already a member is not an error", func(t *testing.T) {
		model, groups, _, invitations := newGroupModel()

		invitations.On("GetInvitationByToken", mock.Anything, "token-1").Return(valid(), nil)
		groups.On("AddMember", mock.Anything, mock.Anything).Return(store.ErrConflict)
		invitations.On("MarkInvitationUsed", mock.Anything, "inv-1", "user-b").Return(nil)

		result, err := model.AcceptInvitation(ctx, "token-1", "user-b")
		require.NoError(t, err)
		assert.True(t, result.AlreadyMember)
	})

	t.Run("unknown token", func(t *testing.T) {
		model, _, _, invitations := newGroupModel()

		invitations.On("GetInvitationByToken", mock.Anything, "nope").Return(nil, store.ErrNotFound)

		_, err := model.AcceptInvitation(ctx, "nope", "user-b")

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, types.InvitationErrorInvalidToken, appErr.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		model, _, _, invitations := newGroupModel()

		inv := valid()
		inv.ExpiresAt = fixedNow().Add(-time.Minute)
		invitations.On("GetInvitationByToken", mock.Anything, "token-1").Return(inv, nil)

		_, err := model.AcceptInvitation(ctx, "token-1", "user-b")

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, types.InvitationErrorExpired, appErr.Code)
	})

	t.Run("used token", func(t *testing.T) {
		model, _, _, invitations := newGroupModel()

		usedAt := fixedNow().Add(-time.Hour)
		inv := valid()
		inv.UsedAt = &usedAt
		invitations.On("GetInvitationByToken", mock.Anything, "token-1").Return(inv, nil)

		_, err := model.AcceptInvitation(ctx, "token-1", "user-b")

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, types.InvitationErrorAlreadyUsed, appErr.Code)
	})
}

func TestGroupModel_CreateInvitation(t *testing.T) {
	ctx := context.Background()
	model, groups, _, invitations := newGroupModel()

	groups.On("GetMember", mock.Anything, "group-1", "user-a").
		Return(membership("group-1", "user-a", types.MemberRoleMember), nil)
	invitations.On("CreateInvitation", mock.Anything, mock.MatchedBy(func(inv *types.GroupInvitation) bool {
		return inv.GroupID == "group-1" && inv.Token != "" &&
			inv.ExpiresAt.Equal(fixedNow().Add(168*time.Hour))
	})).Return("inv-1", nil)

	inv, err := model.CreateInvitation(ctx, "group-1", "user-a")
	require.NoError(t, err)
	assert.Equal(t, "inv-1", inv.ID)
	assert.NotEmpty(t, inv.Token)
}
