package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/nakayamaryo0731/oaiko/errors"
	"github.com/nakayamaryo0731/oaiko/internal/expense"
	"github.com/nakayamaryo0731/oaiko/internal/store"
	"github.com/nakayamaryo0731/oaiko/logger"
	"github.com/nakayamaryo0731/oaiko/types"
)

const maxGroupNameLength = 50

// GroupModel implements group lifecycle, membership, and invitations.
type GroupModel struct {
	groups      store.GroupStore
	categories  store.CategoryStore
	invitations store.InvitationStore
	inviteTTL   time.Duration
	now         Clock
}

// NewGroupModel creates a new GroupModel.
func NewGroupModel(groups store.GroupStore, categories store.CategoryStore, invitations store.InvitationStore, inviteTTL time.Duration, now Clock) *GroupModel {
	return &GroupModel{
		groups:      groups,
		categories:  categories,
		invitations: invitations,
		inviteTTL:   inviteTTL,
		now:         now,
	}
}

// CreateGroup creates a group, makes the creator its owner, and seeds the
// preset categories.
func (gm *GroupModel) CreateGroup(ctx context.Context, userID string, req *types.CreateGroupRequest) (*types.Group, error) {
	log := logger.GetLogger()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.ValidationFailed("グループ名を入力してください", "group_name_required")
	}
	if len([]rune(name)) > maxGroupNameLength {
		return nil, apperrors.ValidationFailed("グループ名は50文字以内で入力してください", "group_name_too_long")
	}

	group := &types.Group{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		ClosingDay:  types.DefaultClosingDay,
	}

	id, err := gm.groups.CreateGroup(ctx, group)
	if err != nil {
		log.Errorw("Failed to create group", "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}
	group.ID = id

	err = gm.groups.AddMember(ctx, &types.GroupMember{
		GroupID: id,
		UserID:  userID,
		Role:    types.MemberRoleOwner,
	})
	if err != nil {
		log.Errorw("Failed to add group owner", "groupId", id, "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}

	presets := make([]*types.Category, len(types.PresetCategories))
	for i, p := range types.PresetCategories {
		presets[i] = &types.Category{
			GroupID:   id,
			Name:      p.Name,
			Icon:      p.Icon,
			IsPreset:  true,
			SortOrder: p.SortOrder,
		}
	}
	if err := gm.categories.CreateCategories(ctx, presets); err != nil {
		log.Errorw("Failed to seed preset categories", "groupId", id, "error", err)
		return nil, apperrors.NewDatabaseError(err)
	}

	return group, nil
}

// GetGroup retrieves a group the user belongs to.
func (gm *GroupModel) GetGroup(ctx context.Context, groupID, userID string) (*types.Group, error) {
	if _, err := verifyMember(ctx, gm.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return nil, err
	}

	group, err := gm.groups.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.GroupNotFound(groupID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	return group, nil
}

// ListGroups retrieves all groups the user belongs to.
func (gm *GroupModel) ListGroups(ctx context.Context, userID string) ([]*types.GroupSummary, error) {
	summaries, err := gm.groups.ListGroupsForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return summaries, nil
}

// UpdateClosingDay changes the group's settlement closing day. Owner only.
func (gm *GroupModel) UpdateClosingDay(ctx context.Context, groupID, userID string, closingDay int) error {
	if _, err := verifyMember(ctx, gm.groups, groupID, userID, types.MemberRoleOwner); err != nil {
		return err
	}

	if err := expense.ValidateClosingDay(closingDay); err != nil {
		return asAppError(err)
	}

	if err := gm.groups.UpdateClosingDay(ctx, groupID, closingDay); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.GroupNotFound(groupID)
		}
		return apperrors.NewDatabaseError(err)
	}

	return nil
}

// ListMembers retrieves the group roster.
func (gm *GroupModel) ListMembers(ctx context.Context, groupID, userID string) ([]*types.GroupMember, error) {
	if _, err := verifyMember(ctx, gm.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return nil, err
	}

	members, err := gm.groups.ListMembers(ctx, groupID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return members, nil
}

// ListCategories retrieves the group's categories in display order.
func (gm *GroupModel) ListCategories(ctx context.Context, groupID, userID string) ([]*types.Category, error) {
	if _, err := verifyMember(ctx, gm.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return nil, err
	}

	categories, err := gm.categories.ListCategories(ctx, groupID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return categories, nil
}

// CreateInvitation issues a single-use invitation token for the group.
func (gm *GroupModel) CreateInvitation(ctx context.Context, groupID, userID string) (*types.GroupInvitation, error) {
	if _, err := verifyMember(ctx, gm.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return nil, err
	}

	inv := &types.GroupInvitation{
		GroupID:   groupID,
		Token:     uuid.NewString(),
		CreatedBy: userID,
		ExpiresAt: gm.now().Add(gm.inviteTTL),
	}

	id, err := gm.invitations.CreateInvitation(ctx, inv)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	inv.ID = id

	return inv, nil
}

// GetInvitationDetails resolves a token into the public invitation view.
// Expired or consumed tokens are reported with their specific code.
func (gm *GroupModel) GetInvitationDetails(ctx context.Context, token string) (*types.InvitationDetails, error) {
	inv, err := gm.lookupInvitation(ctx, token)
	if err != nil {
		return nil, err
	}

	group, err := gm.groups.GetGroup(ctx, inv.GroupID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	members, err := gm.groups.ListMembers(ctx, inv.GroupID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return &types.InvitationDetails{
		GroupID:     group.ID,
		GroupName:   group.Name,
		InvitedBy:   inv.CreatedBy,
		MemberCount: len(members),
		ExpiresAt:   inv.ExpiresAt,
	}, nil
}

// AcceptInvitation joins the caller to the invitation's group as a member and
// consumes the token. Accepting a group the caller already belongs to is not
// an error.
func (gm *GroupModel) AcceptInvitation(ctx context.Context, token, userID string) (*types.AcceptInvitationResult, error) {
	log := logger.GetLogger()

	inv, err := gm.lookupInvitation(ctx, token)
	if err != nil {
		return nil, err
	}

	alreadyMember := false
	err = gm.groups.AddMember(ctx, &types.GroupMember{
		GroupID: inv.GroupID,
		UserID:  userID,
		Role:    types.MemberRoleMember,
	})
	if err != nil {
		if !errors.Is(err, store.ErrConflict) {
			return nil, apperrors.NewDatabaseError(err)
		}
		alreadyMember = true
	}

	if err := gm.invitations.MarkInvitationUsed(ctx, inv.ID, userID); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Lost the race to another accept of the same token.
			return nil, apperrors.InvitationFailed(types.InvitationErrorAlreadyUsed, "この招待リンクは使用済みです")
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	log.Infow("Invitation accepted", "groupId", inv.GroupID, "alreadyMember", alreadyMember)

	return &types.AcceptInvitationResult{
		GroupID:       inv.GroupID,
		AlreadyMember: alreadyMember,
	}, nil
}

func (gm *GroupModel) lookupInvitation(ctx context.Context, token string) (*types.GroupInvitation, error) {
	inv, err := gm.invitations.GetInvitationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.InvitationFailed(types.InvitationErrorInvalidToken, "無効な招待リンクです")
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	if inv.Used() {
		return nil, apperrors.InvitationFailed(types.InvitationErrorAlreadyUsed, "この招待リンクは使用済みです")
	}
	if inv.Expired(gm.now()) {
		return nil, apperrors.InvitationFailed(types.InvitationErrorExpired, "この招待リンクは有効期限切れです")
	}
	return inv, nil
}
