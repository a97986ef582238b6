package models

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"unicode/utf8"

	apperrors "github.com/nakayamaryo0731/oaiko/errors"
	"github.com/nakayamaryo0731/oaiko/internal/store"
	"github.com/nakayamaryo0731/oaiko/types"
)

// TagModel implements tag lifecycle within a group.
type TagModel struct {
	tags   store.TagStore
	groups store.GroupStore
}

// NewTagModel creates a new TagModel.
func NewTagModel(tags store.TagStore, groups store.GroupStore) *TagModel {
	return &TagModel{tags: tags, groups: groups}
}

// CreateTag creates a tag in the group. When no color is given one is drawn
// at random from the palette.
func (tm *TagModel) CreateTag(ctx context.Context, groupID, userID string, req *types.CreateTagRequest) (*types.Tag, error) {
	if _, err := verifyMember(ctx, tm.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	length := utf8.RuneCountInString(name)
	if length < types.MinTagNameLength || length > types.MaxTagNameLength {
		return nil, apperrors.ValidationFailed("タグ名は1〜20文字で入力してください", "tag_name_length")
	}

	color := req.Color
	if color == "" {
		color = types.TagColors[rand.Intn(len(types.TagColors))]
	} else if !types.IsValidTagColor(color) {
		return nil, apperrors.ValidationFailed("無効なタグカラーです", "tag_color_invalid")
	}

	count, err := tm.tags.CountTags(ctx, groupID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if count >= types.MaxTagsPerGroup {
		return nil, apperrors.ValidationFailed("タグは1グループに50個までです", "tag_limit_reached")
	}

	tag := &types.Tag{GroupID: groupID, Name: name, Color: color}
	id, err := tm.tags.CreateTag(ctx, tag)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, apperrors.ValidationFailed("同じ名前のタグが既に存在します", "tag_name_duplicate")
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	tag.ID = id

	return tag, nil
}

// ListTags retrieves the group's tags, most recently used first.
func (tm *TagModel) ListTags(ctx context.Context, groupID, userID string) ([]*types.Tag, error) {
	if _, err := verifyMember(ctx, tm.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return nil, err
	}

	tags, err := tm.tags.ListTags(ctx, groupID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return tags, nil
}

// DeleteTag removes a tag from the group. Expense links are removed with it.
func (tm *TagModel) DeleteTag(ctx context.Context, groupID, tagID, userID string) error {
	if _, err := verifyMember(ctx, tm.groups, groupID, userID, types.MemberRoleMember); err != nil {
		return err
	}

	tags, err := tm.tags.GetTagsByIDs(ctx, []string{tagID})
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	if len(tags) == 0 || tags[0].GroupID != groupID {
		return apperrors.NotFound("Tag", tagID)
	}

	if err := tm.tags.DeleteTag(ctx, tagID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Tag", tagID)
		}
		return apperrors.NewDatabaseError(err)
	}

	return nil
}
