// Package models implements the application's business logic on top of the
// store interfaces and the pure calculation engine in internal/expense.
package models

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/nakayamaryo0731/oaiko/errors"
	"github.com/nakayamaryo0731/oaiko/internal/expense"
	"github.com/nakayamaryo0731/oaiko/internal/store"
	"github.com/nakayamaryo0731/oaiko/types"
)

// Clock supplies the current time. Models take a Clock so that date-sensitive
// logic (future-date validation, period resolution) is testable.
type Clock func() time.Time

// today formats the clock's current day as a canonical YYYY-MM-DD string.
func (c Clock) today() string {
	return c().Format("2006-01-02")
}

// verifyMember checks that the user belongs to the group with at least the
// required role. Returns the membership on success.
func verifyMember(ctx context.Context, groups store.GroupStore, groupID, userID string, required types.MemberRole) (*types.GroupMember, error) {
	member, err := groups.GetMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			if _, gerr := groups.GetGroup(ctx, groupID); errors.Is(gerr, store.ErrNotFound) {
				return nil, apperrors.GroupNotFound(groupID)
			}
			return nil, apperrors.GroupAccessDenied(userID, groupID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	if !member.Role.IsAuthorizedFor(required) {
		return nil, apperrors.GroupAccessDenied(userID, groupID)
	}

	return member, nil
}

// rosterIDs extracts member user IDs preserving roster order.
func rosterIDs(members []*types.GroupMember) []string {
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.UserID
	}
	return ids
}

// asAppError converts an engine validation error into the API error shape.
// Other errors pass through unchanged.
func asAppError(err error) error {
	var ve *expense.ValidationError
	if errors.As(err, &ve) {
		return apperrors.ValidationFailed(ve.Message, ve.Code)
	}
	return err
}
