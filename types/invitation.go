package types

import "time"

// InvitationError codes returned when a token cannot be used.
const (
	InvitationErrorInvalidToken = "invalid_token"
	InvitationErrorExpired      = "expired"
	InvitationErrorAlreadyUsed  = "already_used"
)

// GroupInvitation is a single-use, expiring token that joins its bearer to a
// group as a member.
type GroupInvitation struct {
	ID        string     `json:"id"`
	GroupID   string     `json:"groupId"`
	Token     string     `json:"token"`
	CreatedBy string     `json:"createdBy"`
	ExpiresAt time.Time  `json:"expiresAt"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
	UsedBy    string     `json:"usedBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Expired reports whether the invitation is past its expiry at the given time.
func (i *GroupInvitation) Expired(now time.Time) bool {
	return i.ExpiresAt.Before(now)
}

// Used reports whether the invitation has already been consumed.
func (i *GroupInvitation) Used() bool {
	return i.UsedAt != nil
}

// InvitationDetails is the public view of an invitation shown before login.
type InvitationDetails struct {
	GroupID     string    `json:"groupId"`
	GroupName   string    `json:"groupName"`
	InvitedBy   string    `json:"invitedBy"`
	MemberCount int       `json:"memberCount"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// AcceptInvitationResult reports the outcome of accepting an invitation.
type AcceptInvitationResult struct {
	GroupID       string `json:"groupId"`
	AlreadyMember bool   `json:"alreadyMember"`
}
