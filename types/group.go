package types

import "time"

// DefaultClosingDay is assigned to newly created groups.
const DefaultClosingDay = 25

// MemberRole defines the permission level of a group member.
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleMember MemberRole = "member"
	MemberRoleNone   MemberRole = "none"
)

// roleRank orders roles by privilege. Unknown roles rank lowest.
func (r MemberRole) roleRank() int {
	switch r {
	case MemberRoleOwner:
		return 2
	case MemberRoleMember:
		return 1
	default:
		return 0
	}
}

// IsAuthorizedFor reports whether the role grants at least the privileges of
// the required role.
func (r MemberRole) IsAuthorizedFor(required MemberRole) bool {
	if r.roleRank() == 0 || required.roleRank() == 0 {
		return false
	}
	return r.roleRank() >= required.roleRank()
}

// Group is a set of members sharing expenses under one accounting
// configuration. ClosingDay (1-28) ends one settlement window and starts the
// next.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ClosingDay  int       `json:"closingDay"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GroupMember links a user to a group with a role.
type GroupMember struct {
	GroupID  string     `json:"groupId"`
	UserID   string     `json:"userId"`
	Role     MemberRole `json:"role"`
	JoinedAt time.Time  `json:"joinedAt"`
}

// CreateGroupRequest is the payload for creating a group.
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateClosingDayRequest changes a group's settlement closing day.
type UpdateClosingDayRequest struct {
	ClosingDay int `json:"closingDay" binding:"required"`
}

// GroupSummary is a group as seen from one member's perspective.
type GroupSummary struct {
	Group
	MemberCount int        `json:"memberCount"`
	MyRole      MemberRole `json:"myRole"`
	JoinedAt    time.Time  `json:"joinedAt"`
}
