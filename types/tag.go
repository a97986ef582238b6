package types

import "time"

// Tag limits mirror the product rules: tag names are 1-20 characters, a
// group holds at most 50 tags and an expense carries at most 10.
const (
	MaxTagsPerGroup   = 50
	MaxTagsPerExpense = 10
	MinTagNameLength  = 1
	MaxTagNameLength  = 20
)

// TagColors is the closed palette of allowed tag colors (Tailwind names).
var TagColors = []string{
	"red", "orange", "amber", "yellow", "lime", "green", "emerald", "teal",
	"cyan", "sky", "blue", "indigo", "violet", "purple", "fuchsia", "pink",
	"rose", "slate",
}

// IsValidTagColor reports whether color belongs to the allowed palette.
func IsValidTagColor(color string) bool {
	for _, c := range TagColors {
		if c == color {
			return true
		}
	}
	return false
}

// Tag is a free-form label attached to expenses, orthogonal to categories.
type Tag struct {
	ID         string     `json:"id"`
	GroupID    string     `json:"groupId"`
	Name       string     `json:"name"`
	Color      string     `json:"color"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// CreateTagRequest is the payload for creating a tag. Color is optional; a
// random palette color is assigned when omitted.
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}
