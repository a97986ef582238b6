package types

import "time"

// Category classifies expenses within a group. Preset categories are copied
// into every new group and cannot be renamed.
type Category struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"groupId"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	IsPreset  bool      `json:"isPreset"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

// PresetCategory is a template copied into newly created groups.
type PresetCategory struct {
	Name      string
	Icon      string
	SortOrder int
}

// PresetCategories lists the default categories every new group starts with.
var PresetCategories = []PresetCategory{
	{Name: "食費", Icon: "🍚", SortOrder: 1},
	{Name: "日用品", Icon: "🧻", SortOrder: 2},
	{Name: "住居費", Icon: "🏠", SortOrder: 3},
	{Name: "水道光熱費", Icon: "💡", SortOrder: 4},
	{Name: "通信費", Icon: "📱", SortOrder: 5},
	{Name: "交通費", Icon: "🚃", SortOrder: 6},
	{Name: "医療費", Icon: "🏥", SortOrder: 7},
	{Name: "娯楽費", Icon: "🎮", SortOrder: 8},
	{Name: "交際費", Icon: "🍻", SortOrder: 9},
	{Name: "その他", Icon: "📦", SortOrder: 10},
}
