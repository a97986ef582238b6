package types

// CategoryBreakdownEntry is one category's aggregated spend for a period.
// Percentage is the share of the period total, rounded to one decimal place.
type CategoryBreakdownEntry struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	CategoryIcon string  `json:"categoryIcon"`
	Amount       int64   `json:"amount"`
	Percentage   float64 `json:"percentage"`
	Count        int     `json:"count"`
}

// CategoryBreakdownResponse wraps a sorted breakdown with the period total.
type CategoryBreakdownResponse struct {
	Breakdown   []CategoryBreakdownEntry `json:"breakdown"`
	TotalAmount int64                    `json:"totalAmount"`
}

// TagBreakdownEntry is one tag's aggregated spend. Because an expense
// contributes its full amount to every tag it carries, per-tag amounts may
// legitimately sum to more than the period total.
type TagBreakdownEntry struct {
	TagID      string  `json:"tagId"`
	TagName    string  `json:"tagName"`
	TagColor   string  `json:"tagColor"`
	Amount     int64   `json:"amount"`
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
}

// TagBreakdownResponse wraps a sorted tag breakdown with the amount of
// expenses that carry no tags at all.
type TagBreakdownResponse struct {
	Breakdown      []TagBreakdownEntry `json:"breakdown"`
	UntaggedAmount int64               `json:"untaggedAmount"`
}

// TrendPoint is one month's total in a trend series.
type TrendPoint struct {
	Year        int   `json:"year"`
	Month       int   `json:"month"`
	TotalAmount int64 `json:"totalAmount"`
}

// TrendResponse is an ordered multi-month sequence of totals ending at the
// requested anchor period.
type TrendResponse struct {
	Trend []TrendPoint `json:"trend"`
}
