package expense

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/nakayamaryo0731/oaiko/types"
)

// Fallback presentation values used when referenced metadata has been
// deleted. Aggregation degrades to these instead of failing so that
// historical analytics stay available.
const (
	FallbackCategoryName = "不明なカテゴリ"
	FallbackCategoryIcon = "❓"
	FallbackTagName      = "不明なタグ"
	FallbackTagColor     = "slate"
)

// CategoryInfo is the presentation metadata the aggregator needs per
// category; the caller supplies it from wherever categories are stored.
type CategoryInfo struct {
	Name string
	Icon string
}

// TagInfo is the presentation metadata per tag.
type TagInfo struct {
	Name  string
	Color string
}

var thousand = decimal.NewFromInt(1000)
var ten = decimal.NewFromInt(10)

// percentage computes round(amount/total*1000)/10, the share of total
// rounded to one decimal place. Zero totals yield zero rather than dividing
// by zero.
func percentage(amount, total int64) float64 {
	if total <= 0 {
		return 0
	}
	p := decimal.NewFromInt(amount).Mul(thousand).
		Div(decimal.NewFromInt(total)).
		Round(0).
		Div(ten)
	f, _ := p.Float64()
	return f
}

// AggregateCategoryBreakdown groups the supplied expenses (already filtered
// to one period) by category, sums per-category spend, and returns entries
// sorted by descending amount. Unknown category ids fall back to sentinel
// metadata. Ties in amount break by category id so the order is
// deterministic.
func AggregateCategoryBreakdown(expenses []types.Expense, categories map[string]CategoryInfo) types.CategoryBreakdownResponse {
	type bucket struct {
		amount int64
		count  int
	}

	totals := make(map[string]*bucket)
	var totalAmount int64
	for _, e := range expenses {
		totalAmount += e.Amount
		b := totals[e.CategoryID]
		if b == nil {
			b = &bucket{}
			totals[e.CategoryID] = b
		}
		b.amount += e.Amount
		b.count++
	}

	breakdown := make([]types.CategoryBreakdownEntry, 0, len(totals))
	for id, b := range totals {
		info, ok := categories[id]
		if !ok {
			info = CategoryInfo{Name: FallbackCategoryName, Icon: FallbackCategoryIcon}
		}
		breakdown = append(breakdown, types.CategoryBreakdownEntry{
			CategoryID:   id,
			CategoryName: info.Name,
			CategoryIcon: info.Icon,
			Amount:       b.amount,
			Percentage:   percentage(b.amount, totalAmount),
			Count:        b.count,
		})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount != breakdown[j].Amount {
			return breakdown[i].Amount > breakdown[j].Amount
		}
		return breakdown[i].CategoryID < breakdown[j].CategoryID
	})

	return types.CategoryBreakdownResponse{Breakdown: breakdown, TotalAmount: totalAmount}
}

// AggregateTagBreakdown sums per-tag spend over the supplied expenses. An
// expense with no tags contributes its full amount to the untagged bucket;
// an expense with multiple tags contributes its full amount to each of them,
// so per-tag totals may exceed totalAmount by design (tags are overlapping
// categorizations, not partitions). Percentages are computed against the
// supplied period total.
func AggregateTagBreakdown(expenses []types.Expense, expenseTags map[string][]string, tags map[string]TagInfo, totalAmount int64) types.TagBreakdownResponse {
	type bucket struct {
		amount int64
		count  int
	}

	totals := make(map[string]*bucket)
	var untagged int64
	for _, e := range expenses {
		ids := expenseTags[e.ID]
		if len(ids) == 0 {
			untagged += e.Amount
			continue
		}
		for _, tagID := range ids {
			b := totals[tagID]
			if b == nil {
				b = &bucket{}
				totals[tagID] = b
			}
			b.amount += e.Amount
			b.count++
		}
	}

	breakdown := make([]types.TagBreakdownEntry, 0, len(totals))
	for id, b := range totals {
		info, ok := tags[id]
		if !ok {
			info = TagInfo{Name: FallbackTagName, Color: FallbackTagColor}
		}
		breakdown = append(breakdown, types.TagBreakdownEntry{
			TagID:      id,
			TagName:    info.Name,
			TagColor:   info.Color,
			Amount:     b.amount,
			Percentage: percentage(b.amount, totalAmount),
			Count:      b.count,
		})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount != breakdown[j].Amount {
			return breakdown[i].Amount > breakdown[j].Amount
		}
		return breakdown[i].TagID < breakdown[j].TagID
	})

	return types.TagBreakdownResponse{Breakdown: breakdown, UntaggedAmount: untagged}
}

// AggregateMonthlyTrend walks backward monthCount months from the anchor
// period and returns the series in ascending chronological order ending at
// the anchor. Months with no recorded total are filled with zero.
// totalsByPeriod is keyed by Period.Key ("YYYY-MM").
func AggregateMonthlyTrend(anchorYear, anchorMonth, monthCount int, totalsByPeriod map[string]int64) []types.TrendPoint {
	if monthCount <= 0 {
		return []types.TrendPoint{}
	}

	trend := make([]types.TrendPoint, monthCount)
	p := Period{Year: anchorYear, Month: anchorMonth}
	for i := monthCount - 1; i >= 0; i-- {
		trend[i] = types.TrendPoint{
			Year:        p.Year,
			Month:       p.Month,
			TotalAmount: totalsByPeriod[p.Key()],
		}
		p = p.Prev()
	}
	return trend
}
