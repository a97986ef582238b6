package expense

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nakayamaryo0731/oaiko/types"
)

func TestAggregateCategoryBreakdown(t *testing.T) {
	categories := map[string]CategoryInfo{
		"cat_food": {Name: "食費", Icon: "🍚"},
		"cat_home": {Name: "住居費", Icon: "🏠"},
	}

	t.Run("sums and sorts by descending amount", func(t *testing.T) {
		expenses := []types.Expense{
			{ID: "e1", CategoryID: "cat_home", Amount: 400},
			{ID: "e2", CategoryID: "cat_food", Amount: 350},
			{ID: "e3", CategoryID: "cat_food", Amount: 250},
		}

		resp := AggregateCategoryBreakdown(expenses, categories)
		require.Len(t, resp.Breakdown, 2)
		assert.Equal(t, int64(1000), resp.TotalAmount)

		first := resp.Breakdown[0]
		assert.Equal(t, "cat_food", first.CategoryID)
		assert.Equal(t, "食費", first.CategoryName)
		assert.Equal(t, "🍚", first.CategoryIcon)
		assert.Equal(t, int64(600), first.Amount)
		assert.Equal(t, 60.0, first.Percentage)
		assert.Equal(t, 2, first.Count)

		second := resp.Breakdown[1]
		assert.Equal(t, "cat_home", second.CategoryID)
		assert.Equal(t, int64(400), second.Amount)
		assert.Equal(t, 40.0, second.Percentage)
		assert.Equal(t, 1, second.Count)
	})

	t.Run("percentage rounds to one decimal", func(t *testing.T) {
		expenses := []types.Expense{
			{ID: "e1", CategoryID: "cat_food", Amount: 1},
			{ID: "e2", CategoryID: "cat_home", Amount: 2},
		}
		resp := AggregateCategoryBreakdown(expenses, categories)
		require.Len(t, resp.Breakdown, 2)
		assert.Equal(t, 66.7, resp.Breakdown[0].Percentage)
		assert.Equal(t, 33.3, resp.Breakdown[1].Percentage)
	})

	t.Run("zero total yields zero percentages", func(t *testing.T) {
		resp := AggregateCategoryBreakdown(nil, categories)
		assert.Empty(t, resp.Breakdown)
		assert.Equal(t, int64(0), resp.TotalAmount)
	})

	t.Run("deleted category falls back to sentinel", func(t *testing.T) {
		expenses := []types.Expense{
			{ID: "e1", CategoryID: "cat_gone", Amount: 500},
		}
		resp := AggregateCategoryBreakdown(expenses, categories)
		require.Len(t, resp.Breakdown, 1)
		assert.Equal(t, FallbackCategoryName, resp.Breakdown[0].CategoryName)
		assert.Equal(t, FallbackCategoryIcon, resp.Breakdown[0].CategoryIcon)
	})

	t.Run("equal amounts order by category id", func(t *testing.T) {
		expenses := []types.Expense{
			{ID: "e1", CategoryID: "cat_home", Amount: 500},
			{ID: "e2", CategoryID: "cat_food", Amount: 500},
		}
		resp := AggregateCategoryBreakdown(expenses, categories)
		require.Len(t, resp.Breakdown, 2)
		assert.Equal(t, "cat_food", resp.Breakdown[0].CategoryID)
		assert.Equal(t, "cat_home", resp.Breakdown[1].CategoryID)
	})
}

func TestAggregateTagBreakdown(t *testing.T) {
	tags := map[string]TagInfo{
		"tag_travel": {Name: "旅行", Color: "sky"},
		"tag_gift":   {Name: "プレゼント", Color: "rose"},
	}

	t.Run("multi-tag expense counts fully against each tag", func(t *testing.T) {
		expenses := []types.Expense{
			{ID: "e1", Amount: 1000},
			{ID: "e2", Amount: 500},
		}
		expenseTags := map[string][]string{
			"e1": {"tag_travel", "tag_gift"},
			"e2": {"tag_travel"},
		}

		resp := AggregateTagBreakdown(expenses, expenseTags, tags, 1500)
		require.Len(t, resp.Breakdown, 2)
		assert.Equal(t, int64(0), resp.UntaggedAmount)

		travel := resp.Breakdown[0]
		assert.Equal(t, "tag_travel", travel.TagID)
		assert.Equal(t, int64(1500), travel.Amount)
		assert.Equal(t, 2, travel.Count)
		assert.Equal(t, 100.0, travel.Percentage)

		gift := resp.Breakdown[1]
		assert.Equal(t, "tag_gift", gift.TagID)
		assert.Equal(t, int64(1000), gift.Amount)
		assert.Equal(t, 1, gift.Count)

		// Per-tag totals exceed the grand total on purpose.
		assert.Greater(t, travel.Amount+gift.Amount, int64(1500))
	})

	t.Run("untagged expenses collect into the untagged bucket", func(t *testing.T) {
		expenses := []types.Expense{
			{ID: "e1", Amount: 700},
			{ID: "e2", Amount: 300},
		}
		expenseTags := map[string][]string{
			"e2": {"tag_gift"},
		}

		resp := AggregateTagBreakdown(expenses, expenseTags, tags, 1000)
		assert.Equal(t, int64(700), resp.UntaggedAmount)
		require.Len(t, resp.Breakdown, 1)
		assert.Equal(t, int64(300), resp.Breakdown[0].Amount)
		assert.Equal(t, 30.0, resp.Breakdown[0].Percentage)
	})

	t.Run("deleted tag falls back to sentinel", func(t *testing.T) {
		expenses := []types.Expense{{ID: "e1", Amount: 100}}
		expenseTags := map[string][]string{"e1": {"tag_gone"}}

		resp := AggregateTagBreakdown(expenses, expenseTags, tags, 100)
		require.Len(t, resp.Breakdown, 1)
		assert.Equal(t, FallbackTagName, resp.Breakdown[0].TagName)
		assert.Equal(t, FallbackTagColor, resp.Breakdown[0].TagColor)
	})

	t.Run("zero total yields zero percentages without failing", func(t *testing.T) {
		expenses := []types.Expense{{ID: "e1", Amount: 100}}
		expenseTags := map[string][]string{"e1": {"tag_gift"}}

		resp := AggregateTagBreakdown(expenses, expenseTags, tags, 0)
		require.Len(t, resp.Breakdown, 1)
		assert.Equal(t, 0.0, resp.Breakdown[0].Percentage)
	})
}

func TestAggregateMonthlyTrend(t *testing.T) {
	t.Run("walks backward with zero fill and year rollover", func(t *testing.T) {
		totals := map[string]int64{
			"2025-02": 12000,
			"2024-12": 8000,
			"2024-11": 5000,
		}

		trend := AggregateMonthlyTrend(2025, 2, 4, totals)
		require.Len(t, trend, 4)
		assert.Equal(t, types.TrendPoint{Year: 2024, Month: 11, TotalAmount: 5000}, trend[0])
		assert.Equal(t, types.TrendPoint{Year: 2024, Month: 12, TotalAmount: 8000}, trend[1])
		assert.Equal(t, types.TrendPoint{Year: 2025, Month: 1, TotalAmount: 0}, trend[2])
		assert.Equal(t, types.TrendPoint{Year: 2025, Month: 2, TotalAmount: 12000}, trend[3])
	})

	t.Run("single month", func(t *testing.T) {
		trend := AggregateMonthlyTrend(2024, 6, 1, map[string]int64{"2024-06": 100})
		require.Len(t, trend, 1)
		assert.Equal(t, types.TrendPoint{Year: 2024, Month: 6, TotalAmount: 100}, trend[0])
	})

	t.Run("non-positive count yields empty series", func(t *testing.T) {
		assert.Empty(t, AggregateMonthlyTrend(2024, 6, 0, nil))
		assert.Empty(t, AggregateMonthlyTrend(2024, 6, -1, nil))
	})
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		amount int64
		total  int64
		want   float64
	}{
		{amount: 600, total: 1000, want: 60.0},
		{amount: 1, total: 3, want: 33.3},
		{amount: 2, total: 3, want: 66.7},
		{amount: 1, total: 7, want: 14.3},
		{amount: 0, total: 1000, want: 0},
		{amount: 100, total: 0, want: 0},
		{amount: 1000, total: 1000, want: 100.0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, percentage(tt.amount, tt.total), "%d/%d", tt.amount, tt.total)
	}
}
