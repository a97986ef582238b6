package expense

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nakayamaryo0731/oaiko/types"
)

const fixedToday = "2024-12-30"

func TestAmountFromFloat(t *testing.T) {
	t.Run("integral values convert", func(t *testing.T) {
		v, err := AmountFromFloat(1000)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), v)
	})

	t.Run("fractional values fail", func(t *testing.T) {
		_, err := AmountFromFloat(100.5)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, CodeAmountNotInteger, verr.Code)
		assert.Equal(t, "金額は整数で入力してください", verr.Message)
	})
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		wantCode string
	}{
		{name: "minimum passes", amount: 1},
		{name: "typical passes", amount: 1000},
		{name: "maximum passes", amount: 100_000_000},
		{name: "zero fails", amount: 0, wantCode: CodeAmountOutOfRange},
		{name: "negative fails", amount: -100, wantCode: CodeAmountOutOfRange},
		{name: "over one hundred million fails", amount: 100_000_001, wantCode: CodeAmountOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantCode, verr.Code)
			assert.Equal(t, "金額は1円から1億円の範囲で入力してください", verr.Message)
		})
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		wantCode string
	}{
		{name: "today passes", date: "2024-12-30"},
		{name: "past date passes", date: "2024-01-01"},
		{name: "previous year passes", date: "2023-12-31"},
		{name: "slash separators fail", date: "2024/12/30", wantCode: CodeDateFormat},
		{name: "US ordering fails", date: "12-30-2024", wantCode: CodeDateFormat},
		{name: "garbage fails", date: "invalid", wantCode: CodeDateFormat},
		{name: "tomorrow fails", date: "2024-12-31", wantCode: CodeDateInFuture},
		{name: "next year fails", date: "2025-01-01", wantCode: CodeDateInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDate(tt.date, fixedToday)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantCode, verr.Code)
		})
	}
}

func TestValidateTitle(t *testing.T) {
	t.Run("empty normalizes to absent", func(t *testing.T) {
		got, err := ValidateTitle("")
		require.NoError(t, err)
		assert.Equal(t, "", got)
	})

	t.Run("whitespace only normalizes to absent", func(t *testing.T) {
		got, err := ValidateTitle("   ")
		require.NoError(t, err)
		assert.Equal(t, "", got)
	})

	t.Run("surrounding whitespace is trimmed", func(t *testing.T) {
		got, err := ValidateTitle("  スーパーで買い物  ")
		require.NoError(t, err)
		assert.Equal(t, "スーパーで買い物", got)
	})

	t.Run("100 runes pass", func(t *testing.T) {
		title := strings.Repeat("あ", 100)
		got, err := ValidateTitle(title)
		require.NoError(t, err)
		assert.Equal(t, title, got)
	})

	t.Run("101 runes fail", func(t *testing.T) {
		_, err := ValidateTitle(strings.Repeat("あ", 101))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, CodeTitleTooLong, verr.Code)
		assert.Equal(t, "タイトルは100文字以内で入力してください", verr.Message)
	})
}

func TestValidateMemo(t *testing.T) {
	assert.NoError(t, ValidateMemo(""))
	assert.NoError(t, ValidateMemo(strings.Repeat("a", 500)))
	assert.NoError(t, ValidateMemo(strings.Repeat("あ", 500)))

	err := ValidateMemo(strings.Repeat("あ", 501))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, CodeMemoTooLong, verr.Code)
	assert.Equal(t, "メモは500文字以内で入力してください", verr.Message)
}

func TestValidateExpenseInput(t *testing.T) {
	valid := ExpenseInput{Amount: 1000, Date: "2024-12-30", Memo: "テストメモ"}

	t.Run("valid input passes", func(t *testing.T) {
		assert.NoError(t, ValidateExpenseInput(valid, fixedToday))
	})

	t.Run("memo is optional", func(t *testing.T) {
		input := valid
		input.Memo = ""
		assert.NoError(t, ValidateExpenseInput(input, fixedToday))
	})

	t.Run("amount checked first", func(t *testing.T) {
		input := ExpenseInput{Amount: 0, Date: "invalid"}
		var verr *ValidationError
		require.ErrorAs(t, ValidateExpenseInput(input, fixedToday), &verr)
		assert.Equal(t, CodeAmountOutOfRange, verr.Code)
	})

	t.Run("date checked before memo", func(t *testing.T) {
		input := ExpenseInput{Amount: 1000, Date: "invalid", Memo: strings.Repeat("a", 501)}
		var verr *ValidationError
		require.ErrorAs(t, ValidateExpenseInput(input, fixedToday), &verr)
		assert.Equal(t, CodeDateFormat, verr.Code)
	})

	t.Run("over-long memo fails", func(t *testing.T) {
		input := valid
		input.Memo = strings.Repeat("a", 501)
		var verr *ValidationError
		require.ErrorAs(t, ValidateExpenseInput(input, fixedToday), &verr)
		assert.Equal(t, CodeMemoTooLong, verr.Code)
	})
}

func TestValidateRatioSplit(t *testing.T) {
	members := []string{"user_a", "user_b"}

	tests := []struct {
		name     string
		ratios   []types.RatioShare
		members  []string
		wantCode string
		wantMsg  string
	}{
		{
			name: "valid ratios pass",
			ratios: []types.RatioShare{
				{UserID: "user_a", Ratio: 60},
				{UserID: "user_b", Ratio: 40},
			},
			members: members,
		},
		{
			name:     "empty set fails",
			ratios:   nil,
			members:  members,
			wantCode: CodeRatioEmpty,
			wantMsg:  "割合が指定されていません",
		},
		{
			name:     "missing member fails",
			ratios:   []types.RatioShare{{UserID: "user_a", Ratio: 100}},
			members:  members,
			wantCode: CodeRatioMissing,
			wantMsg:  "全メンバーの割合を指定してください",
		},
		{
			name: "ratio for non-member fails",
			ratios: []types.RatioShare{
				{UserID: "user_a", Ratio: 50},
				{UserID: "user_x", Ratio: 50},
			},
			members:  []string{"user_a"},
			wantCode: CodeRatioNonMember,
			wantMsg:  "メンバー以外の割合は指定できません",
		},
		{
			name: "negative ratio fails",
			ratios: []types.RatioShare{
				{UserID: "user_a", Ratio: -10},
				{UserID: "user_b", Ratio: 110},
			},
			members:  members,
			wantCode: CodeRatioOutOfRange,
			wantMsg:  "割合は0〜100の整数で指定してください",
		},
		{
			name: "ratio above 100 fails",
			ratios: []types.RatioShare{
				{UserID: "user_a", Ratio: 101},
				{UserID: "user_b", Ratio: -1},
			},
			members:  members,
			wantCode: CodeRatioOutOfRange,
		},
		{
			name: "sum of 90 fails",
			ratios: []types.RatioShare{
				{UserID: "user_a", Ratio: 60},
				{UserID: "user_b", Ratio: 30},
			},
			members:  members,
			wantCode: CodeRatioSum,
			wantMsg:  "割合の合計は100%である必要があります",
		},
		{
			name: "sum of 110 fails",
			ratios: []types.RatioShare{
				{UserID: "user_a", Ratio: 60},
				{UserID: "user_b", Ratio: 50},
			},
			members:  members,
			wantCode: CodeRatioSum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRatioSplit(tt.ratios, tt.members)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantCode, verr.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, verr.Message)
			}
		})
	}
}

func TestValidateAmountSplit(t *testing.T) {
	members := []string{"user_a", "user_b"}

	tests := []struct {
		name     string
		amounts  []types.AmountShare
		total    int64
		members  []string
		wantCode string
	}{
		{
			name: "valid amounts pass",
			amounts: []types.AmountShare{
				{UserID: "user_a", Amount: 600},
				{UserID: "user_b", Amount: 400},
			},
			total:   1000,
			members: members,
		},
		{
			name:     "empty set fails",
			amounts:  nil,
			total:    1000,
			members:  members,
			wantCode: CodeAmountSplitEmpty,
		},
		{
			name:     "missing member fails",
			amounts:  []types.AmountShare{{UserID: "user_a", Amount: 1000}},
			total:    1000,
			members:  members,
			wantCode: CodeAmountMissing,
		},
		{
			name: "amount for non-member fails",
			amounts: []types.AmountShare{
				{UserID: "user_a", Amount: 500},
				{UserID: "user_x", Amount: 500},
			},
			total:    1000,
			members:  []string{"user_a"},
			wantCode: CodeAmountNonMember,
		},
		{
			name: "negative amount fails",
			amounts: []types.AmountShare{
				{UserID: "user_a", Amount: -100},
				{UserID: "user_b", Amount: 1100},
			},
			total:    1000,
			members:  members,
			wantCode: CodeAmountNegative,
		},
		{
			name: "sum mismatch fails",
			amounts: []types.AmountShare{
				{UserID: "user_a", Amount: 600},
				{UserID: "user_b", Amount: 300},
			},
			total:    1000,
			members:  members,
			wantCode: CodeAmountSum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmountSplit(tt.amounts, tt.total, tt.members)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantCode, verr.Code)
		})
	}
}

func TestValidateFullSplit(t *testing.T) {
	assert.NoError(t, ValidateFullSplit("user_a", []string{"user_a", "user_b"}))

	err := ValidateFullSplit("user_c", []string{"user_a", "user_b"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, CodeBearerNotMember, verr.Code)
	assert.Equal(t, "負担者はメンバーに含まれている必要があります", verr.Message)
}

func TestValidateSplitDetails(t *testing.T) {
	members := []string{"user_a", "user_b"}

	t.Run("equal always passes", func(t *testing.T) {
		details := types.SplitDetails{Method: types.SplitMethodEqual}
		assert.NoError(t, ValidateSplitDetails(details, 1000, members))
	})

	t.Run("ratio dispatches to ratio validation", func(t *testing.T) {
		ok := types.SplitDetails{
			Method: types.SplitMethodRatio,
			Ratios: []types.RatioShare{
				{UserID: "user_a", Ratio: 60},
				{UserID: "user_b", Ratio: 40},
			},
		}
		assert.NoError(t, ValidateSplitDetails(ok, 1000, members))

		bad := ok
		bad.Ratios = []types.RatioShare{
			{UserID: "user_a", Ratio: 50},
			{UserID: "user_b", Ratio: 40},
		}
		var verr *ValidationError
		require.ErrorAs(t, ValidateSplitDetails(bad, 1000, members), &verr)
		assert.Equal(t, CodeRatioSum, verr.Code)
	})

	t.Run("amount dispatches to amount validation", func(t *testing.T) {
		ok := types.SplitDetails{
			Method: types.SplitMethodAmount,
			Amounts: []types.AmountShare{
				{UserID: "user_a", Amount: 600},
				{UserID: "user_b", Amount: 400},
			},
		}
		assert.NoError(t, ValidateSplitDetails(ok, 1000, members))

		bad := ok
		bad.Amounts = []types.AmountShare{
			{UserID: "user_a", Amount: 600},
			{UserID: "user_b", Amount: 300},
		}
		var verr *ValidationError
		require.ErrorAs(t, ValidateSplitDetails(bad, 1000, members), &verr)
		assert.Equal(t, CodeAmountSum, verr.Code)
	})

	t.Run("full dispatches to bearer validation", func(t *testing.T) {
		ok := types.SplitDetails{Method: types.SplitMethodFull, BearerID: "user_a"}
		assert.NoError(t, ValidateSplitDetails(ok, 1000, members))

		bad := types.SplitDetails{Method: types.SplitMethodFull, BearerID: "user_c"}
		var verr *ValidationError
		require.ErrorAs(t, ValidateSplitDetails(bad, 1000, members), &verr)
		assert.Equal(t, CodeBearerNotMember, verr.Code)
	})

	t.Run("unknown method fails", func(t *testing.T) {
		bad := types.SplitDetails{Method: "half"}
		var verr *ValidationError
		require.ErrorAs(t, ValidateSplitDetails(bad, 1000, members), &verr)
		assert.Equal(t, CodeUnknownMethod, verr.Code)
	})
}

func TestValidateClosingDay(t *testing.T) {
	assert.NoError(t, ValidateClosingDay(1))
	assert.NoError(t, ValidateClosingDay(25))
	assert.NoError(t, ValidateClosingDay(28))

	for _, day := range []int{0, -1, 29, 31} {
		err := ValidateClosingDay(day)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "day %d", day)
		assert.Equal(t, CodeClosingDayRange, verr.Code)
	}
}
