// Package expense implements the household-expense domain engine: input
// validation, monetary split calculation, settlement-period resolution and
// analytics aggregation. Every function is a pure mapping from input to
// output (or typed error); the package performs no I/O and holds no state,
// so it is safe to call concurrently without coordination.
package expense

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nakayamaryo0731/oaiko/types"
)

// Business limits for expense input.
const (
	MinAmount      int64 = 1
	MaxAmount      int64 = 100_000_000
	MaxTitleLength       = 100
	MaxMemoLength        = 500

	MinClosingDay = 1
	MaxClosingDay = 28
)

var dateFormatRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidationError is a domain validation failure. Message is already phrased
// for the end user and is rendered verbatim by the calling layer; Code is a
// stable identifier for programmatic handling.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation error codes.
const (
	CodeAmountNotInteger = "amount_not_integer"
	CodeAmountOutOfRange = "amount_out_of_range"
	CodeDateFormat       = "date_format"
	CodeDateInFuture     = "date_in_future"
	CodeTitleTooLong     = "title_too_long"
	CodeMemoTooLong      = "memo_too_long"
	CodeRatioEmpty       = "ratio_empty"
	CodeRatioMissing     = "ratio_missing_member"
	CodeRatioNonMember   = "ratio_non_member"
	CodeRatioOutOfRange  = "ratio_out_of_range"
	CodeRatioSum         = "ratio_sum_mismatch"
	CodeAmountSplitEmpty = "amount_split_empty"
	CodeAmountMissing    = "amount_missing_member"
	CodeAmountNonMember  = "amount_non_member"
	CodeAmountNegative   = "amount_negative"
	CodeAmountSum        = "amount_sum_mismatch"
	CodeBearerNotMember  = "bearer_not_member"
	CodeClosingDayRange  = "closing_day_out_of_range"
	CodeUnknownMethod    = "unknown_split_method"
)

func newValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// ExpenseInput carries the cross-validated fields of a new or edited expense.
type ExpenseInput struct {
	Amount int64
	Date   string
	Memo   string
}

// AmountFromFloat converts a JSON number into integer yen, rejecting
// fractional input with the non-integer message.
func AmountFromFloat(v float64) (int64, error) {
	if v != math.Trunc(v) {
		return 0, newValidationError(CodeAmountNotInteger, "金額は整数で入力してください")
	}
	return int64(v), nil
}

// ValidateAmount fails unless amount is within [1, 100,000,000] yen.
func ValidateAmount(amount int64) error {
	if amount < MinAmount || amount > MaxAmount {
		return newValidationError(CodeAmountOutOfRange, "金額は1円から1億円の範囲で入力してください")
	}
	return nil
}

// ValidateDate fails unless date is canonical YYYY-MM-DD and not after today.
// today must itself be in canonical form; fixed-width zero-padded dates make
// lexicographic comparison equivalent to chronological comparison.
func ValidateDate(date string, today string) error {
	if !dateFormatRegex.MatchString(date) {
		return newValidationError(CodeDateFormat, "日付の形式が正しくありません")
	}
	if date > today {
		return newValidationError(CodeDateInFuture, "未来の日付は指定できません")
	}
	return nil
}

// ValidateTitle normalizes the title: empty or whitespace-only input becomes
// the empty string ("absent"), anything else is trimmed and length-checked.
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", nil
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLength {
		return "", newValidationError(CodeTitleTooLong, "タイトルは100文字以内で入力してください")
	}
	return trimmed, nil
}

// ValidateMemo fails only when the memo exceeds 500 characters.
func ValidateMemo(memo string) error {
	if utf8.RuneCountInString(memo) > MaxMemoLength {
		return newValidationError(CodeMemoTooLong, "メモは500文字以内で入力してください")
	}
	return nil
}

// ValidateExpenseInput composes amount, date and memo validation in that
// order, failing on the first violated rule.
func ValidateExpenseInput(input ExpenseInput, today string) error {
	if err := ValidateAmount(input.Amount); err != nil {
		return err
	}
	if err := ValidateDate(input.Date, today); err != nil {
		return err
	}
	return ValidateMemo(input.Memo)
}

// ValidateRatioSplit checks a ratio split: non-empty, the ratio set and the
// current roster containing exactly the same members, each ratio within
// 0-100, ratios summing to exactly 100.
func ValidateRatioSplit(ratios []types.RatioShare, memberIDs []string) error {
	if len(ratios) == 0 {
		return newValidationError(CodeRatioEmpty, "割合が指定されていません")
	}

	roster := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		roster[id] = struct{}{}
	}
	specified := make(map[string]struct{}, len(ratios))
	for _, r := range ratios {
		if _, ok := roster[r.UserID]; !ok {
			return newValidationError(CodeRatioNonMember, "メンバー以外の割合は指定できません")
		}
		specified[r.UserID] = struct{}{}
	}
	for _, id := range memberIDs {
		if _, ok := specified[id]; !ok {
			return newValidationError(CodeRatioMissing, "全メンバーの割合を指定してください")
		}
	}

	for _, r := range ratios {
		if r.Ratio < 0 || r.Ratio > 100 {
			return newValidationError(CodeRatioOutOfRange, "割合は0〜100の整数で指定してください")
		}
	}

	var total int64
	for _, r := range ratios {
		total += r.Ratio
	}
	if total != 100 {
		return newValidationError(CodeRatioSum, "割合の合計は100%である必要があります")
	}
	return nil
}

// ValidateAmountSplit checks an amount split: non-empty, the amount set and
// the current roster containing exactly the same members, each amount
// non-negative, amounts summing to totalAmount.
func ValidateAmountSplit(amounts []types.AmountShare, totalAmount int64, memberIDs []string) error {
	if len(amounts) == 0 {
		return newValidationError(CodeAmountSplitEmpty, "金額が指定されていません")
	}

	roster := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		roster[id] = struct{}{}
	}
	specified := make(map[string]struct{}, len(amounts))
	for _, a := range amounts {
		if _, ok := roster[a.UserID]; !ok {
			return newValidationError(CodeAmountNonMember, "メンバー以外の金額は指定できません")
		}
		specified[a.UserID] = struct{}{}
	}
	for _, id := range memberIDs {
		if _, ok := specified[id]; !ok {
			return newValidationError(CodeAmountMissing, "全メンバーの金額を指定してください")
		}
	}

	for _, a := range amounts {
		if a.Amount < 0 {
			return newValidationError(CodeAmountNegative, "金額は0以上の整数で指定してください")
		}
	}

	var total int64
	for _, a := range amounts {
		total += a.Amount
	}
	if total != totalAmount {
		return newValidationError(CodeAmountSum, "金額の合計が支出金額と一致しません")
	}
	return nil
}

// ValidateFullSplit checks that the bearer is a current group member.
func ValidateFullSplit(bearerID string, memberIDs []string) error {
	for _, id := range memberIDs {
		if id == bearerID {
			return nil
		}
	}
	return newValidationError(CodeBearerNotMember, "負担者はメンバーに含まれている必要があります")
}

// ValidateSplitDetails dispatches on the variant tag. Equal splits always
// pass; the other variants run their method-specific checks.
func ValidateSplitDetails(details types.SplitDetails, totalAmount int64, memberIDs []string) error {
	switch details.Method {
	case types.SplitMethodEqual:
		return nil
	case types.SplitMethodRatio:
		return ValidateRatioSplit(details.Ratios, memberIDs)
	case types.SplitMethodAmount:
		return ValidateAmountSplit(details.Amounts, totalAmount, memberIDs)
	case types.SplitMethodFull:
		return ValidateFullSplit(details.BearerID, memberIDs)
	default:
		return newValidationError(CodeUnknownMethod, "負担方法が正しくありません")
	}
}

// ValidateClosingDay checks the group settlement closing day. The upper
// bound of 28 guarantees every month contains the day.
func ValidateClosingDay(day int) error {
	if day < MinClosingDay || day > MaxClosingDay {
		return newValidationError(CodeClosingDayRange, "締め日は1日から28日の範囲で指定してください")
	}
	return nil
}
