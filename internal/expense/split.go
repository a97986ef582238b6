package expense

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nakayamaryo0731/oaiko/types"
)

// ErrNoMembers is returned when a split is requested for an empty roster.
var ErrNoMembers = errors.New("expense: member roster is empty")

// CalculateEqualSplit divides totalAmount evenly. Every member receives the
// floor share; the remainder is handed out one yen at a time in roster order,
// so the earliest members absorb the extra yen. The shares always sum to
// exactly totalAmount.
func CalculateEqualSplit(totalAmount int64, memberIDs []string) (map[string]int64, error) {
	if len(memberIDs) == 0 {
		return nil, ErrNoMembers
	}

	n := int64(len(memberIDs))
	base := totalAmount / n
	remainder := totalAmount - base*n

	shares := make(map[string]int64, len(memberIDs))
	for i, id := range memberIDs {
		shares[id] = base
		if int64(i) < remainder {
			shares[id]++
		}
	}
	return shares, nil
}

// CalculateRatioSplit apportions totalAmount across percentage shares using
// the largest-remainder method: every member gets floor(total*ratio/100) and
// the shortfall goes one yen at a time to the members with the largest
// fractional remainders, ties broken by roster order. Validation is a
// required precondition; a ratio set that does not sum to 100 is rejected
// here as an invariant violation rather than silently producing a bad split.
func CalculateRatioSplit(totalAmount int64, ratios []types.RatioShare, memberIDs []string) (map[string]int64, error) {
	if len(memberIDs) == 0 {
		return nil, ErrNoMembers
	}

	roster := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		roster[id] = struct{}{}
	}

	ratioByUser := make(map[string]int64, len(ratios))
	var ratioSum int64
	for _, r := range ratios {
		if _, ok := roster[r.UserID]; !ok {
			return nil, fmt.Errorf("expense: ratio for %s who is not a group member", r.UserID)
		}
		ratioByUser[r.UserID] = r.Ratio
		ratioSum += r.Ratio
	}
	if ratioSum != 100 {
		return nil, fmt.Errorf("expense: ratio sum is %d, want 100", ratioSum)
	}

	type allocation struct {
		rosterPos int
		remainder int64 // of totalAmount*ratio modulo 100
	}

	shares := make(map[string]int64, len(memberIDs))
	allocations := make([]allocation, 0, len(memberIDs))
	var floorSum int64
	for i, id := range memberIDs {
		product := totalAmount * ratioByUser[id]
		share := product / 100
		shares[id] = share
		floorSum += share
		allocations = append(allocations, allocation{rosterPos: i, remainder: product % 100})
	}

	// Stable sort keeps roster order among equal remainders.
	sort.SliceStable(allocations, func(a, b int) bool {
		return allocations[a].remainder > allocations[b].remainder
	})

	shortfall := totalAmount - floorSum
	for i := int64(0); i < shortfall; i++ {
		shares[memberIDs[allocations[i].rosterPos]]++
	}
	return shares, nil
}

// CalculateAmountSplit reshapes validated per-member amounts into the
// canonical share map keyed by the full roster. Members absent from the
// input default to zero, though validation rejects that case upstream.
// An amount for a user outside the roster would silently vanish from the
// shares, so it is rejected as an invariant violation instead.
func CalculateAmountSplit(amounts []types.AmountShare, memberIDs []string) (map[string]int64, error) {
	if len(memberIDs) == 0 {
		return nil, ErrNoMembers
	}

	roster := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		roster[id] = struct{}{}
	}

	byUser := make(map[string]int64, len(amounts))
	for _, a := range amounts {
		if _, ok := roster[a.UserID]; !ok {
			return nil, fmt.Errorf("expense: amount for %s who is not a group member", a.UserID)
		}
		byUser[a.UserID] = a.Amount
	}

	shares := make(map[string]int64, len(memberIDs))
	for _, id := range memberIDs {
		shares[id] = byUser[id]
	}
	return shares, nil
}

// CalculateFullSplit assigns the entire amount to the bearer and zero to
// every other member. The bearer must be on the roster.
func CalculateFullSplit(totalAmount int64, bearerID string, memberIDs []string) (map[string]int64, error) {
	if len(memberIDs) == 0 {
		return nil, ErrNoMembers
	}

	shares := make(map[string]int64, len(memberIDs))
	found := false
	for _, id := range memberIDs {
		shares[id] = 0
		if id == bearerID {
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("expense: bearer %s is not a group member", bearerID)
	}
	shares[bearerID] = totalAmount
	return shares, nil
}

// CalculateSplit dispatches to the method-specific calculator. Callers are
// expected to have run ValidateSplitDetails first; invariants the calculator
// relies on still fail explicitly rather than producing shares that do not
// sum to the total.
func CalculateSplit(details types.SplitDetails, totalAmount int64, memberIDs []string) (map[string]int64, error) {
	switch details.Method {
	case types.SplitMethodEqual:
		return CalculateEqualSplit(totalAmount, memberIDs)
	case types.SplitMethodRatio:
		return CalculateRatioSplit(totalAmount, details.Ratios, memberIDs)
	case types.SplitMethodAmount:
		return CalculateAmountSplit(details.Amounts, memberIDs)
	case types.SplitMethodFull:
		return CalculateFullSplit(totalAmount, details.BearerID, memberIDs)
	default:
		return nil, fmt.Errorf("expense: unknown split method %q", details.Method)
	}
}
