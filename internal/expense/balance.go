package expense

import (
	"sort"

	"github.com/nakayamaryo0731/oaiko/types"
)

// ComputeBalances nets each member's payments against their owed shares for
// one settlement period. Paid sums the expenses the member fronted; Owed
// sums the member's materialized shares; Balance is Paid minus Owed, so a
// positive balance means the member is owed money. Members with no activity
// still appear with zeroes, in roster order.
func ComputeBalances(expenses []types.Expense, shares []types.ExpenseShare, memberIDs []string) []types.MemberBalance {
	paid := make(map[string]int64, len(memberIDs))
	owed := make(map[string]int64, len(memberIDs))

	for _, e := range expenses {
		paid[e.PayerID] += e.Amount
	}
	for _, s := range shares {
		owed[s.UserID] += s.Amount
	}

	balances := make([]types.MemberBalance, 0, len(memberIDs))
	for _, id := range memberIDs {
		balances = append(balances, types.MemberBalance{
			UserID:  id,
			Paid:    paid[id],
			Owed:    owed[id],
			Balance: paid[id] - owed[id],
		})
	}
	return balances
}

// SuggestTransfers produces a small set of payments that zero out the given
// balances by greedily matching the largest debtor against the largest
// creditor. Ties break by user id, so the suggestion is deterministic for a
// given input. Balances that already net to zero yield no transfers.
func SuggestTransfers(balances []types.MemberBalance) []types.Transfer {
	type position struct {
		userID string
		amount int64
	}

	var creditors, debtors []position
	for _, b := range balances {
		switch {
		case b.Balance > 0:
			creditors = append(creditors, position{userID: b.UserID, amount: b.Balance})
		case b.Balance < 0:
			debtors = append(debtors, position{userID: b.UserID, amount: -b.Balance})
		}
	}

	byAmountDesc := func(ps []position) func(i, j int) bool {
		return func(i, j int) bool {
			if ps[i].amount != ps[j].amount {
				return ps[i].amount > ps[j].amount
			}
			return ps[i].userID < ps[j].userID
		}
	}
	sort.Slice(creditors, byAmountDesc(creditors))
	sort.Slice(debtors, byAmountDesc(debtors))

	transfers := []types.Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].amount
		if creditors[j].amount < amount {
			amount = creditors[j].amount
		}
		transfers = append(transfers, types.Transfer{
			FromUserID: debtors[i].userID,
			ToUserID:   creditors[j].userID,
			Amount:     amount,
		})
		debtors[i].amount -= amount
		creditors[j].amount -= amount
		if debtors[i].amount == 0 {
			i++
		}
		if creditors[j].amount == 0 {
			j++
		}
	}
	return transfers
}
