package expense

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nakayamaryo0731/oaiko/types"
)

func TestComputeBalances(t *testing.T) {
	members := []string{"a", "b"}
	expenses := []types.Expense{
		{ID: "e1", PayerID: "a", Amount: 1000},
		{ID: "e2", PayerID: "b", Amount: 400},
	}
	shares := []types.ExpenseShare{
		{ExpenseID: "e1", UserID: "a", Amount: 500},
		{ExpenseID: "e1", UserID: "b", Amount: 500},
		{ExpenseID: "e2", UserID: "a", Amount: 200},
		{ExpenseID: "e2", UserID: "b", Amount: 200},
	}

	balances := ComputeBalances(expenses, shares, members)
	require.Len(t, balances, 2)

	assert.Equal(t, types.MemberBalance{UserID: "a", Paid: 1000, Owed: 700, Balance: 300}, balances[0])
	assert.Equal(t, types.MemberBalance{UserID: "b", Paid: 400, Owed: 700, Balance: -300}, balances[1])

	// Balances always net to zero when shares sum to the expense totals.
	var net int64
	for _, b := range balances {
		net += b.Balance
	}
	assert.Equal(t, int64(0), net)
}

func TestComputeBalances_InactiveMembersAppear(t *testing.T) {
	balances := ComputeBalances(nil, nil, []string{"a", "b"})
	require.Len(t, balances, 2)
	assert.Equal(t, types.MemberBalance{UserID: "a"}, balances[0])
	assert.Equal(t, types.MemberBalance{UserID: "b"}, balances[1])
}

func TestSuggestTransfers(t *testing.T) {
	t.Run("two members need one transfer", func(t *testing.T) {
		balances := []types.MemberBalance{
			{UserID: "a", Balance: 300},
			{UserID: "b", Balance: -300},
		}
		transfers := SuggestTransfers(balances)
		require.Len(t, transfers, 1)
		assert.Equal(t, types.Transfer{FromUserID: "b", ToUserID: "a", Amount: 300}, transfers[0])
	})

	t.Run("largest debtor pays largest creditor first", func(t *testing.T) {
		balances := []types.MemberBalance{
			{UserID: "a", Balance: 500},
			{UserID: "b", Balance: 100},
			{UserID: "c", Balance: -400},
			{UserID: "d", Balance: -200},
		}
		transfers := SuggestTransfers(balances)
		require.Len(t, transfers, 3)
		assert.Equal(t, types.Transfer{FromUserID: "c", ToUserID: "a", Amount: 400}, transfers[0])
		assert.Equal(t, types.Transfer{FromUserID: "d", ToUserID: "a", Amount: 100}, transfers[1])
		assert.Equal(t, types.Transfer{FromUserID: "d", ToUserID: "b", Amount: 100}, transfers[2])
	})

	t.Run("settled balances yield no transfers", func(t *testing.T) {
		balances := []types.MemberBalance{
			{UserID: "a", Balance: 0},
			{UserID: "b", Balance: 0},
		}
		assert.Empty(t, SuggestTransfers(balances))
	})
}
