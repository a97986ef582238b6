package types

import "time"

// SplitMethod identifies how an expense is divided among group members.
type SplitMethod string

const (
	SplitMethodEqual  SplitMethod = "equal"
	SplitMethodRatio  SplitMethod = "ratio"
	SplitMethodAmount SplitMethod = "amount"
	SplitMethodFull   SplitMethod = "full"
)

// Valid reports whether the method is one of the known split methods.
func (m SplitMethod) Valid() bool {
	switch m {
	case SplitMethodEqual, SplitMethodRatio, SplitMethodAmount, SplitMethodFull:
		return true
	}
	return false
}

// RatioShare assigns an integer percentage (0-100) to a member.
type RatioShare struct {
	UserID string `json:"userId"`
	Ratio  int64  `json:"ratio"`
}

// AmountShare assigns a fixed amount in yen to a member.
type AmountShare struct {
	UserID string `json:"userId"`
	Amount int64  `json:"amount"`
}

// SplitDetails is a tagged variant: Method decides which of the other
// fields is meaningful. Exactly one variant's fields may be populated.
type SplitDetails struct {
	Method   SplitMethod   `json:"method"`
	Ratios   []RatioShare  `json:"ratios,omitempty"`
	Amounts  []AmountShare `json:"amounts,omitempty"`
	BearerID string        `json:"bearerId,omitempty"`
}

// Expense represents a shared expense within a group. Amounts are integer yen.
type Expense struct {
	ID         string       `json:"id"`
	GroupID    string       `json:"groupId"`
	PayerID    string       `json:"payerId"`
	CategoryID string       `json:"categoryId"`
	Amount     int64        `json:"amount"`
	Date       string       `json:"date"` // YYYY-MM-DD
	Title      string       `json:"title,omitempty"`
	Memo       string       `json:"memo,omitempty"`
	Split      SplitDetails `json:"split"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// ExpenseShare is one member's materialized share of an expense.
type ExpenseShare struct {
	ExpenseID string `json:"expenseId"`
	UserID    string `json:"userId"`
	Amount    int64  `json:"amount"`
}

// CreateExpenseRequest is the payload for creating or fully updating an
// expense. Amount is bound as float64 so that fractional input is rejected
// with the domain validation message instead of a bind error.
type CreateExpenseRequest struct {
	CategoryID string       `json:"categoryId" binding:"required"`
	PayerID    string       `json:"payerId" binding:"required"`
	Amount     float64      `json:"amount" binding:"required"`
	Date       string       `json:"date" binding:"required"`
	Title      string       `json:"title"`
	Memo       string       `json:"memo"`
	Split      SplitDetails `json:"split" binding:"required"`
	TagIDs     []string     `json:"tagIds"`
}

// ExpenseResponse is an expense enriched with its per-member shares.
type ExpenseResponse struct {
	Expense Expense        `json:"expense"`
	Shares  []ExpenseShare `json:"shares"`
	TagIDs  []string       `json:"tagIds"`
}
