package types

import "time"

// MemberBalance is one member's net position for a settlement period:
// positive means the member paid more than their share and is owed money.
type MemberBalance struct {
	UserID  string `json:"userId"`
	Paid    int64  `json:"paid"`
	Owed    int64  `json:"owed"`
	Balance int64  `json:"balance"`
}

// Transfer is a suggested payment that settles part of the period's balances.
type Transfer struct {
	FromUserID string `json:"fromUserId"`
	ToUserID   string `json:"toUserId"`
	Amount     int64  `json:"amount"`
}

// Settlement is a confirmed snapshot of one settlement period.
type Settlement struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"groupId"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	TotalAmount int64     `json:"totalAmount"`
	ConfirmedBy string    `json:"confirmedBy"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}

// SettlementSummary is the computed view of a period before or after
// confirmation.
type SettlementSummary struct {
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	TotalAmount int64           `json:"totalAmount"`
	Balances    []MemberBalance `json:"balances"`
	Transfers   []Transfer      `json:"transfers"`
}
