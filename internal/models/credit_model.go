package models

import "time"

// CreditTransaction is an append-only ledger row. Balance holds the user's
// credit balance after the transaction was applied, so the latest row for a
// user always matches users.credits.
type CreditTransaction struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Amount      int       `db:"amount" json:"amount"`
	Balance     int       `db:"balance" json:"balance"`
	Type        string    `db:"type" json:"type"`
	Description string    `db:"description" json:"description"`
	Reference   string    `db:"reference" json:"reference"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

const (
	CreditTypePurchase     = "purchase"
	CreditTypeSubscription = "subscription"
	CreditTypeUsage        = "usage"
	CreditTypeRefund       = "refund"
	CreditTypeBonus        = "bonus"
)
