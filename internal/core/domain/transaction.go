package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType labels the kind of money movement a record describes.
type TransactionType string

const (
	PayAnyone TransactionType = "pay anyone"
	BPAY      TransactionType = "bpay"
)

// Transaction is an immutable record of one money movement.
// Amount is stored as a positive magnitude; the sign depends on the viewing account.
type Transaction struct {
	ID                  string          `json:"id"`
	Amount              decimal.Decimal `json:"amount"`
	PaidOn              time.Time       `json:"paidOn"`
	FromAccountID       string          `json:"fromAccountID"`
	FromAccountUsername string          `json:"fromAccountUsername"`
	ToAccountID         string          `json:"toAccountID,omitempty"`
	ToAccountUsername   string          `json:"toAccountUsername,omitempty"`
	ToBiller            string          `json:"toBiller,omitempty"`
	Description         string          `json:"description"`
	TransactionType     TransactionType `json:"transactionType"`
}

// IsBillerPayment reports whether the record paid an external biller rather than an account.
func (t Transaction) IsBillerPayment() bool {
	return t.ToBiller != "" && t.ToAccountID == ""
}

// SignedAmountFor returns the amount as seen from accountID: positive when the
// account received the money, negative when it paid, zero when it is not involved.
func (t Transaction) SignedAmountFor(accountID string) decimal.Decimal {
	switch accountID {
	case t.ToAccountID:
		if t.FromAccountID == t.ToAccountID {
			return decimal.Zero
		}
		return t.Amount
	case t.FromAccountID:
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}
