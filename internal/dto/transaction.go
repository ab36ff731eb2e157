package dto

import (
	"time"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionResponse is a transaction as seen from one account.
// Amount is negative when the account paid and positive when it received.
type TransactionResponse struct {
	ID                  string                 `json:"id"`
	Amount              decimal.Decimal        `json:"amount"`
	PaidOn              time.Time              `json:"paidOn"`
	FromAccountID       string                 `json:"fromAccountID"`
	FromAccountUsername string                 `json:"fromAccountUsername"`
	ToAccountID         string                 `json:"toAccountID,omitempty"`
	ToAccountUsername   string                 `json:"toAccountUsername,omitempty"`
	ToBiller            string                 `json:"toBiller,omitempty"`
	Description         string                 `json:"description"`
	TransactionType     domain.TransactionType `json:"transactionType"`
}

// ListTransactionsParams defines query parameters for an account's history.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is one page of an account's history.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
