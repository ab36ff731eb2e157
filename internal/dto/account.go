package dto

import (
	"time"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenAccountRequest defines the data needed to open a new account.
// For credit accounts OpeningBalance is the credit limit.
type OpenAccountRequest struct {
	Type           domain.AccountType `json:"type" binding:"required,oneof=savings personal credit debit other"`
	OpeningBalance decimal.Decimal    `json:"openingBalance" binding:"balance"`
	OwnerUsername  string             `json:"ownerUsername" binding:"required,max=100"`
	BSB            string             `json:"bsb" binding:"required,len=6,number"`
	AccountNumber  string             `json:"accountNumber" binding:"required,len=9,number"`
}

// AccountResponse defines the data returned for an account.
// CreditLimit and CreditUsed are only set for credit accounts.
type AccountResponse struct {
	ID             string             `json:"id"`
	Type           domain.AccountType `json:"type"`
	Balance        decimal.Decimal    `json:"balance"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	Exposure       decimal.Decimal    `json:"exposure"`
	CreditLimit    *decimal.Decimal   `json:"creditLimit,omitempty"`
	CreditUsed     *decimal.Decimal   `json:"creditUsed,omitempty"`
	OwnerUsername  string             `json:"ownerUsername"`
	BSB            string             `json:"bsb"`
	AccountNumber  string             `json:"accountNumber"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// ListAccountsResponse lists a user's accounts with their combined exposure.
type ListAccountsResponse struct {
	Accounts      []AccountResponse `json:"accounts"`
	TotalExposure decimal.Decimal   `json:"totalExposure"`
}

// AccountExposureResponse defines the data returned for an exposure query.
type AccountExposureResponse struct {
	AccountID string          `json:"accountID"`
	Exposure  decimal.Decimal `json:"exposure"`
}
