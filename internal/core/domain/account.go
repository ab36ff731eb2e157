package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies an account. Credit accounts are read inversely from the others.
type AccountType string

const (
	Savings  AccountType = "savings"
	Personal AccountType = "personal"
	Credit   AccountType = "credit"
	Debit    AccountType = "debit"
	Other    AccountType = "other"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Savings, Personal, Credit, Debit, Other:
		return true
	}
	return false
}

// Account is a customer account held in the ledger.
// For credit accounts Balance is the remaining credit and OpeningBalance the credit limit.
type Account struct {
	ID             string          `json:"id"`
	Type           AccountType     `json:"type"`
	Balance        decimal.Decimal `json:"balance"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Owner          string          `json:"owner"`
	OwnerUsername  string          `json:"ownerUsername"`
	BSB            string          `json:"bsb"`
	AccountNumber  string          `json:"accountNumber"`
	Version        int64           `json:"version"`
	AuditFields
}

// IsCredit reports whether the account is a credit account.
func (a Account) IsCredit() bool {
	return a.Type == Credit
}

// Exposure returns the economically meaningful balance: the balance itself for
// asset accounts, and the credit used (opening balance minus balance) for credit accounts.
func (a Account) Exposure() decimal.Decimal {
	if a.IsCredit() {
		return a.OpeningBalance.Sub(a.Balance)
	}
	return a.Balance
}

// Spendable is the amount that can still be drawn from the account.
func (a Account) Spendable() decimal.Decimal {
	return a.Balance
}
