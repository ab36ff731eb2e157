package dto

import (
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest pays another customer's account ("Pay Anyone").
type TransferRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	BSB           string          `json:"bsb" binding:"required,len=6,number"`
	AccountNumber string          `json:"accountNumber" binding:"required,len=9,number"`
	Amount        decimal.Decimal `json:"amount" binding:"money"`
	Description   string          `json:"description" binding:"max=300"`
}

// PayBillsRequest pays a biller, settling the caller's open bills with it.
type PayBillsRequest struct {
	FromAccountID   string          `json:"fromAccountID" binding:"required"`
	BillerName      string          `json:"billerName" binding:"required"`
	BillerCode      string          `json:"billerCode" binding:"required,number"`
	ReferenceNumber string          `json:"referenceNumber" binding:"required,number"`
	Amount          decimal.Decimal `json:"amount" binding:"money"`
	Description     string          `json:"description" binding:"max=300"`
}

// SettlementResponse reports how a bill payment was allocated.
type SettlementResponse struct {
	Allocations []domain.BillAllocation `json:"allocations"`
	Consumed    decimal.Decimal         `json:"consumed"`
	Refunded    decimal.Decimal         `json:"refunded"`
}
