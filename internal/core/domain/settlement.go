package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BillAllocation describes how much of a settlement went to one bill.
type BillAllocation struct {
	BillID        string          `json:"billID"`
	Paid          decimal.Decimal `json:"paid"`
	Status        BillStatus      `json:"status"`
	Remaining     decimal.Decimal `json:"remaining"`
	TransactionID string          `json:"transactionID"`
}

// SettlementResult summarizes a waterfall settlement.
type SettlementResult struct {
	Allocations []BillAllocation `json:"allocations"`
	Consumed    decimal.Decimal  `json:"consumed"`
	Refunded    decimal.Decimal  `json:"refunded"`
}

// SettlementRequest is a single payment to be allocated across a payer's bills.
type SettlementRequest struct {
	UserID          string
	FromAccountID   string
	Biller          Biller
	ReferenceNumber string
	Amount          decimal.Decimal
	Description     string
}

// BillSettlementError reports a settlement that stopped at BillID. Completed holds
// the allocations committed before the failure; they are not rolled back.
type BillSettlementError struct {
	BillID    string
	Completed []BillAllocation
	Err       error
}

func (e *BillSettlementError) Error() string {
	return fmt.Sprintf("settlement stopped at bill %s: %v", e.BillID, e.Err)
}

func (e *BillSettlementError) Unwrap() error {
	return e.Err
}
