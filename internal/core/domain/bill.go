package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus tracks how much of a bill has been settled.
type BillStatus string

const (
	BillUnpaid  BillStatus = "unpaid"
	BillPartial BillStatus = "partial"
	BillPaid    BillStatus = "paid"
)

// Bill is a payable obligation owed by BilledUser to the biller named in From.
// Amount is the outstanding amount; it is left untouched once the bill is paid in full.
type Bill struct {
	ID              string          `json:"id"`
	BilledUser      string          `json:"billedUser"`
	From            string          `json:"from"`
	BillerID        string          `json:"billerID,omitempty"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Status          BillStatus      `json:"status"`
	DueDate         time.Time       `json:"dueDate"`
	ReferenceNumber string          `json:"referenceNumber"`
	InvoiceNumber   string          `json:"invoiceNumber"`
	PaidOn          *time.Time      `json:"paidOn,omitempty"`
	AuditFields
}

// Outstanding is what is still owed on the bill.
func (b Bill) Outstanding() decimal.Decimal {
	if b.Status == BillPaid {
		return decimal.Zero
	}
	return b.Amount
}

// IsOpen reports whether the bill still has an outstanding amount.
func (b Bill) IsOpen() bool {
	return b.Status != BillPaid
}

// ApplyPayment records a payment of paid against the bill. A payment covering the
// whole amount marks the bill paid; anything less reduces the outstanding amount
// and marks it partial.
func (b *Bill) ApplyPayment(paid decimal.Decimal, at time.Time) {
	if paid.GreaterThanOrEqual(b.Amount) {
		b.Status = BillPaid
	} else {
		b.Status = BillPartial
		b.Amount = b.Amount.Sub(paid)
	}
	b.PaidOn = &at
	b.UpdatedAt = at
}
