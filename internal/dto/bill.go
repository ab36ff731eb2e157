package dto

import (
	"time"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IssueBillRequest defines a bill issued to a user by a registered biller.
type IssueBillRequest struct {
	BilledUser      string          `json:"billedUser" binding:"required"`
	BillerCode      string          `json:"billerCode" binding:"required,number"`
	Amount          decimal.Decimal `json:"amount" binding:"money"`
	DueDate         time.Time       `json:"dueDate" binding:"required"`
	ReferenceNumber string          `json:"referenceNumber" binding:"required,number"`
	InvoiceNumber   string          `json:"invoiceNumber"`
	Description     string          `json:"description" binding:"max=300"`
}

// BillResponse defines the data returned for a bill.
type BillResponse struct {
	ID              string            `json:"id"`
	From            string            `json:"from"`
	Description     string            `json:"description"`
	Amount          decimal.Decimal   `json:"amount"`
	Outstanding     decimal.Decimal   `json:"outstanding"`
	Status          domain.BillStatus `json:"status"`
	DueDate         time.Time         `json:"dueDate"`
	ReferenceNumber string            `json:"referenceNumber"`
	InvoiceNumber   string            `json:"invoiceNumber"`
	PaidOn          *time.Time        `json:"paidOn,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// RegisterBillerRequest defines a new BPAY biller.
type RegisterBillerRequest struct {
	BillerCode      string `json:"billerCode" binding:"required,number,max=10"`
	Name            string `json:"name" binding:"required,max=100"`
	ReferenceNumber string `json:"referenceNumber" binding:"omitempty,number"`
}
