package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is the storage representation of a bill. From holds the biller name and
// LinkedBiller the biller ID.
type Bill struct {
	ID              string          `gorm:"column:id;primaryKey"`
	BilledUser      string          `gorm:"column:billed_user;not null;index:idx_bills_open"`
	From            string          `gorm:"column:from;not null;index:idx_bills_open"`
	LinkedBiller    string          `gorm:"column:linked_biller"`
	Description     string          `gorm:"column:description"`
	Amount          decimal.Decimal `gorm:"column:amount;type:text;not null"`
	Status          string          `gorm:"column:status;not null"`
	DueDate         time.Time       `gorm:"column:due_date"`
	ReferenceNumber string          `gorm:"column:reference_number"`
	InvoiceNumber   string          `gorm:"column:invoice_number"`
	PaidOn          *time.Time      `gorm:"column:paid_on"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

// TableName pins the table name for gorm.
func (Bill) TableName() string { return "bills" }

// Biller is the storage representation of a BPAY biller.
type Biller struct {
	ID              string    `gorm:"column:id;primaryKey"`
	BillerCode      string    `gorm:"column:biller_code;not null;uniqueIndex"`
	Name            string    `gorm:"column:name;not null"`
	ReferenceNumber string    `gorm:"column:reference_number"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

// TableName pins the table name for gorm.
func (Biller) TableName() string { return "billers" }
