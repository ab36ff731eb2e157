package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the storage representation of a transaction record.
// Empty counterparties are stored as empty strings.
type Transaction struct {
	ID                  string          `gorm:"column:id;primaryKey"`
	Description         string          `gorm:"column:description"`
	Amount              decimal.Decimal `gorm:"column:amount;type:text;not null"`
	PaidOn              time.Time       `gorm:"column:paid_on;not null;index"`
	FromAccount         string          `gorm:"column:from_account;index"`
	FromAccountUsername string          `gorm:"column:from_account_username"`
	ToAccount           string          `gorm:"column:to_account;index"`
	ToBiller            string          `gorm:"column:to_biller"`
	ToAccountUsername   string          `gorm:"column:to_account_username"`
	TransactionType     string          `gorm:"column:transaction_type;not null"`
}

// TableName pins the table name for gorm.
func (Transaction) TableName() string { return "transactions" }
