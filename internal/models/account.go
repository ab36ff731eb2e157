package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the storage representation of an account.
type Account struct {
	ID             string          `gorm:"column:id;primaryKey"`
	Type           string          `gorm:"column:type;not null"`
	Balance        decimal.Decimal `gorm:"column:balance;type:text;not null"`
	OpeningBalance decimal.Decimal `gorm:"column:opening_balance;type:text;not null"`
	Owner          string          `gorm:"column:owner;not null;index"`
	OwnerUsername  string          `gorm:"column:owner_username;not null"`
	BSB            string          `gorm:"column:bsb;not null;uniqueIndex:idx_accounts_routing"`
	AccountNumber  string          `gorm:"column:acc;not null;uniqueIndex:idx_accounts_routing"`
	Version        int64           `gorm:"column:version;not null;default:0"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
}

// TableName pins the table name for gorm.
func (Account) TableName() string { return "accounts" }
