package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits a money amount may carry.
const MoneyScale = 2

// AuditFields holds creation and modification timestamps.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidateAmount checks that amount is strictly positive and has at most two decimals.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero, got %s", apperrors.ErrInvalidAmount, amount.String())
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return fmt.Errorf("%w: amount %s has more than %d decimal places", apperrors.ErrInvalidAmount, amount.String(), MoneyScale)
	}
	return nil
}

// ParseAmount parses a caller supplied amount string and validates it.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", apperrors.ErrInvalidAmount, raw)
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}
