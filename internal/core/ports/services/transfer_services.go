package services

import (
	"context"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DestinationLookup resolves a transfer destination by BSB and account number.
type DestinationLookup func(ctx context.Context, bsb string, accountNumber string) (*domain.Account, error)

// TransferValidatorSvc guards peer transfers.
type TransferValidatorSvc interface {
	// ValidateAndTransfer checks amount, funds, destination and ownership, in that
	// order, before handing the transfer to the recorder.
	ValidateAndTransfer(ctx context.Context, from domain.Account, lookup DestinationLookup, bsb string, accountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error)
}
