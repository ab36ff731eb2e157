package services

import (
	"context"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/SscSPs/bank_simulator/internal/dto"
	"github.com/shopspring/decimal"
)

// PaymentSvcFacade is the entry point callers use to move money.
type PaymentSvcFacade interface {
	// Transfer pays another customer's account identified by BSB and account number.
	Transfer(ctx context.Context, userID string, req dto.TransferRequest) (*domain.Transaction, error)

	// PayBills settles the caller's bills with a biller from one of their accounts.
	PayBills(ctx context.Context, userID string, req dto.PayBillsRequest) (*domain.SettlementResult, error)

	// GetAccountExposure returns the exposure of an account the caller owns.
	GetAccountExposure(ctx context.Context, userID string, accountID string) (decimal.Decimal, error)
}
