package services

import (
	"context"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
)

// SettlementEngineSvc allocates a payment across a payer's open bills.
type SettlementEngineSvc interface {
	// Settle applies req.Amount to the open bills of req.UserID owed to req.Biller,
	// oldest due date first, and refunds whatever is left to the paying account.
	Settle(ctx context.Context, req domain.SettlementRequest) (*domain.SettlementResult, error)
}
