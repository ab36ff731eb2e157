package repositories

import (
	"context"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
)

// TransactionReader defines read operations for transaction records
type TransactionReader interface {
	// FindTransactionByID retrieves a single transaction record.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccountID returns records where the account is payer or receiver,
	// newest first, and a token for the next page when more records exist.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionTxRepository appends transaction records inside a unit of work.
type TransactionTxRepository interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
}
