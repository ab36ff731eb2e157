package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByRoutingAndNumber retrieves an account by its BSB and account number.
	FindAccountByRoutingAndNumber(ctx context.Context, bsb string, accountNumber string) (*domain.Account, error)

	// ListAccountsByOwner retrieves all accounts owned by a user.
	ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a newly opened account.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTxRepository defines account operations that run inside a unit of work.
type AccountTxRepository interface {
	// FindAccountsByIDsForUpdate loads the accounts and holds a write lock on each
	// of them until the unit of work ends. Locks are taken in ascending ID order.
	FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ApplyDelta adds delta to the account balance and returns the updated account.
	ApplyDelta(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) (*domain.Account, error)
}

// AccountRepositoryFacade combines the pool level account interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
