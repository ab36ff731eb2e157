package services

import (
	"context"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	"github.com/SscSPs/bank_simulator/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountLedgerReaderSvc defines read operations on the ledger
type AccountLedgerReaderSvc interface {
	// GetAccount retrieves an account by ID.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// GetBalance returns the current balance of an account.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// ExposureFor returns the credit aware balance of an account.
	ExposureFor(account domain.Account) decimal.Decimal

	// GetAccountExposure loads an account and returns its exposure.
	GetAccountExposure(ctx context.Context, accountID string) (decimal.Decimal, error)

	// ListAccounts returns the accounts owned by a user.
	ListAccounts(ctx context.Context, ownerID string) ([]domain.Account, error)

	// TotalExposure aggregates the exposure of every account owned by a user.
	TotalExposure(ctx context.Context, ownerID string) (decimal.Decimal, error)
}

// AccountLedgerWriterSvc defines the mutations the ledger owns
type AccountLedgerWriterSvc interface {
	// OpenAccount creates a new account with its balance set to the opening balance.
	OpenAccount(ctx context.Context, ownerID string, req dto.OpenAccountRequest) (*domain.Account, error)

	// ApplyDelta atomically adds delta to the balance in its own unit of work.
	ApplyDelta(ctx context.Context, accountID string, delta decimal.Decimal) (*domain.Account, error)

	// ApplyDeltaInTx adds delta to the balance inside the caller's unit of work.
	ApplyDeltaInTx(ctx context.Context, repos portsrepo.TxRepositories, accountID string, delta decimal.Decimal) (*domain.Account, error)
}

// AccountLedgerSvc is the single owner of account balances.
type AccountLedgerSvc interface {
	AccountLedgerReaderSvc
	AccountLedgerWriterSvc
}
