// Package sqlite stores the ledger in a single SQLite file through gorm.
// The database is opened with one connection, so units of work run one at a
// time; balance updates additionally compare the row version before writing.
package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	"github.com/SscSPs/bank_simulator/internal/models"
	"gorm.io/gorm"
)

// DefaultCASRetries is used when the caller passes a non-positive retry count.
const DefaultCASRetries = 3

// Models lists the tables the store migrates.
func Models() []any {
	return []any{&models.Account{}, &models.Transaction{}, &models.Biller{}, &models.Bill{}}
}

// Store implements the repository ports on a gorm connection.
type Store struct {
	db         *gorm.DB
	casRetries int
}

// NewStore wraps db. casRetries bounds how often a balance update is retried
// after losing a version check.
func NewStore(db *gorm.DB, casRetries int) *Store {
	if casRetries <= 0 {
		casRetries = DefaultCASRetries
	}
	return &Store{db: db, casRetries: casRetries}
}

var (
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.TransactionReader       = (*Store)(nil)
	_ portsrepo.BillRepositoryFacade    = (*Store)(nil)
	_ portsrepo.BillerRepositoryFacade  = (*Store)(nil)
	_ portsrepo.UnitOfWork              = (*Store)(nil)
)

// NewRepositoryProvider exposes a store through the repository ports.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     store,
		TransactionRepo: store,
		BillRepo:        store,
		BillerRepo:      store,
		UnitOfWork:      store,
		Close: func() {
			if sqlDB, err := store.db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		},
	}
}

// WithinTx runs fn in a gorm transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, portsrepo.TxRepositories{
			Accounts:     &accountTxRepository{tx: tx, retries: s.casRetries},
			Transactions: &transactionTxRepository{tx: tx},
			Bills:        &billTxRepository{tx: tx},
		})
	})
}

// translateError maps gorm errors onto the domain sentinels.
func translateError(err error, what string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s already exists", apperrors.ErrDuplicate, what)
	default:
		return apperrors.NewAppError(500, "storage error on "+what, err)
	}
}
