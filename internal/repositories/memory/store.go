// Package memory is an in-process store used for local runs and tests.
// Per-account locks are held from first use in a unit of work until it ends,
// so concurrent balance updates on the same account are serialized.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
)

// Store keeps every entity in maps guarded by mu.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]domain.Account
	transactions map[string]domain.Transaction
	bills        map[string]domain.Bill
	billers      map[string]domain.Biller // keyed by biller code

	lockMu       sync.Mutex
	accountLocks map[string]chan struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]domain.Account),
		transactions: make(map[string]domain.Transaction),
		bills:        make(map[string]domain.Bill),
		billers:      make(map[string]domain.Biller),
		accountLocks: make(map[string]chan struct{}),
	}
}

// Ensure Store implements the repository ports
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
		Close:           func() {},
	}
}

// accountLock returns the semaphore guarding accountID, creating it on first use.
func (s *Store) accountLock(accountID string) chan struct{} {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	sem, ok := s.accountLocks[accountID]
	if !ok {
		sem = make(chan struct{}, 1)
		s.accountLocks[accountID] = sem
	}
	return sem
}

// WithinTx runs fn against staged copies and publishes them only if fn succeeds.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := newMemTx(s)
	defer tx.release()

	if err := fn(ctx, tx.repositories()); err != nil {
		return err
	}
	tx.commit()
	return nil
}
