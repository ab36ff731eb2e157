package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// memTx stages writes until commit. It is used by a single goroutine.
type memTx struct {
	store    *Store
	held     map[string]chan struct{}
	accounts map[string]domain.Account
	txns     []domain.Transaction
	bills    map[string]domain.Bill
}

func newMemTx(store *Store) *memTx {
	return &memTx{
		store:    store,
		held:     make(map[string]chan struct{}),
		accounts: make(map[string]domain.Account),
		bills:    make(map[string]domain.Bill),
	}
}

func (t *memTx) repositories() portsrepo.TxRepositories {
	return portsrepo.TxRepositories{
		Accounts:     (*txAccounts)(t),
		Transactions: (*txTransactions)(t),
		Bills:        (*txBills)(t),
	}
}

// lock acquires the account locks not yet held, in ascending ID order.
func (t *memTx) lock(ctx context.Context, accountIDs []string) error {
	ids := append([]string(nil), accountIDs...)
	sort.Strings(ids)
	for _, id := range ids {
		if _, ok := t.held[id]; ok {
			continue
		}
		sem := t.store.accountLock(id)
		select {
		case sem <- struct{}{}:
			t.held[id] = sem
		case <-ctx.Done():
			return fmt.Errorf("waiting for lock on account %s: %w", id, ctx.Err())
		}
	}
	return nil
}

func (t *memTx) release() {
	for id, sem := range t.held {
		<-sem
		delete(t.held, id)
	}
}

func (t *memTx) account(accountID string) (domain.Account, bool) {
	if acc, ok := t.accounts[accountID]; ok {
		return acc, true
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	acc, ok := t.store.accounts[accountID]
	return acc, ok
}

func (t *memTx) commit() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for id, acc := range t.accounts {
		t.store.accounts[id] = acc
	}
	for _, txn := range t.txns {
		t.store.transactions[txn.ID] = txn
	}
	for id, bill := range t.bills {
		t.store.bills[id] = bill
	}
}

type txAccounts memTx

func (a *txAccounts) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	t := (*memTx)(a)
	if err := t.lock(ctx, accountIDs); err != nil {
		return nil, err
	}

	found := make(map[string]domain.Account, len(accountIDs))
	var missing []string
	for _, id := range accountIDs {
		acc, ok := t.account(id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		found[id] = acc
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}
	return found, nil
}

func (a *txAccounts) ApplyDelta(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) (*domain.Account, error) {
	t := (*memTx)(a)
	if err := t.lock(ctx, []string{accountID}); err != nil {
		return nil, err
	}

	acc, ok := t.account(accountID)
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	acc.Balance = acc.Balance.Add(delta)
	acc.Version++
	acc.UpdatedAt = now
	t.accounts[accountID] = acc
	return &acc, nil
}

type txTransactions memTx

func (r *txTransactions) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	t := (*memTx)(r)
	t.store.mu.RLock()
	_, exists := t.store.transactions[txn.ID]
	t.store.mu.RUnlock()
	if exists {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.ID)
	}
	for _, staged := range t.txns {
		if staged.ID == txn.ID {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.ID)
		}
	}
	t.txns = append(t.txns, txn)
	return nil
}

type txBills memTx

func (r *txBills) UpdateBillSettlement(ctx context.Context, bill domain.Bill) error {
	t := (*memTx)(r)
	if _, ok := t.bills[bill.ID]; !ok {
		t.store.mu.RLock()
		_, ok = t.store.bills[bill.ID]
		t.store.mu.RUnlock()
		if !ok {
			return fmt.Errorf("%w: bill %s", apperrors.ErrNotFound, bill.ID)
		}
	}
	t.bills[bill.ID] = bill
	return nil
}
