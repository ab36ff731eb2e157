package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_simulator/internal/core/ports/services"
	"github.com/SscSPs/bank_simulator/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testEpoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedAccount(t *testing.T, store *memory.Store, acc domain.Account) domain.Account {
	t.Helper()
	if acc.Type == "" {
		acc.Type = domain.Savings
	}
	if acc.OpeningBalance.IsZero() {
		acc.OpeningBalance = acc.Balance
	}
	if acc.BSB == "" {
		acc.BSB = "062000"
	}
	acc.CreatedAt = testEpoch
	acc.UpdatedAt = testEpoch
	require.NoError(t, store.SaveAccount(context.Background(), acc))
	return acc
}

func seedBill(t *testing.T, store *memory.Store, id, user, biller, amount string, due time.Time) domain.Bill {
	t.Helper()
	bill := domain.Bill{
		ID:          id,
		BilledUser:  user,
		From:        biller,
		Amount:      dec(amount),
		Status:      domain.BillUnpaid,
		DueDate:     due,
		AuditFields: domain.AuditFields{CreatedAt: testEpoch, UpdatedAt: testEpoch},
	}
	require.NoError(t, store.SaveBill(context.Background(), bill))
	return bill
}

func balanceOf(t *testing.T, store *memory.Store, accountID string) decimal.Decimal {
	t.Helper()
	acc, err := store.FindAccountByID(context.Background(), accountID)
	require.NoError(t, err)
	return acc.Balance
}

func historyOf(t *testing.T, store *memory.Store, accountID string) []domain.Transaction {
	t.Helper()
	txns, _, err := store.ListTransactionsByAccountID(context.Background(), accountID, 100, nil)
	require.NoError(t, err)
	return txns
}

// faultyUnitOfWork fails the unit of work whose 1-based index is in failOn.
type faultyUnitOfWork struct {
	inner  portsrepo.UnitOfWork
	failOn map[int]error

	mu    sync.Mutex
	calls int
}

func (f *faultyUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	f.mu.Lock()
	f.calls++
	injected := f.failOn[f.calls]
	f.mu.Unlock()

	return f.inner.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if err := fn(ctx, repos); err != nil {
			return err
		}
		return injected
	})
}

var errInjected = errors.New("injected storage failure")

// cancellingUnitOfWork cancels the caller's context once the given number of
// units of work have committed.
type cancellingUnitOfWork struct {
	inner  portsrepo.UnitOfWork
	after  int
	cancel context.CancelFunc

	mu        sync.Mutex
	committed int
}

func (c *cancellingUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	if err := c.inner.WithinTx(ctx, fn); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.committed++
	if c.committed == c.after {
		c.cancel()
	}
	return nil
}

// --- Mock TransactionWriterSvc ---
type MockTransactionWriter struct {
	mock.Mock
}

var _ portssvc.TransactionWriterSvc = (*MockTransactionWriter)(nil)

func (m *MockTransactionWriter) Transfer(ctx context.Context, fromAccountID string, toAccountID string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	args := m.Called(ctx, fromAccountID, toAccountID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionWriter) PayBiller(ctx context.Context, fromAccountID string, biller domain.Biller, referenceNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	args := m.Called(ctx, fromAccountID, biller, referenceNumber, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionWriter) RecordBillerPaymentInTx(ctx context.Context, repos portsrepo.TxRepositories, from domain.Account, biller domain.Biller, referenceNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	args := m.Called(ctx, repos, from, biller, referenceNumber, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Mock TransferValidatorSvc ---
type MockTransferValidator struct {
	mock.Mock
}

var _ portssvc.TransferValidatorSvc = (*MockTransferValidator)(nil)

func (m *MockTransferValidator) ValidateAndTransfer(ctx context.Context, from domain.Account, lookup portssvc.DestinationLookup, bsb string, accountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	// lookup is a func value and cannot be matched; tests assert on the other arguments.
	args := m.Called(ctx, from, bsb, accountNumber, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Mock SettlementEngineSvc ---
type MockSettlementEngine struct {
	mock.Mock
}

var _ portssvc.SettlementEngineSvc = (*MockSettlementEngine)(nil)

func (m *MockSettlementEngine) Settle(ctx context.Context, req domain.SettlementRequest) (*domain.SettlementResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementResult), args.Error(1)
}
