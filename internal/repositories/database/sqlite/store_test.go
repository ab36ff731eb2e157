package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	"github.com/SscSPs/bank_simulator/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SQLiteStoreTestSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (s *SQLiteStoreTestSuite) SetupTest() {
	db, err := database.NewSQLiteDB(filepath.Join(s.T().TempDir(), "banksim.db"), Models()...)
	s.Require().NoError(err)
	s.store = NewStore(db, 0)
	s.ctx = context.Background()
	s.T().Cleanup(NewRepositoryProvider(s.store).Close)
}

func (s *SQLiteStoreTestSuite) seedAccount(id, owner, acc, balance string) {
	now := time.Now().UTC()
	s.Require().NoError(s.store.SaveAccount(s.ctx, domain.Account{
		ID:             id,
		Type:           domain.Savings,
		Balance:        decimal.RequireFromString(balance),
		OpeningBalance: decimal.RequireFromString(balance),
		Owner:          owner,
		OwnerUsername:  owner,
		BSB:            "062000",
		AccountNumber:  acc,
		AuditFields:    domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}))
}

func (s *SQLiteStoreTestSuite) TestSaveAndFindAccount() {
	s.seedAccount("a1", "u1", "000000001", "10.50")

	acc, err := s.store.FindAccountByRoutingAndNumber(s.ctx, "062000", "000000001")
	s.Require().NoError(err)
	s.Equal("a1", acc.ID)
	s.Equal("10.50", acc.Balance.StringFixed(2))

	err = s.store.SaveAccount(s.ctx, domain.Account{ID: "a2", Type: domain.Savings, Owner: "u2", BSB: "062000", AccountNumber: "000000001"})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = s.store.FindAccountByID(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)

	accounts, err := s.store.ListAccountsByOwner(s.ctx, "u1")
	s.Require().NoError(err)
	s.Len(accounts, 1)
}

func (s *SQLiteStoreTestSuite) TestApplyDeltaBumpsVersion() {
	s.seedAccount("a1", "u1", "000000001", "100")

	err := s.store.WithinTx(s.ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		acc, err := repos.Accounts.ApplyDelta(ctx, "a1", decimal.RequireFromString("-0.10"), time.Now().UTC())
		if err != nil {
			return err
		}
		s.Equal("99.90", acc.Balance.StringFixed(2))
		return nil
	})
	s.Require().NoError(err)

	acc, err := s.store.FindAccountByID(s.ctx, "a1")
	s.Require().NoError(err)
	s.Equal("99.90", acc.Balance.StringFixed(2))
	s.Equal(int64(1), acc.Version)
}

func (s *SQLiteStoreTestSuite) TestRollbackDiscardsWrites() {
	s.seedAccount("a1", "u1", "000000001", "100")
	boom := errors.New("boom")

	err := s.store.WithinTx(s.ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if _, err := repos.Accounts.ApplyDelta(ctx, "a1", decimal.NewFromInt(-100), time.Now().UTC()); err != nil {
			return err
		}
		if err := repos.Transactions.SaveTransaction(ctx, domain.Transaction{ID: "t1", Amount: decimal.NewFromInt(100), FromAccountID: "a1", PaidOn: time.Now(), TransactionType: domain.PayAnyone}); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	acc, err := s.store.FindAccountByID(s.ctx, "a1")
	s.Require().NoError(err)
	s.True(acc.Balance.Equal(decimal.NewFromInt(100)))
	_, err = s.store.FindTransactionByID(s.ctx, "t1")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *SQLiteStoreTestSuite) TestConcurrentUnitsOfWork() {
	s.seedAccount("a1", "u1", "000000001", "100")
	s.seedAccount("a2", "u2", "000000002", "0")

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.WithinTx(s.ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
				if _, err := repos.Accounts.FindAccountsByIDsForUpdate(ctx, []string{"a1", "a2"}); err != nil {
					return err
				}
				if _, err := repos.Accounts.ApplyDelta(ctx, "a1", decimal.NewFromInt(-5), time.Now().UTC()); err != nil {
					return err
				}
				_, err := repos.Accounts.ApplyDelta(ctx, "a2", decimal.NewFromInt(5), time.Now().UTC())
				return err
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	a1, _ := s.store.FindAccountByID(s.ctx, "a1")
	a2, _ := s.store.FindAccountByID(s.ctx, "a2")
	s.Equal("50.00", a1.Balance.StringFixed(2))
	s.Equal("50.00", a2.Balance.StringFixed(2))
}

func (s *SQLiteStoreTestSuite) TestTransactionHistoryPages() {
	s.seedAccount("a1", "u1", "000000001", "100")
	s.seedAccount("a2", "u2", "000000002", "0")
	base := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.WithinTx(s.ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		for i, id := range []string{"t1", "t2", "t3"} {
			err := repos.Transactions.SaveTransaction(ctx, domain.Transaction{
				ID:              id,
				Amount:          decimal.NewFromInt(1),
				PaidOn:          base.Add(time.Duration(i) * time.Minute),
				FromAccountID:   "a2",
				ToAccountID:     "a1",
				TransactionType: domain.PayAnyone,
			})
			if err != nil {
				return err
			}
		}
		return nil
	}))

	page, next, err := s.store.ListTransactionsByAccountID(s.ctx, "a1", 2, nil)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal("t3", page[0].ID)
	s.Require().NotNil(next)

	page, next, err = s.store.ListTransactionsByAccountID(s.ctx, "a1", 2, next)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("t1", page[0].ID)
	s.Nil(next)
}

func (s *SQLiteStoreTestSuite) TestBillsOrderAndSettlement() {
	s.Require().NoError(s.store.SaveBiller(s.ctx, domain.Biller{ID: "bl1", BillerCode: "1234", Name: "Power Co"}))
	s.ErrorIs(s.store.SaveBiller(s.ctx, domain.Biller{ID: "bl2", BillerCode: "1234", Name: "Dup"}), apperrors.ErrDuplicate)

	due := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	for _, b := range []domain.Bill{
		{ID: "second", BilledUser: "u1", From: "Power Co", Amount: decimal.NewFromInt(30), Status: domain.BillUnpaid, DueDate: due.AddDate(0, 0, 1)},
		{ID: "first", BilledUser: "u1", From: "Power Co", Amount: decimal.NewFromInt(20), Status: domain.BillUnpaid, DueDate: due},
		{ID: "paid", BilledUser: "u1", From: "Power Co", Amount: decimal.NewFromInt(20), Status: domain.BillPaid, DueDate: due},
	} {
		s.Require().NoError(s.store.SaveBill(s.ctx, b))
	}

	open, err := s.store.FindOpenBillsForUserAndBiller(s.ctx, "u1", "Power Co")
	s.Require().NoError(err)
	s.Require().Len(open, 2)
	s.Equal("first", open[0].ID)
	s.Equal("second", open[1].ID)

	bill := open[0]
	bill.ApplyPayment(decimal.NewFromInt(20), time.Now().UTC())
	s.Require().NoError(s.store.WithinTx(s.ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		return repos.Bills.UpdateBillSettlement(ctx, bill)
	}))

	stored, err := s.store.FindBillByID(s.ctx, "first")
	s.Require().NoError(err)
	s.Equal(domain.BillPaid, stored.Status)
	s.Equal("20.00", stored.Amount.StringFixed(2))

	err = s.store.WithinTx(s.ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		return repos.Bills.UpdateBillSettlement(ctx, domain.Bill{ID: "ghost"})
	})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestSQLiteStoreTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStoreTestSuite))
}
