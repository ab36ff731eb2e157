package services

import (
	"context"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_simulator/internal/core/ports/services"
	"github.com/SscSPs/bank_simulator/internal/dto"
	"github.com/SscSPs/bank_simulator/internal/utils/accounting"
	"github.com/SscSPs/bank_simulator/internal/utils/mapping"
)

// accountService serves a user's own accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	ledger      portssvc.AccountLedgerSvc
	recorder    portssvc.TransactionReaderSvc
}

func NewAccountService(accountRepo portsrepo.AccountReader, ledger portssvc.AccountLedgerSvc, recorder portssvc.TransactionReaderSvc) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		ledger:      ledger,
		recorder:    recorder,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) OpenAccount(ctx context.Context, userID string, req dto.OpenAccountRequest) (*domain.Account, error) {
	return s.ledger.OpenAccount(ctx, userID, req)
}

func (s *accountService) GetAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	return ownedAccount(ctx, s.accountRepo, userID, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, userID string) (*dto.ListAccountsResponse, error) {
	accounts, err := s.ledger.ListAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapping.ToListAccountsResponse(accounts, accounting.TotalExposure(accounts)), nil
}

func (s *accountService) ListTransactions(ctx context.Context, userID string, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := ownedAccount(ctx, s.accountRepo, userID, accountID); err != nil {
		return nil, err
	}
	return s.recorder.ListAccountTransactions(ctx, accountID, params)
}
