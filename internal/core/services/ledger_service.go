package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_simulator/internal/core/ports/services"
	"github.com/SscSPs/bank_simulator/internal/dto"
	"github.com/SscSPs/bank_simulator/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService is the only component that changes account balances.
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	uow         portsrepo.UnitOfWork
}

// NewLedgerService creates the account ledger.
func NewLedgerService(accountRepo portsrepo.AccountRepositoryFacade, uow portsrepo.UnitOfWork) portssvc.AccountLedgerSvc {
	return &ledgerService{
		accountRepo: accountRepo,
		uow:         uow,
	}
}

var _ portssvc.AccountLedgerSvc = (*ledgerService)(nil)

func (s *ledgerService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	acc, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	return acc, nil
}

func (s *ledgerService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	acc, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return acc.Balance, nil
}

func (s *ledgerService) ExposureFor(account domain.Account) decimal.Decimal {
	return accounting.Exposure(account)
}

func (s *ledgerService) GetAccountExposure(ctx context.Context, accountID string) (decimal.Decimal, error) {
	acc, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.ExposureFor(*acc), nil
}

func (s *ledgerService) ListAccounts(ctx context.Context, ownerID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list accounts for %s: %w", ownerID, err)
	}
	return accounts, nil
}

func (s *ledgerService) TotalExposure(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	accounts, err := s.ListAccounts(ctx, ownerID)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.TotalExposure(accounts), nil
}

func (s *ledgerService) OpenAccount(ctx context.Context, ownerID string, req dto.OpenAccountRequest) (*domain.Account, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.Type)
	}
	if req.OpeningBalance.IsNegative() || !req.OpeningBalance.Equal(req.OpeningBalance.Round(domain.MoneyScale)) {
		return nil, fmt.Errorf("%w: opening balance %s", apperrors.ErrInvalidAmount, req.OpeningBalance.String())
	}

	now := s.now()
	account := domain.Account{
		ID:             uuid.NewString(),
		Type:           req.Type,
		Balance:        req.OpeningBalance,
		OpeningBalance: req.OpeningBalance,
		Owner:          ownerID,
		OwnerUsername:  req.OwnerUsername,
		BSB:            req.BSB,
		AccountNumber:  req.AccountNumber,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("owner_id", ownerID),
			slog.String("bsb", req.BSB))
		return nil, fmt.Errorf("failed to open account: %w", err)
	}

	s.LogInfo(ctx, "Account opened",
		slog.String("account_id", account.ID),
		slog.String("type", string(account.Type)))
	return &account, nil
}

func (s *ledgerService) ApplyDelta(ctx context.Context, accountID string, delta decimal.Decimal) (*domain.Account, error) {
	var updated *domain.Account
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		acc, err := s.ApplyDeltaInTx(ctx, repos, accountID, delta)
		if err != nil {
			return err
		}
		updated = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ledgerService) ApplyDeltaInTx(ctx context.Context, repos portsrepo.TxRepositories, accountID string, delta decimal.Decimal) (*domain.Account, error) {
	acc, err := repos.Accounts.ApplyDelta(ctx, accountID, delta, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to apply balance delta",
			slog.String("account_id", accountID),
			slog.String("delta", delta.String()))
		return nil, fmt.Errorf("failed to apply delta to account %s: %w", accountID, err)
	}
	s.LogDebug(ctx, "Balance updated",
		slog.String("account_id", accountID),
		slog.String("delta", delta.String()),
		slog.String("balance", acc.Balance.String()))
	return acc, nil
}
