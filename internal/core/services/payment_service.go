package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_simulator/internal/core/ports/services"
	"github.com/SscSPs/bank_simulator/internal/dto"
	"github.com/shopspring/decimal"
)

type paymentService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	billerRepo  portsrepo.BillerReader
	ledger      portssvc.AccountLedgerReaderSvc
	validator   portssvc.TransferValidatorSvc
	engine      portssvc.SettlementEngineSvc
}

// NewPaymentService creates the payment facade.
func NewPaymentService(
	accountRepo portsrepo.AccountReader,
	billerRepo portsrepo.BillerReader,
	ledger portssvc.AccountLedgerReaderSvc,
	validator portssvc.TransferValidatorSvc,
	engine portssvc.SettlementEngineSvc,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		accountRepo: accountRepo,
		billerRepo:  billerRepo,
		ledger:      ledger,
		validator:   validator,
		engine:      engine,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// ownedAccount loads an account and hides it from anyone but its owner.
func ownedAccount(ctx context.Context, repo portsrepo.AccountReader, userID string, accountID string) (*domain.Account, error) {
	acc, err := repo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	if acc.Owner != userID {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return acc, nil
}

func (s *paymentService) Transfer(ctx context.Context, userID string, req dto.TransferRequest) (*domain.Transaction, error) {
	from, err := ownedAccount(ctx, s.accountRepo, userID, req.FromAccountID)
	if err != nil {
		s.LogDebug(ctx, "Transfer source not available to user",
			slog.String("user_id", userID),
			slog.String("account_id", req.FromAccountID))
		return nil, err
	}
	return s.validator.ValidateAndTransfer(ctx, *from, s.accountRepo.FindAccountByRoutingAndNumber,
		req.BSB, req.AccountNumber, req.Amount, req.Description)
}

func (s *paymentService) PayBills(ctx context.Context, userID string, req dto.PayBillsRequest) (*domain.SettlementResult, error) {
	from, err := ownedAccount(ctx, s.accountRepo, userID, req.FromAccountID)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}
	if from.Spendable().LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: account %s cannot cover %s", apperrors.ErrInsufficientFunds, from.ID, req.Amount.String())
	}

	biller, err := s.billerRepo.FindBillerByCode(ctx, req.BillerCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: biller code %s", apperrors.ErrNotFound, req.BillerCode)
		}
		return nil, fmt.Errorf("failed to look up biller %s: %w", req.BillerCode, err)
	}
	if !strings.EqualFold(strings.TrimSpace(biller.Name), strings.TrimSpace(req.BillerName)) {
		return nil, fmt.Errorf("%w: biller code %s does not belong to %q", apperrors.ErrValidation, req.BillerCode, req.BillerName)
	}

	return s.engine.Settle(ctx, domain.SettlementRequest{
		UserID:          userID,
		FromAccountID:   from.ID,
		Biller:          *biller,
		ReferenceNumber: req.ReferenceNumber,
		Amount:          req.Amount,
		Description:     req.Description,
	})
}

func (s *paymentService) GetAccountExposure(ctx context.Context, userID string, accountID string) (decimal.Decimal, error) {
	acc, err := ownedAccount(ctx, s.accountRepo, userID, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.ledger.ExposureFor(*acc), nil
}
