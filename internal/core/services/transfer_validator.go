package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portssvc "github.com/SscSPs/bank_simulator/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type transferValidator struct {
	BaseService
	recorder portssvc.TransactionWriterSvc
}

// NewTransferValidator creates the guard in front of peer transfers.
func NewTransferValidator(recorder portssvc.TransactionWriterSvc) portssvc.TransferValidatorSvc {
	return &transferValidator{recorder: recorder}
}

var _ portssvc.TransferValidatorSvc = (*transferValidator)(nil)

func (v *transferValidator) ValidateAndTransfer(ctx context.Context, from domain.Account, lookup portssvc.DestinationLookup, bsb string, accountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	if from.Spendable().LessThan(amount) {
		v.LogInfo(ctx, "Transfer rejected for insufficient funds",
			slog.String("from_account_id", from.ID),
			slog.String("amount", amount.String()))
		return nil, fmt.Errorf("%w: account %s cannot cover %s", apperrors.ErrInsufficientFunds, from.ID, amount.String())
	}

	to, err := lookup(ctx, bsb, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s-%s", apperrors.ErrRecipientNotFound, bsb, accountNumber)
		}
		return nil, fmt.Errorf("failed to look up recipient %s-%s: %w", bsb, accountNumber, err)
	}

	if to.Owner == from.Owner {
		return nil, fmt.Errorf("%w: accounts %s and %s share an owner", apperrors.ErrSelfTransferNotAllowed, from.ID, to.ID)
	}

	return v.recorder.Transfer(ctx, from.ID, to.ID, amount, description)
}
