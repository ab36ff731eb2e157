package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_simulator/internal/core/ports/services"
	"github.com/SscSPs/bank_simulator/internal/dto"
	"github.com/SscSPs/bank_simulator/internal/utils/mapping"
	"github.com/SscSPs/bank_simulator/pkg/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// transactionRecorder moves money through the ledger and appends the matching records.
type transactionRecorder struct {
	BaseService
	ledger  portssvc.AccountLedgerSvc
	txnRepo portsrepo.TransactionReader
	uow     portsrepo.UnitOfWork
	tracer  trace.Tracer
}

// RecorderOption configures the transaction recorder.
type RecorderOption func(*transactionRecorder)

// WithRecorderTracerProvider sets the tracer provider used for recorder spans.
func WithRecorderTracerProvider(tp trace.TracerProvider) RecorderOption {
	return func(r *transactionRecorder) {
		r.tracer = tp.Tracer(instrumentationName)
	}
}

// NewTransactionRecorder creates the recorder.
func NewTransactionRecorder(ledger portssvc.AccountLedgerSvc, txnRepo portsrepo.TransactionReader, uow portsrepo.UnitOfWork, options ...RecorderOption) portssvc.TransactionRecorderSvc {
	r := &transactionRecorder{
		ledger:  ledger,
		txnRepo: txnRepo,
		uow:     uow,
		tracer:  otel.Tracer(instrumentationName),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

var _ portssvc.TransactionRecorderSvc = (*transactionRecorder)(nil)

func (r *transactionRecorder) Transfer(ctx context.Context, fromAccountID string, toAccountID string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	ctx, span := r.tracer.Start(ctx, "recorder.transfer", trace.WithAttributes(
		attribute.String("from_account_id", fromAccountID),
		attribute.String("to_account_id", toAccountID),
		attribute.String("amount", amount.String()),
	))
	defer span.End()

	if err := domain.ValidateAmount(amount); err != nil {
		telemetry.HandleSpanBusinessErrorEvent(span, "invalid_amount", err)
		return nil, err
	}

	var recorded domain.Transaction
	err := r.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		accounts, err := repos.Accounts.FindAccountsByIDsForUpdate(ctx, []string{fromAccountID, toAccountID})
		if err != nil {
			return err
		}
		from, to := accounts[fromAccountID], accounts[toAccountID]

		if _, err := r.ledger.ApplyDeltaInTx(ctx, repos, fromAccountID, amount.Neg()); err != nil {
			return err
		}
		if _, err := r.ledger.ApplyDeltaInTx(ctx, repos, toAccountID, amount); err != nil {
			return err
		}

		recorded = domain.Transaction{
			ID:                  uuid.NewString(),
			Amount:              amount,
			PaidOn:              r.now(),
			FromAccountID:       from.ID,
			FromAccountUsername: from.OwnerUsername,
			ToAccountID:         to.ID,
			ToAccountUsername:   to.OwnerUsername,
			Description:         description,
			TransactionType:     domain.PayAnyone,
		}
		return repos.Transactions.SaveTransaction(ctx, recorded)
	})
	if err != nil {
		telemetry.HandleSpanError(span, "transfer failed", err)
		r.LogError(ctx, err, "Transfer failed",
			slog.String("from_account_id", fromAccountID),
			slog.String("to_account_id", toAccountID))
		return nil, fmt.Errorf("failed to transfer: %w", err)
	}

	r.LogInfo(ctx, "Transfer recorded",
		slog.String("transaction_id", recorded.ID),
		slog.String("amount", amount.String()))
	return &recorded, nil
}

func (r *transactionRecorder) PayBiller(ctx context.Context, fromAccountID string, biller domain.Biller, referenceNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	ctx, span := r.tracer.Start(ctx, "recorder.pay_biller", trace.WithAttributes(
		attribute.String("from_account_id", fromAccountID),
		attribute.String("biller_code", biller.BillerCode),
		attribute.String("amount", amount.String()),
	))
	defer span.End()

	if err := domain.ValidateAmount(amount); err != nil {
		telemetry.HandleSpanBusinessErrorEvent(span, "invalid_amount", err)
		return nil, err
	}

	var recorded *domain.Transaction
	err := r.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		from, err := r.ledger.ApplyDeltaInTx(ctx, repos, fromAccountID, amount.Neg())
		if err != nil {
			return err
		}
		recorded, err = r.RecordBillerPaymentInTx(ctx, repos, *from, biller, referenceNumber, amount, description)
		return err
	})
	if err != nil {
		telemetry.HandleSpanError(span, "biller payment failed", err)
		r.LogError(ctx, err, "Biller payment failed",
			slog.String("from_account_id", fromAccountID),
			slog.String("biller_code", biller.BillerCode))
		return nil, fmt.Errorf("failed to pay biller %s: %w", biller.BillerCode, err)
	}
	return recorded, nil
}

func (r *transactionRecorder) RecordBillerPaymentInTx(ctx context.Context, repos portsrepo.TxRepositories, from domain.Account, biller domain.Biller, referenceNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}
	txn := domain.Transaction{
		ID:                  uuid.NewString(),
		Amount:              amount,
		PaidOn:              r.now(),
		FromAccountID:       from.ID,
		FromAccountUsername: from.OwnerUsername,
		ToBiller:            biller.BillerCode,
		ToAccountUsername:   biller.Name,
		Description:         domain.BillerPaymentDescription(description, biller, referenceNumber),
		TransactionType:     domain.BPAY,
	}
	if err := repos.Transactions.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record biller payment: %w", err)
	}
	return &txn, nil
}

func (r *transactionRecorder) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := r.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (r *transactionRecorder) ListAccountTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	txns, nextToken, err := r.txnRepo.ListTransactionsByAccountID(ctx, accountID, params.Limit, params.NextToken)
	if err != nil {
		r.LogError(ctx, err, "Failed to list transactions", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}
	return &dto.ListTransactionsResponse{
		Transactions: mapping.ToTransactionResponses(txns, accountID),
		NextToken:    nextToken,
	}, nil
}
