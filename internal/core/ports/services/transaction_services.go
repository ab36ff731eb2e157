package services

import (
	"context"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	"github.com/SscSPs/bank_simulator/internal/dto"
	"github.com/shopspring/decimal"
)

// TransactionWriterSvc defines the money movements the recorder performs
type TransactionWriterSvc interface {
	// Transfer moves amount between two ledger accounts and records it once.
	Transfer(ctx context.Context, fromAccountID string, toAccountID string, amount decimal.Decimal, description string) (*domain.Transaction, error)

	// PayBiller debits amount from the payer and records a payment to an external biller.
	PayBiller(ctx context.Context, fromAccountID string, biller domain.Biller, referenceNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error)

	// RecordBillerPaymentInTx records a biller payment drawn from funds already
	// taken from the payer by the caller. The ledger is not touched.
	RecordBillerPaymentInTx(ctx context.Context, repos portsrepo.TxRepositories, from domain.Account, biller domain.Biller, referenceNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error)
}

// TransactionReaderSvc defines read operations on transaction history
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListAccountTransactions returns a page of an account's history with amounts signed for that account.
	ListAccountTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionRecorderSvc combines the recorder interfaces
type TransactionRecorderSvc interface {
	TransactionWriterSvc
	TransactionReaderSvc
}
