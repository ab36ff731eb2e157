package services

import (
	"context"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/SscSPs/bank_simulator/internal/dto"
)

// AccountSvcFacade exposes a user's own accounts and their history.
type AccountSvcFacade interface {
	OpenAccount(ctx context.Context, userID string, req dto.OpenAccountRequest) (*domain.Account, error)
	GetAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, userID string) (*dto.ListAccountsResponse, error)
	ListTransactions(ctx context.Context, userID string, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}
