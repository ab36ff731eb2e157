package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/SscSPs/bank_simulator/internal/utils/pagination"
)

func (s *Store) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txn, ok := s.transactions[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (s *Store) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	limit = pagination.NormalizeLimit(limit)

	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}

	s.mu.RLock()
	matching := []domain.Transaction{}
	for _, txn := range s.transactions {
		if txn.FromAccountID != accountID && txn.ToAccountID != accountID {
			continue
		}
		if cursor != nil && !cursor.Before(txn.PaidOn, txn.ID) {
			continue
		}
		matching = append(matching, txn)
	}
	s.mu.RUnlock()

	sort.Slice(matching, func(i, j int) bool {
		if matching[i].PaidOn.Equal(matching[j].PaidOn) {
			return matching[i].ID > matching[j].ID
		}
		return matching[i].PaidOn.After(matching[j].PaidOn)
	})

	if len(matching) <= limit {
		return matching, nil, nil
	}
	page := matching[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeCursor(last.PaidOn, last.ID)
	return page, &token, nil
}
