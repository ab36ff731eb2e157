package sqlite

import (
	"context"
	"fmt"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/SscSPs/bank_simulator/internal/models"
	"github.com/SscSPs/bank_simulator/internal/utils/mapping"
	"github.com/SscSPs/bank_simulator/internal/utils/pagination"
	"gorm.io/gorm"
)

func (s *Store) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var m models.Transaction
	if err := s.db.WithContext(ctx).Where("id = ?", transactionID).First(&m).Error; err != nil {
		return nil, translateError(err, "transaction "+transactionID)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

func (s *Store) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	limit = pagination.NormalizeLimit(limit)

	q := s.db.WithContext(ctx).Where("(from_account = ? OR to_account = ?)", accountID, accountID)
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		at := cursor.At.UTC()
		q = q.Where("(paid_on < ? OR (paid_on = ? AND id < ?))", at, at, cursor.ID)
	}

	var rows []models.Transaction
	if err := q.Order("paid_on DESC, id DESC").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, nil, translateError(err, "transactions of "+accountID)
	}

	var next *string
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[limit-1]
		token := pagination.EncodeCursor(last.PaidOn, last.ID)
		next = &token
	}
	txns := make([]domain.Transaction, 0, len(rows))
	for _, m := range rows {
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	return txns, next, nil
}

type transactionTxRepository struct {
	tx *gorm.DB
}

func (r *transactionTxRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	m.PaidOn = m.PaidOn.UTC()
	if err := r.tx.WithContext(ctx).Create(&m).Error; err != nil {
		return translateError(err, "transaction "+m.ID)
	}
	return nil
}
