package sqlite

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/SscSPs/bank_simulator/internal/models"
	"github.com/SscSPs/bank_simulator/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translateError(err, fmt.Sprintf("account %s-%s", m.BSB, m.AccountNumber))
	}
	return nil
}

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	var m models.Account
	if err := s.db.WithContext(ctx).Where("id = ?", accountID).First(&m).Error; err != nil {
		return nil, translateError(err, "account "+accountID)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (s *Store) FindAccountByRoutingAndNumber(ctx context.Context, bsb string, accountNumber string) (*domain.Account, error) {
	var m models.Account
	err := s.db.WithContext(ctx).Where("bsb = ? AND acc = ?", bsb, accountNumber).First(&m).Error
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("account %s-%s", bsb, accountNumber))
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (s *Store) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	var rows []models.Account
	if err := s.db.WithContext(ctx).Where("owner = ?", ownerID).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, translateError(err, "accounts of "+ownerID)
	}
	accounts := make([]domain.Account, 0, len(rows))
	for _, m := range rows {
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	return accounts, nil
}

type accountTxRepository struct {
	tx      *gorm.DB
	retries int
}

// FindAccountsByIDsForUpdate reads the accounts inside the transaction. SQLite
// has no row locks; the single connection keeps other units of work out.
func (r *accountTxRepository) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	ids := append([]string(nil), accountIDs...)
	sort.Strings(ids)

	var rows []models.Account
	if err := r.tx.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translateError(err, "accounts for update")
	}
	found := make(map[string]domain.Account, len(rows))
	for _, m := range rows {
		found[m.ID] = mapping.ToDomainAccount(m)
	}

	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}
	return found, nil
}

// ApplyDelta writes the new balance only if the version read is still current,
// retrying up to r.retries times before giving up with ErrConflict.
func (r *accountTxRepository) ApplyDelta(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) (*domain.Account, error) {
	for attempt := 0; attempt <= r.retries; attempt++ {
		var m models.Account
		if err := r.tx.WithContext(ctx).Where("id = ?", accountID).First(&m).Error; err != nil {
			return nil, translateError(err, "account "+accountID)
		}

		balance := m.Balance.Add(delta)
		res := r.tx.WithContext(ctx).Model(&models.Account{}).
			Where("id = ? AND version = ?", accountID, m.Version).
			Updates(map[string]any{
				"balance":    balance,
				"version":    m.Version + 1,
				"updated_at": now,
			})
		if res.Error != nil {
			return nil, translateError(res.Error, "account "+accountID)
		}
		if res.RowsAffected == 1 {
			m.Balance = balance
			m.Version++
			m.UpdatedAt = now
			acc := mapping.ToDomainAccount(m)
			return &acc, nil
		}
	}
	return nil, fmt.Errorf("%w: account %s changed %d times while updating its balance", apperrors.ErrConflict, accountID, r.retries+1)
}
