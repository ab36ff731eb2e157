package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	"github.com/SscSPs/bank_simulator/internal/models"
	"github.com/SscSPs/bank_simulator/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `id, type, balance, opening_balance, owner, owner_username, bsb, acc, version, created_at, updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.ID,
		&m.Type,
		&m.Balance,
		&m.OpeningBalance,
		&m.Owner,
		&m.OwnerUsername,
		&m.BSB,
		&m.AccountNumber,
		&m.Version,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

// SaveAccount inserts a newly opened account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ID,
		m.Type,
		m.Balance,
		m.OpeningBalance,
		m.Owner,
		m.OwnerUsername,
		m.BSB,
		m.AccountNumber,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, fmt.Sprintf("account %s-%s", m.BSB, m.AccountNumber))
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return &acc, nil
}

// FindAccountByRoutingAndNumber retrieves an account by BSB and account number.
func (r *PgxAccountRepository) FindAccountByRoutingAndNumber(ctx context.Context, bsb string, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE bsb = $1 AND acc = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, bsb, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s-%s: %w", bsb, accountNumber, err)
	}
	return &acc, nil
}

// ListAccountsByOwner retrieves the accounts of a user, oldest first.
func (r *PgxAccountRepository) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner = $1 ORDER BY created_at, id;`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for owner %s: %w", ownerID, err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for owner %s: %w", ownerID, err)
	}
	return accounts, nil
}

// pgxAccountTxRepository runs account statements on an open transaction.
type pgxAccountTxRepository struct {
	tx dbtx
}

var _ portsrepo.AccountTxRepository = (*pgxAccountTxRepository)(nil)

// FindAccountsByIDsForUpdate locks the rows in ascending ID order so concurrent
// transfers between the same pair of accounts cannot deadlock.
func (r *pgxAccountTxRepository) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	ids := append([]string(nil), accountIDs...)
	sort.Strings(ids)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ANY($1) ORDER BY id FOR UPDATE;`
	rows, err := r.tx.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account, len(ids))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for update: %w", err)
		}
		accountsMap[acc.ID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for update: %w", err)
	}

	var missing []string
	for _, id := range ids {
		if _, ok := accountsMap[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}
	return accountsMap, nil
}

// ApplyDelta adjusts the balance in a single statement; the row lock it takes
// is held until the surrounding transaction ends.
func (r *pgxAccountTxRepository) ApplyDelta(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $2, version = version + 1, updated_at = $3
		WHERE id = $1
		RETURNING ` + accountColumns + `;
	`
	acc, err := scanAccount(r.tx.QueryRow(ctx, query, accountID, delta, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, apperrors.NewAppError(500, "failed to update balance for account "+accountID, err)
	}
	return &acc, nil
}
