package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	"github.com/SscSPs/bank_simulator/internal/models"
	"github.com/SscSPs/bank_simulator/internal/utils/mapping"
	"github.com/SscSPs/bank_simulator/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `id, description, amount, paid_on, from_account, from_account_username, to_account, to_biller, to_account_username, transaction_type`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionReader = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var m models.Transaction
	var fromAccount, toAccount, toBiller *string
	err := row.Scan(
		&m.ID,
		&m.Description,
		&m.Amount,
		&m.PaidOn,
		&fromAccount,
		&m.FromAccountUsername,
		&toAccount,
		&toBiller,
		&m.ToAccountUsername,
		&m.TransactionType,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	m.FromAccount = derefString(fromAccount)
	m.ToAccount = derefString(toAccount)
	m.ToBiller = derefString(toBiller)
	return mapping.ToDomainTransaction(m), nil
}

// FindTransactionByID retrieves one transaction record.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// ListTransactionsByAccountID pages through an account's records, newest first,
// using a (paid_on, id) keyset cursor.
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	limit = pagination.NormalizeLimit(limit)
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE (from_account = $1 OR to_account = $1)`
	args := []any{accountID}

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (paid_on, id) < ($2, $3)`
		args = append(args, cursor.At, cursor.ID)
	}
	query += fmt.Sprintf(` ORDER BY paid_on DESC, id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for account "+accountID, err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0, fetchLimit)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for account "+accountID, err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for account "+accountID, err)
	}

	if len(txns) <= limit {
		return txns, nil, nil
	}
	txns = txns[:limit]
	last := txns[limit-1]
	token := pagination.EncodeCursor(last.PaidOn, last.ID)
	return txns, &token, nil
}

type pgxTransactionTxRepository struct {
	tx dbtx
}

var _ portsrepo.TransactionTxRepository = (*pgxTransactionTxRepository)(nil)

// SaveTransaction appends a record. Records are never updated afterwards.
func (r *pgxTransactionTxRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.tx.Exec(ctx, query,
		m.ID,
		m.Description,
		m.Amount,
		m.PaidOn,
		nullIfEmpty(m.FromAccount),
		m.FromAccountUsername,
		nullIfEmpty(m.ToAccount),
		nullIfEmpty(m.ToBiller),
		m.ToAccountUsername,
		m.TransactionType,
	)
	if err != nil {
		return translateWriteError(err, "transaction "+m.ID)
	}
	return nil
}
