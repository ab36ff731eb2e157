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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const billColumns = `id, billed_user, "from", linked_biller, description, amount, status, due_date, reference_number, invoice_number, paid_on, created_at, updated_at`

// billOrder is the settlement order: earliest due first, then oldest, then by ID.
const billOrder = ` ORDER BY due_date ASC, created_at ASC, id ASC`

type PgxBillRepository struct {
	BaseRepository
}

func newPgxBillRepository(pool *pgxpool.Pool) *PgxBillRepository {
	return &PgxBillRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BillRepositoryFacade = (*PgxBillRepository)(nil)

func scanBill(row pgx.Row) (domain.Bill, error) {
	var m models.Bill
	var linkedBiller *string
	err := row.Scan(
		&m.ID,
		&m.BilledUser,
		&m.From,
		&linkedBiller,
		&m.Description,
		&m.Amount,
		&m.Status,
		&m.DueDate,
		&m.ReferenceNumber,
		&m.InvoiceNumber,
		&m.PaidOn,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return domain.Bill{}, err
	}
	m.LinkedBiller = derefString(linkedBiller)
	return mapping.ToDomainBill(m), nil
}

func (r *PgxBillRepository) queryBills(ctx context.Context, query string, args ...any) ([]domain.Bill, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	bills := []domain.Bill{}
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill row: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill rows: %w", err)
	}
	return bills, nil
}

// SaveBill inserts a newly issued bill.
func (r *PgxBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	m := mapping.ToModelBill(bill)
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ID,
		m.BilledUser,
		m.From,
		nullIfEmpty(m.LinkedBiller),
		m.Description,
		m.Amount,
		m.Status,
		m.DueDate,
		m.ReferenceNumber,
		m.InvoiceNumber,
		m.PaidOn,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "bill "+m.ID)
	}
	return nil
}

// FindBillByID retrieves a bill by its ID.
func (r *PgxBillRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1;`
	bill, err := scanBill(r.Pool.QueryRow(ctx, query, billID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill %s: %w", billID, err)
	}
	return &bill, nil
}

func (r *PgxBillRepository) FindOpenBillsForUserAndBiller(ctx context.Context, userID string, billerName string) ([]domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE billed_user = $1 AND "from" = $2 AND status <> 'paid'` + billOrder + `;`
	return r.queryBills(ctx, query, userID, billerName)
}

func (r *PgxBillRepository) ListBillsByUser(ctx context.Context, userID string) ([]domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE billed_user = $1` + billOrder + `;`
	return r.queryBills(ctx, query, userID)
}

type pgxBillTxRepository struct {
	tx dbtx
}

var _ portsrepo.BillTxRepository = (*pgxBillTxRepository)(nil)

// UpdateBillSettlement writes the settlement outcome of one bill.
func (r *pgxBillTxRepository) UpdateBillSettlement(ctx context.Context, bill domain.Bill) error {
	query := `
		UPDATE bills
		SET amount = $2, status = $3, paid_on = $4, updated_at = $5
		WHERE id = $1;
	`
	cmdTag, err := r.tx.Exec(ctx, query, bill.ID, bill.Amount, string(bill.Status), bill.PaidOn, bill.UpdatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update bill "+bill.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: bill %s", apperrors.ErrNotFound, bill.ID)
	}
	return nil
}
