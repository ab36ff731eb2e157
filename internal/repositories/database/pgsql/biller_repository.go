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

type PgxBillerRepository struct {
	BaseRepository
}

func newPgxBillerRepository(pool *pgxpool.Pool) *PgxBillerRepository {
	return &PgxBillerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BillerRepositoryFacade = (*PgxBillerRepository)(nil)

func (r *PgxBillerRepository) SaveBiller(ctx context.Context, biller domain.Biller) error {
	m := mapping.ToModelBiller(biller)
	query := `
		INSERT INTO billers (id, biller_code, name, reference_number, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := r.Pool.Exec(ctx, query, m.ID, m.BillerCode, m.Name, m.ReferenceNumber, m.CreatedAt); err != nil {
		return translateWriteError(err, "biller "+m.BillerCode)
	}
	return nil
}

func (r *PgxBillerRepository) FindBillerByCode(ctx context.Context, billerCode string) (*domain.Biller, error) {
	query := `SELECT id, biller_code, name, reference_number, created_at FROM billers WHERE biller_code = $1;`
	var m models.Biller
	err := r.Pool.QueryRow(ctx, query, billerCode).Scan(&m.ID, &m.BillerCode, &m.Name, &m.ReferenceNumber, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find biller %s: %w", billerCode, err)
	}
	biller := mapping.ToDomainBiller(m)
	return &biller, nil
}
