package pgsql

import (
	"context"
	"log/slog"

	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	"github.com/SscSPs/bank_simulator/internal/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUnitOfWork binds the tx scoped repositories to one database transaction.
type PgxUnitOfWork struct {
	BaseRepository
}

func newPgxUnitOfWork(pool *pgxpool.Pool) *PgxUnitOfWork {
	return &PgxUnitOfWork{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UnitOfWork = (*PgxUnitOfWork)(nil)

func (u *PgxUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) (err error) {
	tx, err := u.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := u.Rollback(ctx, tx); rbErr != nil {
			middleware.GetLoggerFromCtx(ctx).Error("failed to rollback transaction", slog.String("error", rbErr.Error()))
		}
	}()

	repos := portsrepo.TxRepositories{
		Accounts:     &pgxAccountTxRepository{tx: tx},
		Transactions: &pgxTransactionTxRepository{tx: tx},
		Bills:        &pgxBillTxRepository{tx: tx},
	}
	if err = fn(ctx, repos); err != nil {
		return err
	}
	return u.Commit(ctx, tx)
}
