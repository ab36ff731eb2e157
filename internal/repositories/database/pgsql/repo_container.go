package pgsql

import (
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		BillRepo:        newPgxBillRepository(dbPool),
		BillerRepo:      newPgxBillerRepository(dbPool),
		UnitOfWork:      newPgxUnitOfWork(dbPool),
		Close:           dbPool.Close,
	}
}
