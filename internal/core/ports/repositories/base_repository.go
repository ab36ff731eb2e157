package repositories

import (
	"context"
)

// TxRepositories are repositories bound to a single unit of work.
type TxRepositories struct {
	Accounts     AccountTxRepository
	Transactions TransactionTxRepository
	Bills        BillTxRepository
}

// UnitOfWork runs fn inside one storage transaction. The transaction commits when fn
// returns nil and rolls back otherwise; nothing fn wrote is observable after a rollback.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
