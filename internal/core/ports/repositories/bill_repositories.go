package repositories

import (
	"context"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
)

// BillReader defines read operations for bills
type BillReader interface {
	// FindBillByID retrieves a bill by its identifier.
	FindBillByID(ctx context.Context, billID string) (*domain.Bill, error)

	// FindOpenBillsForUserAndBiller returns the bills of userID owed to billerName
	// that are not yet paid, ordered by due date, then creation time, then ID.
	FindOpenBillsForUserAndBiller(ctx context.Context, userID string, billerName string) ([]domain.Bill, error)

	// ListBillsByUser returns every bill issued to userID, ordered by due date.
	ListBillsByUser(ctx context.Context, userID string) ([]domain.Bill, error)
}

// BillWriter defines write operations for bills
type BillWriter interface {
	// SaveBill persists a newly issued bill.
	SaveBill(ctx context.Context, bill domain.Bill) error
}

// BillTxRepository updates bills inside a unit of work.
type BillTxRepository interface {
	// UpdateBillSettlement stores the amount, status and paid date of a bill.
	UpdateBillSettlement(ctx context.Context, bill domain.Bill) error
}

// BillRepositoryFacade combines the pool level bill interfaces
type BillRepositoryFacade interface {
	BillReader
	BillWriter
}

// BillerReader defines read operations for billers
type BillerReader interface {
	FindBillerByCode(ctx context.Context, billerCode string) (*domain.Biller, error)
}

// BillerWriter defines write operations for billers
type BillerWriter interface {
	SaveBiller(ctx context.Context, biller domain.Biller) error
}

// BillerRepositoryFacade combines the biller interfaces
type BillerRepositoryFacade interface {
	BillerReader
	BillerWriter
}
