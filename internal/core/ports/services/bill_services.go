package services

import (
	"context"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/SscSPs/bank_simulator/internal/dto"
)

// BillReaderSvc defines read operations on bills and billers
type BillReaderSvc interface {
	ListBills(ctx context.Context, userID string) ([]domain.Bill, error)
	GetBiller(ctx context.Context, billerCode string) (*domain.Biller, error)
}

// BillWriterSvc defines bill issuance and biller registration
type BillWriterSvc interface {
	IssueBill(ctx context.Context, req dto.IssueBillRequest) (*domain.Bill, error)
	RegisterBiller(ctx context.Context, req dto.RegisterBillerRequest) (*domain.Biller, error)
}

// BillSvcFacade combines the bill interfaces
type BillSvcFacade interface {
	BillReaderSvc
	BillWriterSvc
}
