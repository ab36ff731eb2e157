package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_simulator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_simulator/internal/core/ports/services"
	"github.com/SscSPs/bank_simulator/internal/dto"
	"github.com/google/uuid"
)

type billService struct {
	BaseService
	billRepo   portsrepo.BillRepositoryFacade
	billerRepo portsrepo.BillerRepositoryFacade
}

// NewBillService creates the service that issues bills and registers billers.
func NewBillService(billRepo portsrepo.BillRepositoryFacade, billerRepo portsrepo.BillerRepositoryFacade) portssvc.BillSvcFacade {
	return &billService{
		billRepo:   billRepo,
		billerRepo: billerRepo,
	}
}

var _ portssvc.BillSvcFacade = (*billService)(nil)

func (s *billService) ListBills(ctx context.Context, userID string) ([]domain.Bill, error) {
	bills, err := s.billRepo.ListBillsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills for %s: %w", userID, err)
	}
	return bills, nil
}

func (s *billService) GetBiller(ctx context.Context, billerCode string) (*domain.Biller, error) {
	biller, err := s.billerRepo.FindBillerByCode(ctx, billerCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get biller %s: %w", billerCode, err)
	}
	return biller, nil
}

func (s *billService) IssueBill(ctx context.Context, req dto.IssueBillRequest) (*domain.Bill, error) {
	if err := domain.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}
	biller, err := s.GetBiller(ctx, req.BillerCode)
	if err != nil {
		return nil, err
	}

	now := s.now()
	bill := domain.Bill{
		ID:              uuid.NewString(),
		BilledUser:      req.BilledUser,
		From:            biller.Name,
		BillerID:        biller.ID,
		Description:     req.Description,
		Amount:          req.Amount,
		Status:          domain.BillUnpaid,
		DueDate:         req.DueDate.UTC(),
		ReferenceNumber: req.ReferenceNumber,
		InvoiceNumber:   req.InvoiceNumber,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.billRepo.SaveBill(ctx, bill); err != nil {
		s.LogError(ctx, err, "Failed to save bill", slog.String("billed_user", req.BilledUser))
		return nil, fmt.Errorf("failed to issue bill: %w", err)
	}

	s.LogInfo(ctx, "Bill issued",
		slog.String("bill_id", bill.ID),
		slog.String("biller", biller.Name),
		slog.String("amount", bill.Amount.String()))
	return &bill, nil
}

func (s *billService) RegisterBiller(ctx context.Context, req dto.RegisterBillerRequest) (*domain.Biller, error) {
	biller := domain.Biller{
		ID:              uuid.NewString(),
		BillerCode:      req.BillerCode,
		Name:            req.Name,
		ReferenceNumber: req.ReferenceNumber,
		CreatedAt:       s.now(),
	}
	if err := s.billerRepo.SaveBiller(ctx, biller); err != nil {
		return nil, fmt.Errorf("failed to register biller %s: %w", req.BillerCode, err)
	}
	return &biller, nil
}
