package sqlite

import (
	"context"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/SscSPs/bank_simulator/internal/models"
	"github.com/SscSPs/bank_simulator/internal/utils/mapping"
	"gorm.io/gorm"
)

const billOrder = "due_date ASC, created_at ASC, id ASC"

func (s *Store) SaveBill(ctx context.Context, bill domain.Bill) error {
	m := mapping.ToModelBill(bill)
	m.DueDate = m.DueDate.UTC()
	m.CreatedAt = m.CreatedAt.UTC()
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translateError(err, "bill "+m.ID)
	}
	return nil
}

func (s *Store) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	var m models.Bill
	if err := s.db.WithContext(ctx).Where("id = ?", billID).First(&m).Error; err != nil {
		return nil, translateError(err, "bill "+billID)
	}
	bill := mapping.ToDomainBill(m)
	return &bill, nil
}

func (s *Store) FindOpenBillsForUserAndBiller(ctx context.Context, userID string, billerName string) ([]domain.Bill, error) {
	q := s.db.WithContext(ctx).
		Where(map[string]any{"billed_user": userID, "from": billerName}).
		Where("status <> ?", string(domain.BillPaid))
	return findBills(q)
}

func (s *Store) ListBillsByUser(ctx context.Context, userID string) ([]domain.Bill, error) {
	return findBills(s.db.WithContext(ctx).Where("billed_user = ?", userID))
}

func findBills(q *gorm.DB) ([]domain.Bill, error) {
	var rows []models.Bill
	if err := q.Order(billOrder).Find(&rows).Error; err != nil {
		return nil, translateError(err, "bills")
	}
	bills := make([]domain.Bill, 0, len(rows))
	for _, m := range rows {
		bills = append(bills, mapping.ToDomainBill(m))
	}
	return bills, nil
}

func (s *Store) SaveBiller(ctx context.Context, biller domain.Biller) error {
	m := mapping.ToModelBiller(biller)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translateError(err, "biller "+m.BillerCode)
	}
	return nil
}

func (s *Store) FindBillerByCode(ctx context.Context, billerCode string) (*domain.Biller, error) {
	var m models.Biller
	if err := s.db.WithContext(ctx).Where("biller_code = ?", billerCode).First(&m).Error; err != nil {
		return nil, translateError(err, "biller "+billerCode)
	}
	biller := mapping.ToDomainBiller(m)
	return &biller, nil
}

type billTxRepository struct {
	tx *gorm.DB
}

func (r *billTxRepository) UpdateBillSettlement(ctx context.Context, bill domain.Bill) error {
	res := r.tx.WithContext(ctx).Model(&models.Bill{}).
		Where("id = ?", bill.ID).
		Updates(map[string]any{
			"amount":     bill.Amount,
			"status":     string(bill.Status),
			"paid_on":    bill.PaidOn,
			"updated_at": bill.UpdatedAt,
		})
	if res.Error != nil {
		return translateError(res.Error, "bill "+bill.ID)
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "bill "+bill.ID)
	}
	return nil
}
