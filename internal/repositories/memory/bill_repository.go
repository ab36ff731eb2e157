package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/bank_simulator/internal/apperrors"
	"github.com/SscSPs/bank_simulator/internal/core/domain"
)

func (s *Store) SaveBill(ctx context.Context, bill domain.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bills[bill.ID]; exists {
		return fmt.Errorf("%w: bill with ID %s already exists", apperrors.ErrDuplicate, bill.ID)
	}
	s.bills[bill.ID] = bill
	return nil
}

func (s *Store) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bill, ok := s.bills[billID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &bill, nil
}

func (s *Store) FindOpenBillsForUserAndBiller(ctx context.Context, userID string, billerName string) ([]domain.Bill, error) {
	return s.selectBills(func(b domain.Bill) bool {
		return b.BilledUser == userID && b.From == billerName && b.IsOpen()
	}), nil
}

func (s *Store) ListBillsByUser(ctx context.Context, userID string) ([]domain.Bill, error) {
	return s.selectBills(func(b domain.Bill) bool {
		return b.BilledUser == userID
	}), nil
}

// selectBills returns the matching bills ordered by due date, creation time, then ID.
func (s *Store) selectBills(match func(domain.Bill) bool) []domain.Bill {
	s.mu.RLock()
	bills := []domain.Bill{}
	for _, b := range s.bills {
		if match(b) {
			bills = append(bills, b)
		}
	}
	s.mu.RUnlock()

	sort.Slice(bills, func(i, j int) bool {
		a, b := bills[i], bills[j]
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return bills
}

func (s *Store) SaveBiller(ctx context.Context, biller domain.Biller) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.billers[biller.BillerCode]; exists {
		return fmt.Errorf("%w: biller with code %s already exists", apperrors.ErrDuplicate, biller.BillerCode)
	}
	s.billers[biller.BillerCode] = biller
	return nil
}

func (s *Store) FindBillerByCode(ctx context.Context, billerCode string) (*domain.Biller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	biller, ok := s.billers[billerCode]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &biller, nil
}
