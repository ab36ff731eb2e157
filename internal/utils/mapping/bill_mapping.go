package mapping

import (
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/SscSPs/bank_simulator/internal/dto"
	"github.com/SscSPs/bank_simulator/internal/models"
)

// ToModelBill converts a domain Bill to a model Bill
func ToModelBill(d domain.Bill) models.Bill {
	return models.Bill{
		ID:              d.ID,
		BilledUser:      d.BilledUser,
		From:            d.From,
		LinkedBiller:    d.BillerID,
		Description:     d.Description,
		Amount:          d.Amount,
		Status:          string(d.Status),
		DueDate:         d.DueDate,
		ReferenceNumber: d.ReferenceNumber,
		InvoiceNumber:   d.InvoiceNumber,
		PaidOn:          d.PaidOn,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// ToDomainBill converts a model Bill to a domain Bill
func ToDomainBill(m models.Bill) domain.Bill {
	return domain.Bill{
		ID:              m.ID,
		BilledUser:      m.BilledUser,
		From:            m.From,
		BillerID:        m.LinkedBiller,
		Description:     m.Description,
		Amount:          m.Amount,
		Status:          domain.BillStatus(m.Status),
		DueDate:         m.DueDate,
		ReferenceNumber: m.ReferenceNumber,
		InvoiceNumber:   m.InvoiceNumber,
		PaidOn:          m.PaidOn,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToModelBiller converts a domain Biller to a model Biller
func ToModelBiller(d domain.Biller) models.Biller {
	return models.Biller{
		ID:              d.ID,
		BillerCode:      d.BillerCode,
		Name:            d.Name,
		ReferenceNumber: d.ReferenceNumber,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainBiller converts a model Biller to a domain Biller
func ToDomainBiller(m models.Biller) domain.Biller {
	return domain.Biller{
		ID:              m.ID,
		BillerCode:      m.BillerCode,
		Name:            m.Name,
		ReferenceNumber: m.ReferenceNumber,
		CreatedAt:       m.CreatedAt,
	}
}

// ToBillResponse converts a domain Bill to its API representation.
func ToBillResponse(b domain.Bill) dto.BillResponse {
	return dto.BillResponse{
		ID:              b.ID,
		From:            b.From,
		Description:     b.Description,
		Amount:          b.Amount,
		Outstanding:     b.Outstanding(),
		Status:          b.Status,
		DueDate:         b.DueDate,
		ReferenceNumber: b.ReferenceNumber,
		InvoiceNumber:   b.InvoiceNumber,
		PaidOn:          b.PaidOn,
		CreatedAt:       b.CreatedAt,
	}
}

// ToBillResponses converts a slice of domain Bills
func ToBillResponses(bills []domain.Bill) []dto.BillResponse {
	res := make([]dto.BillResponse, len(bills))
	for i, b := range bills {
		res[i] = ToBillResponse(b)
	}
	return res
}
