package mapping

import (
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/SscSPs/bank_simulator/internal/dto"
)

// ToSettlementResponse converts a settlement result for the API.
func ToSettlementResponse(result domain.SettlementResult) dto.SettlementResponse {
	allocations := result.Allocations
	if allocations == nil {
		allocations = []domain.BillAllocation{}
	}
	return dto.SettlementResponse{
		Allocations: allocations,
		Consumed:    result.Consumed,
		Refunded:    result.Refunded,
	}
}
