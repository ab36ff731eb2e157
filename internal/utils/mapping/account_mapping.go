package mapping

import (
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/SscSPs/bank_simulator/internal/dto"
	"github.com/SscSPs/bank_simulator/internal/models"
	"github.com/SscSPs/bank_simulator/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		ID:             d.ID,
		Type:           string(d.Type),
		Balance:        d.Balance,
		OpeningBalance: d.OpeningBalance,
		Owner:          d.Owner,
		OwnerUsername:  d.OwnerUsername,
		BSB:            d.BSB,
		AccountNumber:  d.AccountNumber,
		Version:        d.Version,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		ID:             m.ID,
		Type:           domain.AccountType(m.Type),
		Balance:        m.Balance,
		OpeningBalance: m.OpeningBalance,
		Owner:          m.Owner,
		OwnerUsername:  m.OwnerUsername,
		BSB:            m.BSB,
		AccountNumber:  m.AccountNumber,
		Version:        m.Version,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToAccountResponse converts a domain Account to its API representation.
// Credit accounts also report their limit and the credit used.
func ToAccountResponse(acc domain.Account) dto.AccountResponse {
	res := dto.AccountResponse{
		ID:             acc.ID,
		Type:           acc.Type,
		Balance:        acc.Balance,
		OpeningBalance: acc.OpeningBalance,
		Exposure:       accounting.Exposure(acc),
		OwnerUsername:  acc.OwnerUsername,
		BSB:            acc.BSB,
		AccountNumber:  acc.AccountNumber,
		CreatedAt:      acc.CreatedAt,
		UpdatedAt:      acc.UpdatedAt,
	}
	if acc.IsCredit() {
		limit := acc.OpeningBalance
		used := accounting.CreditUsed(acc)
		res.CreditLimit = &limit
		res.CreditUsed = &used
	}
	return res
}

// ToAccountResponses converts a slice of domain Accounts
func ToAccountResponses(accounts []domain.Account) []dto.AccountResponse {
	res := make([]dto.AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(acc)
	}
	return res
}

// ToListAccountsResponse bundles accounts with their total exposure.
func ToListAccountsResponse(accounts []domain.Account, total decimal.Decimal) *dto.ListAccountsResponse {
	return &dto.ListAccountsResponse{
		Accounts:      ToAccountResponses(accounts),
		TotalExposure: total,
	}
}
