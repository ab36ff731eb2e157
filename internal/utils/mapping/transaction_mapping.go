package mapping

import (
	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/SscSPs/bank_simulator/internal/dto"
	"github.com/SscSPs/bank_simulator/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		ID:                  d.ID,
		Description:         d.Description,
		Amount:              d.Amount,
		PaidOn:              d.PaidOn,
		FromAccount:         d.FromAccountID,
		FromAccountUsername: d.FromAccountUsername,
		ToAccount:           d.ToAccountID,
		ToBiller:            d.ToBiller,
		ToAccountUsername:   d.ToAccountUsername,
		TransactionType:     string(d.TransactionType),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:                  m.ID,
		Amount:              m.Amount,
		PaidOn:              m.PaidOn,
		FromAccountID:       m.FromAccount,
		FromAccountUsername: m.FromAccountUsername,
		ToAccountID:         m.ToAccount,
		ToAccountUsername:   m.ToAccountUsername,
		ToBiller:            m.ToBiller,
		Description:         m.Description,
		TransactionType:     domain.TransactionType(m.TransactionType),
	}
}

// ToTransactionResponse converts a transaction to the view of accountID,
// signing the amount for that account.
func ToTransactionResponse(txn domain.Transaction, accountID string) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:                  txn.ID,
		Amount:              txn.SignedAmountFor(accountID),
		PaidOn:              txn.PaidOn,
		FromAccountID:       txn.FromAccountID,
		FromAccountUsername: txn.FromAccountUsername,
		ToAccountID:         txn.ToAccountID,
		ToAccountUsername:   txn.ToAccountUsername,
		ToBiller:            txn.ToBiller,
		Description:         txn.Description,
		TransactionType:     txn.TransactionType,
	}
}

// ToTransactionResponses converts a page of transactions for accountID.
func ToTransactionResponses(txns []domain.Transaction, accountID string) []dto.TransactionResponse {
	res := make([]dto.TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(txn, accountID)
	}
	return res
}
