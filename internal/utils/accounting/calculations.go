package accounting

import (
	"fmt"

	"github.com/SscSPs/bank_simulator/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Exposure returns the balance of an asset account, or the credit used on a credit account.
func Exposure(acc domain.Account) decimal.Decimal {
	return acc.Exposure()
}

// CreditUsed is the part of a credit account's limit that has been drawn.
// It is zero for every other account type.
func CreditUsed(acc domain.Account) decimal.Decimal {
	if !acc.IsCredit() {
		return decimal.Zero
	}
	return acc.OpeningBalance.Sub(acc.Balance)
}

// TotalExposure aggregates exposure across accounts: asset accounts add their
// balance, credit accounts subtract the credit they have used.
func TotalExposure(accounts []domain.Account) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		if acc.IsCredit() {
			total = total.Sub(acc.Exposure())
		} else {
			total = total.Add(acc.Exposure())
		}
	}
	return total
}

// ExpectedBalance replays signed transaction amounts for an account on top of its opening balance.
func ExpectedBalance(acc domain.Account, txns []domain.Transaction) decimal.Decimal {
	expected := acc.OpeningBalance
	for _, txn := range txns {
		expected = expected.Add(txn.SignedAmountFor(acc.ID))
	}
	return expected
}

// VerifyBalance checks that an account's balance equals its opening balance plus
// the signed amounts of every transaction touching it.
func VerifyBalance(acc domain.Account, txns []domain.Transaction) error {
	expected := ExpectedBalance(acc, txns)
	if !expected.Equal(acc.Balance) {
		return fmt.Errorf("account %s balance %s does not match replayed history %s", acc.ID, acc.Balance.String(), expected.String())
	}
	return nil
}
