package accounting

import (
	"fmt"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateChange computes the signed effect of a debit or credit line on
// an account whose normal balance is on the given side.
//
// DEBIT line to a debit-normal account (ASSET/EXPENSE) -> Positive (+)
// CREDIT line to a debit-normal account -> Negative (-)
// DEBIT line to a credit-normal account (LIABILITY/EQUITY/REVENUE) -> Negative (-)
// CREDIT line to a credit-normal account -> Positive (+)
func CalculateChange(normalBalance, lineType domain.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if lineType == normalBalance {
		return amount
	}
	return amount.Neg()
}

// ProjectBalance returns the balance after applying a signed delta. Used
// both for real applications and for projecting hypothetical
// post-transaction balances during anomaly detection.
func ProjectBalance(current, delta decimal.Decimal) decimal.Decimal {
	return current.Add(delta)
}

// CalculateSignedAmount applies the correct sign to a line amount based on
// the owning account's type. Used in services and repositories to keep the
// accounting convention in one place.
func CalculateSignedAmount(line domain.TransactionLine, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
	return CalculateChange(accountType.NormalBalance(), line.LineType, line.Amount), nil
}

// ValidateTransactionBalance checks that a set of lines satisfies the
// double-entry equation: the sum of debits equals the sum of credits.
func ValidateTransactionBalance(lines []domain.TransactionLine) error {
	if len(lines) < 2 {
		return domain.ErrInsufficientLines
	}

	debitsSum := decimal.Zero
	creditsSum := decimal.Zero
	for _, line := range lines {
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: account %s", domain.ErrNonPositiveAmount, line.AccountID)
		}
		if line.LineType == domain.Debit {
			debitsSum = debitsSum.Add(line.Amount)
		} else {
			creditsSum = creditsSum.Add(line.Amount)
		}
	}

	if !debitsSum.Equal(creditsSum) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			domain.ErrTransactionUnbalanced, debitsSum.String(), creditsSum.String())
	}
	return nil
}
