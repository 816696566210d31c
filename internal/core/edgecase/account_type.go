package edgecase

import (
	"fmt"

	"github.com/finbooks/finbooks_app/internal/core/domain"
)

// AccountTypeDetector flags entries that run against an account's natural
// direction: debits to revenue, credits to expenses, debits to equity.
// Crediting equity is normal and never flagged.
type AccountTypeDetector struct{}

func (AccountTypeDetector) Name() string { return "account_type" }

func (AccountTypeDetector) Detect(in Input, th Thresholds) []Flag {
	var flags []Flag

	for _, line := range in.Lines {
		switch {
		case line.AccountType == domain.Revenue && line.LineType == domain.Debit:
			flags = append(flags, Flag{
				Type:             FlagContraRevenue,
				Description:      fmt.Sprintf("debit of %s to revenue account %q reduces recognized revenue", line.Amount, line.AccountName),
				RequiresApproval: th.RequireApprovalForContraEntries,
				Context: map[string]any{
					"account_id": line.AccountID,
					"amount":     line.Amount.String(),
				},
			})
		case line.AccountType == domain.Expense && line.LineType == domain.Credit:
			flags = append(flags, Flag{
				Type:             FlagContraExpense,
				Description:      fmt.Sprintf("credit of %s to expense account %q reduces recorded expenses", line.Amount, line.AccountName),
				RequiresApproval: th.RequireApprovalForContraEntries,
				Context: map[string]any{
					"account_id": line.AccountID,
					"amount":     line.Amount.String(),
				},
			})
		case line.AccountType == domain.Equity && line.LineType == domain.Debit:
			flags = append(flags, Flag{
				Type:             FlagEquityAdjustment,
				Description:      fmt.Sprintf("debit of %s to equity account %q", line.Amount, line.AccountName),
				RequiresApproval: th.RequireApprovalForEquityAdjustments,
				Context: map[string]any{
					"account_id": line.AccountID,
					"amount":     line.Amount.String(),
				},
			})
		}
	}

	return flags
}
