package edgecase

import (
	"fmt"

	"github.com/finbooks/finbooks_app/internal/utils/accounting"
)

// BalanceImpactDetector projects each account's post-change balance and
// flags projections that go negative, regardless of account type. The
// projection uses the advisory balance snapshot in the input.
type BalanceImpactDetector struct{}

func (BalanceImpactDetector) Name() string { return "balance_impact" }

func (BalanceImpactDetector) Detect(in Input, th Thresholds) []Flag {
	if !th.RequireApprovalForNegativeBalance {
		return nil
	}

	var flags []Flag
	for _, line := range in.Lines {
		delta := accounting.CalculateChange(line.AccountType.NormalBalance(), line.LineType, line.Amount)
		projected := accounting.ProjectBalance(line.CurrentBalance, delta)
		if projected.IsNegative() {
			flags = append(flags, Flag{
				Type:             FlagNegativeBalance,
				Description:      fmt.Sprintf("posting would drive account %q to %s", line.AccountName, projected),
				RequiresApproval: true,
				Context: map[string]any{
					"account_id":        line.AccountID,
					"current_balance":   line.CurrentBalance.String(),
					"projected_balance": projected.String(),
				},
			})
		}
	}
	return flags
}
