package edgecase

// FlagType tags the rule that raised a flag.
type FlagType string

const (
	FlagFutureDated          FlagType = "future_dated"
	FlagBackdated            FlagType = "backdated"
	FlagPeriodEnd            FlagType = "period_end"
	FlagLargeAmount          FlagType = "large_amount"
	FlagBelowThreshold       FlagType = "below_threshold"
	FlagRoundNumber          FlagType = "round_number"
	FlagContraRevenue        FlagType = "contra_revenue"
	FlagContraExpense        FlagType = "contra_expense"
	FlagEquityAdjustment     FlagType = "equity_adjustment"
	FlagNegativeBalance      FlagType = "negative_balance"
	FlagMissingDescription   FlagType = "missing_description"
	FlagDormantAccount       FlagType = "dormant_account"
	FlagDuplicateTransaction FlagType = "duplicate_transaction"
)

// Flag is one detector's signal that a transaction is unusual. Flags are
// advisory: they route approvals, they are never hard validation failures.
type Flag struct {
	Type             FlagType       `json:"type"`
	Description      string         `json:"description"`
	RequiresApproval bool           `json:"requiresApproval"` // false = review only
	Context          map[string]any `json:"context,omitempty"`
}
