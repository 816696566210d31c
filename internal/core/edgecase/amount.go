package edgecase

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	roundNumberStep    = decimal.NewFromInt(1000)
	roundNumberMinimum = decimal.NewFromInt(5000)
	nearThresholdRatio = decimal.NewFromFloat(0.9)
)

// AmountDetector flags transactions whose total debits exceed the large
// transaction threshold, hover just below it, or land on suspiciously
// round numbers.
type AmountDetector struct{}

func (AmountDetector) Name() string { return "amount" }

func (AmountDetector) Detect(in Input, th Thresholds) []Flag {
	var flags []Flag
	total := in.TotalDebits()

	switch {
	case total.GreaterThan(th.LargeTransactionThreshold):
		flags = append(flags, Flag{
			Type:             FlagLargeAmount,
			Description:      fmt.Sprintf("transaction total %s exceeds the large transaction threshold %s", total, th.LargeTransactionThreshold),
			RequiresApproval: true,
			Context: map[string]any{
				"amount":    total.String(),
				"threshold": th.LargeTransactionThreshold.String(),
			},
		})
	case total.GreaterThanOrEqual(th.LargeTransactionThreshold.Mul(nearThresholdRatio)):
		// Within [90%, 100%) of the threshold: possible threshold dodging.
		flags = append(flags, Flag{
			Type:             FlagBelowThreshold,
			Description:      fmt.Sprintf("transaction total %s is just below the approval threshold %s", total, th.LargeTransactionThreshold),
			RequiresApproval: false,
			Context: map[string]any{
				"amount":    total.String(),
				"threshold": th.LargeTransactionThreshold.String(),
			},
		})
	}

	if th.FlagRoundNumbers && total.GreaterThanOrEqual(roundNumberMinimum) && total.Mod(roundNumberStep).IsZero() {
		flags = append(flags, Flag{
			Type:             FlagRoundNumber,
			Description:      fmt.Sprintf("transaction total %s is a round multiple of %s", total, roundNumberStep),
			RequiresApproval: false,
			Context:          map[string]any{"amount": total.String()},
		})
	}

	return flags
}
