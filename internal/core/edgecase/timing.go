package edgecase

import (
	"fmt"
	"time"
)

// TimingDetector flags transactions dated in the future or backdated
// beyond the company's threshold.
type TimingDetector struct{}

func (TimingDetector) Name() string { return "timing" }

func (TimingDetector) Detect(in Input, th Thresholds) []Flag {
	var flags []Flag

	today := truncateToDay(in.Now)
	txDay := truncateToDay(in.TransactionDate)

	if txDay.After(today) {
		daysAhead := daysBetween(today, txDay)
		flags = append(flags, Flag{
			Type:             FlagFutureDated,
			Description:      fmt.Sprintf("transaction is dated %d day(s) in the future", daysAhead),
			RequiresApproval: true,
			Context:          map[string]any{"days_ahead": daysAhead},
		})
	}

	if txDay.Before(today) {
		daysBack := daysBetween(txDay, today)
		if daysBack > th.BackdatedDaysThreshold {
			flags = append(flags, Flag{
				Type:             FlagBackdated,
				Description:      fmt.Sprintf("transaction is backdated %d days, beyond the %d-day threshold", daysBack, th.BackdatedDaysThreshold),
				RequiresApproval: true,
				Context: map[string]any{
					"days_back": daysBack,
					"threshold": th.BackdatedDaysThreshold,
				},
			})
		}
	}

	return flags
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween requires both arguments to be truncated to UTC midnight
// (see truncateToDay); only then is the duration an exact multiple of
// 24 hours and the division safe.
func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
