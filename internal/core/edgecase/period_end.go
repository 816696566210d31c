package edgecase

import (
	"fmt"
	"time"
)

// periodEndWindowDays is how close to a period boundary a transaction
// date must be to count as a period-end entry.
const periodEndWindowDays = 3

// quarterEndMonths are the months that close a fiscal quarter on the
// calendar year.
var quarterEndMonths = map[time.Month]bool{
	time.March:     true,
	time.June:      true,
	time.September: true,
	time.December:  true,
}

// PeriodEndDetector flags entries dated within the last days of a month,
// marking quarter and year ends with their own period labels. This is the
// single canonical period-end rule; no other detector duplicates it.
type PeriodEndDetector struct{}

func (PeriodEndDetector) Name() string { return "period_end" }

func (PeriodEndDetector) Detect(in Input, th Thresholds) []Flag {
	if !th.FlagPeriodEndEntries {
		return nil
	}

	txDay := truncateToDay(in.TransactionDate)
	monthEnd := endOfMonth(txDay)
	daysToClose := daysBetween(txDay, monthEnd)
	if daysToClose >= periodEndWindowDays {
		return nil
	}

	period := "month_end"
	if quarterEndMonths[txDay.Month()] {
		period = "quarter_end"
	}
	if txDay.Month() == time.December {
		period = "year_end"
	}

	return []Flag{{
		Type:             FlagPeriodEnd,
		Description:      fmt.Sprintf("transaction is dated within %d day(s) of a %s close", daysToClose, period),
		RequiresApproval: false,
		Context: map[string]any{
			"period":        period,
			"days_to_close": daysToClose,
		},
	}}
}

func endOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}
