package edgecase

import "fmt"

// DormantAccountDetector flags postings to accounts whose last activity is
// older than the configured inactivity window. Accounts with no prior
// activity at all are new, not dormant, and are skipped.
type DormantAccountDetector struct{}

func (DormantAccountDetector) Name() string { return "dormant_account" }

func (DormantAccountDetector) Detect(in Input, th Thresholds) []Flag {
	var flags []Flag
	for _, line := range in.Lines {
		if line.LastActivityAt == nil {
			continue
		}
		idleDays := daysBetween(truncateToDay(*line.LastActivityAt), truncateToDay(in.Now))
		if idleDays > th.DormantAccountDays {
			flags = append(flags, Flag{
				Type:             FlagDormantAccount,
				Description:      fmt.Sprintf("account %q has been inactive for %d days", line.AccountName, idleDays),
				RequiresApproval: false,
				Context: map[string]any{
					"account_id": line.AccountID,
					"idle_days":  idleDays,
					"threshold":  th.DormantAccountDays,
				},
			})
		}
	}
	return flags
}
