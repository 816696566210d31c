package services

import "errors"

// Rule violations surfaced by the service layer on top of the aggregate
// invariants in the domain package.
var (
	ErrCompanyNotFound      = errors.New("company not found")
	ErrCompanyCannotOperate = errors.New("company is not active and cannot record new activity")
	ErrClosedPeriod         = errors.New("transaction date falls in a closed accounting period")
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountForeign       = errors.New("account belongs to a different company")
	ErrAccountInactive      = errors.New("account is inactive")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrApprovalRequired     = errors.New("posting requires an approval decision")
	ErrApprovalNotFound     = errors.New("approval not found")
	ErrApprovalNotPending   = errors.New("approval has already been decided")
	ErrNoFlagsToApprove     = errors.New("transaction has no approval-requiring flags")
	ErrNegativeBalance      = errors.New("posting would drive a protected account negative")
)

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	return unique
}
