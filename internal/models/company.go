package models

import "time"

// Company is the db row for a bookkeeping tenant.
type Company struct {
	CompanyID           string `json:"companyID"`
	Name                string `json:"name"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode"`
	IsActive            bool   `json:"isActive"`
	AuditFields
}

// ClosedPeriod is the db row for a date range closed against new activity.
type ClosedPeriod struct {
	PeriodID  string    `json:"periodID"`
	CompanyID string    `json:"companyID"`
	FromDate  time.Time `json:"fromDate"`
	ToDate    time.Time `json:"toDate"`
	ClosedBy  string    `json:"closedBy"`
	ClosedAt  time.Time `json:"closedAt"`
}
