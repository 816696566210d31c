package domain

// Company represents a bookkeeping tenant. Every account, transaction and
// journal entry belongs to exactly one company.
type Company struct {
	CompanyID           string `json:"companyID"`
	Name                string `json:"name"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode"`
	IsActive            bool   `json:"isActive"`
	AuditFields
}

// CanOperate reports whether new financial activity may be recorded for
// this company.
func (c *Company) CanOperate() bool {
	return c.IsActive
}
