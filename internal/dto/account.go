package dto

import (
	"time"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest creates one chart-of-accounts entry.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	CurrencyCode   string             `json:"currencyCode" binding:"required,len=3"`
	Description    string             `json:"description"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
}

// AccountResponse is the presentation of one account.
type AccountResponse struct {
	AccountID      string          `json:"accountID"`
	CompanyID      string          `json:"companyID"`
	Name           string          `json:"name"`
	AccountType    string          `json:"accountType"`
	NormalBalance  string          `json:"normalBalance"`
	CurrencyCode   string          `json:"currencyCode"`
	Description    string          `json:"description,omitempty"`
	IsActive       bool            `json:"isActive"`
	Balance        decimal.Decimal `json:"balance"`
	LastActivityAt *time.Time      `json:"lastActivityAt,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain account for presentation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      a.AccountID,
		CompanyID:      a.CompanyID,
		Name:           a.Name,
		AccountType:    string(a.AccountType),
		NormalBalance:  string(a.AccountType.NormalBalance()),
		CurrencyCode:   a.CurrencyCode,
		Description:    a.Description,
		IsActive:       a.IsActive,
		Balance:        a.Balance,
		LastActivityAt: a.LastActivityAt,
		CreatedAt:      a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
