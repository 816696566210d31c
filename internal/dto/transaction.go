package dto

import (
	"time"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionLineRequest is one debit or credit line of a new draft.
type CreateTransactionLineRequest struct {
	AccountID   string                 `json:"accountID" binding:"required"`
	LineType    domain.TransactionType `json:"lineType" binding:"required,oneof=DEBIT CREDIT"`
	Amount      decimal.Decimal        `json:"amount" binding:"required,positiveamount"`
	Description string                 `json:"description"`
}

// CreateTransactionRequest creates a draft transaction with its lines.
type CreateTransactionRequest struct {
	TransactionDate time.Time                      `json:"transactionDate" binding:"required"`
	Description     string                         `json:"description" binding:"required"`
	ReferenceNumber string                         `json:"referenceNumber"`
	Lines           []CreateTransactionLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateTransactionRequest replaces a draft's header and lines.
type UpdateTransactionRequest struct {
	TransactionDate time.Time                      `json:"transactionDate" binding:"required"`
	Description     string                         `json:"description" binding:"required"`
	ReferenceNumber string                         `json:"referenceNumber"`
	Lines           []CreateTransactionLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// VoidTransactionRequest voids a posted transaction.
type VoidTransactionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListTransactionsParams holds pagination parameters for listing.
type ListTransactionsParams struct {
	AccountID string  `form:"accountID"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// TransactionLineResponse is the presentation of one line.
type TransactionLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	LineType    string          `json:"lineType"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// TransactionResponse is how a transaction is exposed to callers.
type TransactionResponse struct {
	TransactionID     string                    `json:"transactionID"`
	TransactionNumber string                    `json:"transactionNumber"`
	CompanyID         string                    `json:"companyID"`
	Status            string                    `json:"status"`
	Description       string                    `json:"description"`
	ReferenceNumber   string                    `json:"referenceNumber,omitempty"`
	TransactionDate   time.Time                 `json:"transactionDate"`
	TotalDebits       decimal.Decimal           `json:"totalDebits"`
	TotalCredits      decimal.Decimal           `json:"totalCredits"`
	Lines             []TransactionLineResponse `json:"lines"`
	CreatedAt         time.Time                 `json:"createdAt"`
	PostedAt          *time.Time                `json:"postedAt,omitempty"`
	VoidedAt          *time.Time                `json:"voidedAt,omitempty"`
	VoidReason        string                    `json:"voidReason,omitempty"`
}

// ListTransactionsResponse is a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain transaction for presentation.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	lines := make([]TransactionLineResponse, len(t.Lines))
	for i, line := range t.Lines {
		lines[i] = TransactionLineResponse{
			LineID:      line.LineID,
			AccountID:   line.AccountID,
			LineType:    string(line.LineType),
			Amount:      line.Amount,
			Description: line.Description,
		}
	}
	return TransactionResponse{
		TransactionID:     t.TransactionID,
		TransactionNumber: t.TransactionNumber,
		CompanyID:         t.CompanyID,
		Status:            string(t.Status),
		Description:       t.Description,
		ReferenceNumber:   t.ReferenceNumber,
		TransactionDate:   t.TransactionDate,
		TotalDebits:       t.TotalDebits(),
		TotalCredits:      t.TotalCredits(),
		Lines:             lines,
		CreatedAt:         t.CreatedAt,
		PostedAt:          t.PostedAt,
		VoidedAt:          t.VoidedAt,
		VoidReason:        t.VoidReason,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
