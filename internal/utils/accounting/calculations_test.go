package accounting

import (
	"testing"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateChange(t *testing.T) {
	amount := decimal.NewFromInt(100)

	tests := []struct {
		name          string
		normalBalance domain.TransactionType
		lineType      domain.TransactionType
		want          decimal.Decimal
	}{
		{"debit line to debit-normal account", domain.Debit, domain.Debit, amount},
		{"credit line to debit-normal account", domain.Debit, domain.Credit, amount.Neg()},
		{"debit line to credit-normal account", domain.Credit, domain.Debit, amount.Neg()},
		{"credit line to credit-normal account", domain.Credit, domain.Credit, amount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateChange(tt.normalBalance, tt.lineType, amount)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestProjectBalance(t *testing.T) {
	current := decimal.NewFromInt(300)

	assert.True(t, ProjectBalance(current, decimal.NewFromInt(200)).Equal(decimal.NewFromInt(500)))
	assert.True(t, ProjectBalance(current, decimal.NewFromInt(-500)).Equal(decimal.NewFromInt(-200)))
}

func TestCalculateSignedAmount(t *testing.T) {
	line := domain.TransactionLine{
		LineID:    "l1",
		AccountID: "acc-1",
		LineType:  domain.Credit,
		Amount:    decimal.NewFromInt(250),
	}

	signed, err := CalculateSignedAmount(line, domain.Liability)
	assert.NoError(t, err)
	assert.True(t, signed.Equal(decimal.NewFromInt(250)), "credit increases a liability")

	signed, err = CalculateSignedAmount(line, domain.Asset)
	assert.NoError(t, err)
	assert.True(t, signed.Equal(decimal.NewFromInt(-250)), "credit decreases an asset")

	_, err = CalculateSignedAmount(line, domain.AccountType("BOGUS"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account type")
}

func TestValidateTransactionBalance(t *testing.T) {
	amount := decimal.NewFromInt(100)

	tests := []struct {
		name    string
		lines   []domain.TransactionLine
		wantErr error
	}{
		{
			name: "balanced lines pass",
			lines: []domain.TransactionLine{
				{AccountID: "a1", LineType: domain.Debit, Amount: amount},
				{AccountID: "a2", LineType: domain.Credit, Amount: amount},
			},
		},
		{
			name: "too few lines",
			lines: []domain.TransactionLine{
				{AccountID: "a1", LineType: domain.Debit, Amount: amount},
			},
			wantErr: domain.ErrInsufficientLines,
		},
		{
			name: "unbalanced sums",
			lines: []domain.TransactionLine{
				{AccountID: "a1", LineType: domain.Debit, Amount: amount},
				{AccountID: "a2", LineType: domain.Credit, Amount: decimal.NewFromInt(90)},
			},
			wantErr: domain.ErrTransactionUnbalanced,
		},
		{
			name: "non-positive amount",
			lines: []domain.TransactionLine{
				{AccountID: "a1", LineType: domain.Debit, Amount: decimal.Zero},
				{AccountID: "a2", LineType: domain.Credit, Amount: decimal.Zero},
			},
			wantErr: domain.ErrNonPositiveAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransactionBalance(tt.lines)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
