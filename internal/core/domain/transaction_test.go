package domain_test

import (
	"testing"
	"time"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBalancedDraft(t *testing.T) *domain.Transaction {
	t.Helper()
	txn := domain.NewTransaction("txn-1", "comp-1", "TXN-202601-00001",
		time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		"Office rent January", "INV-42", "user-1", time.Now())
	require.NoError(t, txn.AddLine("line-1", "acc-rent", domain.Debit, decimal.NewFromInt(1200), ""))
	require.NoError(t, txn.AddLine("line-2", "acc-cash", domain.Credit, decimal.NewFromInt(1200), ""))
	return txn
}

func TestTransaction_AddLine(t *testing.T) {
	txn := newBalancedDraft(t)

	err := txn.AddLine("line-3", "acc-x", domain.Debit, decimal.Zero, "")
	assert.ErrorIs(t, err, domain.ErrNonPositiveAmount)

	err = txn.AddLine("line-3", "acc-x", domain.Debit, decimal.NewFromInt(-5), "")
	assert.ErrorIs(t, err, domain.ErrNonPositiveAmount)

	_, err = txn.Post("user-1", time.Now())
	require.NoError(t, err)

	err = txn.AddLine("line-3", "acc-x", domain.Debit, decimal.NewFromInt(10), "")
	assert.ErrorIs(t, err, domain.ErrTransactionNotDraft)
}

func TestTransaction_ValidateForPosting(t *testing.T) {
	amount := decimal.NewFromInt(100)

	tests := []struct {
		name    string
		lines   []domain.TransactionLine
		wantErr error
	}{
		{
			name: "balanced two line transaction",
			lines: []domain.TransactionLine{
				{LineID: "l1", AccountID: "a1", LineType: domain.Debit, Amount: amount},
				{LineID: "l2", AccountID: "a2", LineType: domain.Credit, Amount: amount},
			},
		},
		{
			name: "balanced split across three lines",
			lines: []domain.TransactionLine{
				{LineID: "l1", AccountID: "a1", LineType: domain.Debit, Amount: decimal.NewFromInt(60)},
				{LineID: "l2", AccountID: "a2", LineType: domain.Debit, Amount: decimal.NewFromInt(40)},
				{LineID: "l3", AccountID: "a3", LineType: domain.Credit, Amount: amount},
			},
		},
		{
			name:    "no lines",
			lines:   nil,
			wantErr: domain.ErrInsufficientLines,
		},
		{
			name: "single line",
			lines: []domain.TransactionLine{
				{LineID: "l1", AccountID: "a1", LineType: domain.Debit, Amount: amount},
			},
			wantErr: domain.ErrInsufficientLines,
		},
		{
			name: "debits only",
			lines: []domain.TransactionLine{
				{LineID: "l1", AccountID: "a1", LineType: domain.Debit, Amount: amount},
				{LineID: "l2", AccountID: "a2", LineType: domain.Debit, Amount: amount},
			},
			wantErr: domain.ErrMissingCreditLine,
		},
		{
			name: "credits only",
			lines: []domain.TransactionLine{
				{LineID: "l1", AccountID: "a1", LineType: domain.Credit, Amount: amount},
				{LineID: "l2", AccountID: "a2", LineType: domain.Credit, Amount: amount},
			},
			wantErr: domain.ErrMissingDebitLine,
		},
		{
			name: "unbalanced totals",
			lines: []domain.TransactionLine{
				{LineID: "l1", AccountID: "a1", LineType: domain.Debit, Amount: amount},
				{LineID: "l2", AccountID: "a2", LineType: domain.Credit, Amount: decimal.NewFromInt(99)},
			},
			wantErr: domain.ErrTransactionUnbalanced,
		},
		{
			name: "zero amount line",
			lines: []domain.TransactionLine{
				{LineID: "l1", AccountID: "a1", LineType: domain.Debit, Amount: decimal.Zero},
				{LineID: "l2", AccountID: "a2", LineType: domain.Credit, Amount: decimal.Zero},
			},
			wantErr: domain.ErrNonPositiveAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.ReconstructTransaction("txn-1", "comp-1", "TXN-202601-00001",
				time.Now(), "desc", "", domain.StatusDraft, tt.lines, domain.AuditFields{})
			err := txn.ValidateForPosting()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_Post(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	t.Run("posts a valid draft", func(t *testing.T) {
		txn := newBalancedDraft(t)
		event, err := txn.Post("user-2", now)
		require.NoError(t, err)

		assert.Equal(t, domain.StatusPosted, txn.Status)
		assert.Equal(t, "user-2", txn.PostedBy)
		require.NotNil(t, txn.PostedAt)
		assert.Equal(t, now, *txn.PostedAt)

		posted, ok := event.(domain.TransactionPostedEvent)
		require.True(t, ok)
		assert.Equal(t, "transaction.posted", posted.EventName())
		assert.Equal(t, txn.TransactionID, posted.TransactionID)
		assert.True(t, posted.TotalDebits.Equal(decimal.NewFromInt(1200)))
	})

	t.Run("rejects a second post", func(t *testing.T) {
		txn := newBalancedDraft(t)
		_, err := txn.Post("user-2", now)
		require.NoError(t, err)

		_, err = txn.Post("user-2", now)
		assert.ErrorIs(t, err, domain.ErrTransactionNotDraft)
	})

	t.Run("rejects an unbalanced draft", func(t *testing.T) {
		txn := newBalancedDraft(t)
		require.NoError(t, txn.AddLine("line-3", "acc-x", domain.Debit, decimal.NewFromInt(1), ""))

		_, err := txn.Post("user-2", now)
		assert.ErrorIs(t, err, domain.ErrTransactionUnbalanced)
		assert.Equal(t, domain.StatusDraft, txn.Status)
	})
}

func TestTransaction_Void(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)

	t.Run("voids a posted transaction", func(t *testing.T) {
		txn := newBalancedDraft(t)
		_, err := txn.Post("user-2", now)
		require.NoError(t, err)

		event, err := txn.Void("duplicate booking", "user-3", later)
		require.NoError(t, err)

		assert.Equal(t, domain.StatusVoided, txn.Status)
		assert.Equal(t, "duplicate booking", txn.VoidReason)
		assert.Equal(t, "user-3", txn.VoidedBy)
		require.NotNil(t, txn.VoidedAt)
		assert.Equal(t, later, *txn.VoidedAt)

		voided, ok := event.(domain.TransactionVoidedEvent)
		require.True(t, ok)
		assert.Equal(t, "duplicate booking", voided.Reason)
	})

	t.Run("rejects voiding a draft", func(t *testing.T) {
		txn := newBalancedDraft(t)
		_, err := txn.Void("reason", "user-3", later)
		assert.ErrorIs(t, err, domain.ErrTransactionNotPosted)
	})

	t.Run("rejects an empty reason", func(t *testing.T) {
		txn := newBalancedDraft(t)
		_, err := txn.Post("user-2", now)
		require.NoError(t, err)

		_, err = txn.Void("", "user-3", later)
		assert.ErrorIs(t, err, domain.ErrVoidReasonMissing)
		assert.Equal(t, domain.StatusPosted, txn.Status)
	})

	t.Run("rejects a second void", func(t *testing.T) {
		txn := newBalancedDraft(t)
		_, err := txn.Post("user-2", now)
		require.NoError(t, err)
		_, err = txn.Void("reason", "user-3", later)
		require.NoError(t, err)

		_, err = txn.Void("again", "user-3", later)
		assert.ErrorIs(t, err, domain.ErrTransactionNotPosted)
	})
}

func TestTransaction_ContentHash(t *testing.T) {
	txn := newBalancedDraft(t)
	other := newBalancedDraft(t)

	assert.Equal(t, txn.ContentHash(), other.ContentHash(), "identical content must hash identically")
	assert.Len(t, txn.ContentHash(), 64)

	require.NoError(t, other.UpdateDetails(other.TransactionDate, "Office rent February", other.ReferenceNumber, "user-1", time.Now()))
	assert.NotEqual(t, txn.ContentHash(), other.ContentHash(), "description change must change the hash")

	edited := newBalancedDraft(t)
	require.NoError(t, edited.ClearLines())
	require.NoError(t, edited.AddLine("line-1", "acc-rent", domain.Debit, decimal.NewFromInt(1300), ""))
	require.NoError(t, edited.AddLine("line-2", "acc-cash", domain.Credit, decimal.NewFromInt(1300), ""))
	assert.NotEqual(t, txn.ContentHash(), edited.ContentHash(), "line change must change the hash")
}

func TestTransactionType_Opposite(t *testing.T) {
	assert.Equal(t, domain.Credit, domain.Debit.Opposite())
	assert.Equal(t, domain.Debit, domain.Credit.Opposite())
}
