package edgecase_test

import (
	"testing"
	"time"

	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/finbooks/finbooks_app/internal/core/edgecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// detectionNow anchors all date arithmetic in these tests. Mid-month and
// mid-quarter so no period-end flag fires by accident.
var detectionNow = time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC)

func balancedInput(total int64, lines ...edgecase.LineContext) edgecase.Input {
	if len(lines) == 0 {
		lines = []edgecase.LineContext{
			{
				AccountID:      "acc-exp",
				AccountName:    "Office Supplies",
				AccountType:    domain.Expense,
				LineType:       domain.Debit,
				Amount:         decimal.NewFromInt(total),
				CurrentBalance: decimal.NewFromInt(100000),
			},
			{
				AccountID:      "acc-cash",
				AccountName:    "Cash",
				AccountType:    domain.Asset,
				LineType:       domain.Credit,
				Amount:         decimal.NewFromInt(total),
				CurrentBalance: decimal.NewFromInt(100000),
			},
		}
	}
	return edgecase.Input{
		CompanyID:       "comp-1",
		TransactionID:   "txn-1",
		TransactionDate: detectionNow.AddDate(0, 0, -1),
		Description:     "Quarterly supplier settlement",
		Lines:           lines,
		Now:             detectionNow,
	}
}

func flagTypes(result edgecase.Result) []edgecase.FlagType {
	var types []edgecase.FlagType
	for _, f := range result.Flags() {
		types = append(types, f.Type)
	}
	return types
}

func findFlag(t *testing.T, result edgecase.Result, flagType edgecase.FlagType) edgecase.Flag {
	t.Helper()
	for _, f := range result.Flags() {
		if f.Type == flagType {
			return f
		}
	}
	t.Fatalf("flag %s not raised, got %v", flagType, flagTypes(result))
	return edgecase.Flag{}
}

func TestEngine_CleanTransactionRaisesNothing(t *testing.T) {
	engine := edgecase.NewEngine()

	result := engine.Detect(balancedInput(1250), edgecase.DefaultThresholds("comp-1"))

	assert.False(t, result.HasFlags(), "got %v", flagTypes(result))
	assert.False(t, result.RequiresApproval())
	assert.Equal(t, edgecase.ApprovalTypeTransaction, result.SuggestedApprovalType())
}

func TestAmountDetector(t *testing.T) {
	engine := edgecase.NewEngineWith(edgecase.AmountDetector{})
	thresholds := edgecase.DefaultThresholds("comp-1")

	t.Run("above threshold requires approval", func(t *testing.T) {
		result := engine.Detect(balancedInput(15250), thresholds)

		flag := findFlag(t, result, edgecase.FlagLargeAmount)
		assert.True(t, flag.RequiresApproval)
		assert.Equal(t, "15250", flag.Context["amount"])
		assert.Equal(t, edgecase.ApprovalTypeHighValue, result.SuggestedApprovalType())
	})

	t.Run("just below threshold is review only", func(t *testing.T) {
		result := engine.Detect(balancedInput(9500), thresholds)

		flag := findFlag(t, result, edgecase.FlagBelowThreshold)
		assert.False(t, flag.RequiresApproval)
		assert.False(t, result.RequiresApproval())
	})

	t.Run("below the near window raises nothing", func(t *testing.T) {
		result := engine.Detect(balancedInput(8999), thresholds)
		assert.False(t, result.HasFlags())
	})

	t.Run("exactly at threshold is near not over", func(t *testing.T) {
		result := engine.Detect(balancedInput(10000), thresholds)

		assert.NotContains(t, flagTypes(result), edgecase.FlagLargeAmount)
		assert.Contains(t, flagTypes(result), edgecase.FlagBelowThreshold)
	})

	t.Run("round multiple of one thousand", func(t *testing.T) {
		result := engine.Detect(balancedInput(7000), thresholds)

		flag := findFlag(t, result, edgecase.FlagRoundNumber)
		assert.False(t, flag.RequiresApproval)
	})

	t.Run("round numbers below the minimum are ignored", func(t *testing.T) {
		result := engine.Detect(balancedInput(4000), thresholds)
		assert.False(t, result.HasFlags())
	})

	t.Run("round number flag can be disabled", func(t *testing.T) {
		quiet := thresholds
		quiet.FlagRoundNumbers = false
		result := engine.Detect(balancedInput(7000), quiet)
		assert.False(t, result.HasFlags())
	})
}

func TestTimingDetector(t *testing.T) {
	engine := edgecase.NewEngineWith(edgecase.TimingDetector{})
	thresholds := edgecase.DefaultThresholds("comp-1")

	t.Run("backdated beyond threshold", func(t *testing.T) {
		in := balancedInput(100)
		in.TransactionDate = detectionNow.AddDate(0, 0, -40)

		result := engine.Detect(in, thresholds)

		flag := findFlag(t, result, edgecase.FlagBackdated)
		assert.True(t, flag.RequiresApproval)
		assert.Equal(t, 40, flag.Context["days_back"])
		assert.Equal(t, edgecase.ApprovalTypeBackdated, result.SuggestedApprovalType())
	})

	t.Run("backdated within threshold passes", func(t *testing.T) {
		in := balancedInput(100)
		in.TransactionDate = detectionNow.AddDate(0, 0, -30)

		result := engine.Detect(in, thresholds)
		assert.False(t, result.HasFlags())
	})

	t.Run("future dated always requires approval", func(t *testing.T) {
		in := balancedInput(100)
		in.TransactionDate = detectionNow.AddDate(0, 0, 2)

		result := engine.Detect(in, thresholds)

		flag := findFlag(t, result, edgecase.FlagFutureDated)
		assert.True(t, flag.RequiresApproval)
		assert.Equal(t, 2, flag.Context["days_ahead"])
	})

	t.Run("same day is neither future nor backdated", func(t *testing.T) {
		in := balancedInput(100)
		in.TransactionDate = detectionNow

		result := engine.Detect(in, thresholds)
		assert.False(t, result.HasFlags())
	})
}

func TestAccountTypeDetector(t *testing.T) {
	engine := edgecase.NewEngineWith(edgecase.AccountTypeDetector{})
	thresholds := edgecase.DefaultThresholds("comp-1")

	tests := []struct {
		name        string
		accountType domain.AccountType
		lineType    domain.TransactionType
		want        edgecase.FlagType
	}{
		{"debit to revenue", domain.Revenue, domain.Debit, edgecase.FlagContraRevenue},
		{"credit to expense", domain.Expense, domain.Credit, edgecase.FlagContraExpense},
		{"debit to equity", domain.Equity, domain.Debit, edgecase.FlagEquityAdjustment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := balancedInput(0, edgecase.LineContext{
				AccountID:   "acc-1",
				AccountName: "Target",
				AccountType: tt.accountType,
				LineType:    tt.lineType,
				Amount:      decimal.NewFromInt(500),
			})

			result := engine.Detect(in, thresholds)

			flag := findFlag(t, result, tt.want)
			assert.True(t, flag.RequiresApproval)
			assert.Equal(t, edgecase.ApprovalTypeAdjustment, result.SuggestedApprovalType())
		})
	}

	t.Run("credit to equity is normal", func(t *testing.T) {
		in := balancedInput(0, edgecase.LineContext{
			AccountID:   "acc-1",
			AccountName: "Retained Earnings",
			AccountType: domain.Equity,
			LineType:    domain.Credit,
			Amount:      decimal.NewFromInt(500),
		})

		result := engine.Detect(in, thresholds)
		assert.False(t, result.HasFlags())
	})

	t.Run("contra flags become review only when the toggle is off", func(t *testing.T) {
		relaxed := thresholds
		relaxed.RequireApprovalForContraEntries = false

		in := balancedInput(0, edgecase.LineContext{
			AccountID:   "acc-1",
			AccountName: "Sales",
			AccountType: domain.Revenue,
			LineType:    domain.Debit,
			Amount:      decimal.NewFromInt(500),
		})

		result := engine.Detect(in, relaxed)

		flag := findFlag(t, result, edgecase.FlagContraRevenue)
		assert.False(t, flag.RequiresApproval)
		assert.False(t, result.RequiresApproval())
	})
}

func TestBalanceImpactDetector(t *testing.T) {
	engine := edgecase.NewEngineWith(edgecase.BalanceImpactDetector{})
	thresholds := edgecase.DefaultThresholds("comp-1")

	overdraw := edgecase.LineContext{
		AccountID:      "acc-cash",
		AccountName:    "Cash",
		AccountType:    domain.Asset,
		LineType:       domain.Credit,
		Amount:         decimal.NewFromInt(500),
		CurrentBalance: decimal.NewFromInt(300),
	}

	t.Run("projected negative balance requires approval", func(t *testing.T) {
		result := engine.Detect(balancedInput(0, overdraw), thresholds)

		flag := findFlag(t, result, edgecase.FlagNegativeBalance)
		assert.True(t, flag.RequiresApproval)
		assert.Equal(t, "-200", flag.Context["projected_balance"])
		assert.Equal(t, edgecase.ApprovalTypeNegativeBalance, result.SuggestedApprovalType())
	})

	t.Run("projection to exactly zero passes", func(t *testing.T) {
		toZero := overdraw
		toZero.Amount = decimal.NewFromInt(300)

		result := engine.Detect(balancedInput(0, toZero), thresholds)
		assert.False(t, result.HasFlags())
	})

	t.Run("detector is silent when the toggle is off", func(t *testing.T) {
		relaxed := thresholds
		relaxed.RequireApprovalForNegativeBalance = false

		result := engine.Detect(balancedInput(0, overdraw), relaxed)
		assert.False(t, result.HasFlags())
	})
}

func TestDocumentationDetector(t *testing.T) {
	engine := edgecase.NewEngineWith(edgecase.DocumentationDetector{})
	thresholds := edgecase.DefaultThresholds("comp-1")

	t.Run("short description is flagged", func(t *testing.T) {
		in := balancedInput(100)
		in.Description = "ok"

		result := engine.Detect(in, thresholds)

		flag := findFlag(t, result, edgecase.FlagMissingDescription)
		assert.False(t, flag.RequiresApproval)
		assert.Equal(t, 2, flag.Context["description_length"])
	})

	t.Run("whitespace does not count", func(t *testing.T) {
		in := balancedInput(100)
		in.Description = "  ab   "

		result := engine.Detect(in, thresholds)
		assert.Contains(t, flagTypes(result), edgecase.FlagMissingDescription)
	})

	t.Run("adequate description passes", func(t *testing.T) {
		in := balancedInput(100)
		in.Description = "March rent"

		result := engine.Detect(in, thresholds)
		assert.False(t, result.HasFlags())
	})
}

func TestDormantAccountDetector(t *testing.T) {
	engine := edgecase.NewEngineWith(edgecase.DormantAccountDetector{})
	thresholds := edgecase.DefaultThresholds("comp-1")

	t.Run("long idle account is flagged", func(t *testing.T) {
		lastActivity := detectionNow.AddDate(0, 0, -400)
		in := balancedInput(0, edgecase.LineContext{
			AccountID:      "acc-old",
			AccountName:    "Legacy Clearing",
			AccountType:    domain.Asset,
			LineType:       domain.Debit,
			Amount:         decimal.NewFromInt(100),
			LastActivityAt: &lastActivity,
		})

		result := engine.Detect(in, thresholds)

		flag := findFlag(t, result, edgecase.FlagDormantAccount)
		assert.False(t, flag.RequiresApproval)
		assert.Equal(t, 400, flag.Context["idle_days"])
	})

	t.Run("account with no prior activity is new not dormant", func(t *testing.T) {
		in := balancedInput(0, edgecase.LineContext{
			AccountID:   "acc-new",
			AccountName: "New Account",
			AccountType: domain.Asset,
			LineType:    domain.Debit,
			Amount:      decimal.NewFromInt(100),
		})

		result := engine.Detect(in, thresholds)
		assert.False(t, result.HasFlags())
	})

	t.Run("recent activity passes", func(t *testing.T) {
		lastActivity := detectionNow.AddDate(0, 0, -10)
		in := balancedInput(0, edgecase.LineContext{
			AccountID:      "acc-live",
			AccountName:    "Cash",
			AccountType:    domain.Asset,
			LineType:       domain.Debit,
			Amount:         decimal.NewFromInt(100),
			LastActivityAt: &lastActivity,
		})

		result := engine.Detect(in, thresholds)
		assert.False(t, result.HasFlags())
	})
}

func TestDuplicateDetector(t *testing.T) {
	engine := edgecase.NewEngineWith(edgecase.DuplicateDetector{})
	thresholds := edgecase.DefaultThresholds("comp-1")

	t.Run("prior matching transaction is flagged", func(t *testing.T) {
		in := balancedInput(100)
		in.DuplicateCandidates = []edgecase.PriorTransaction{
			{TransactionID: "txn-9", TransactionNumber: "TXN-202605-00009"},
			{TransactionID: "txn-8", TransactionNumber: "TXN-202605-00008"},
		}

		result := engine.Detect(in, thresholds)

		flag := findFlag(t, result, edgecase.FlagDuplicateTransaction)
		assert.False(t, flag.RequiresApproval)
		assert.Equal(t, "TXN-202605-00009", flag.Context["duplicate_of"])
		assert.Equal(t, 2, flag.Context["matching_candidates"])
	})

	t.Run("no candidates no flag", func(t *testing.T) {
		result := engine.Detect(balancedInput(100), thresholds)
		assert.False(t, result.HasFlags())
	})
}

func TestPeriodEndDetector(t *testing.T) {
	engine := edgecase.NewEngineWith(edgecase.PeriodEndDetector{})
	thresholds := edgecase.DefaultThresholds("comp-1")

	tests := []struct {
		name       string
		date       time.Time
		wantPeriod string
	}{
		{"end of a plain month", time.Date(2026, 5, 30, 0, 0, 0, 0, time.UTC), "month_end"},
		{"end of a quarter month", time.Date(2026, 6, 29, 0, 0, 0, 0, time.UTC), "quarter_end"},
		{"end of december", time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC), "year_end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := balancedInput(100)
			in.TransactionDate = tt.date

			result := engine.Detect(in, thresholds)

			flag := findFlag(t, result, edgecase.FlagPeriodEnd)
			assert.False(t, flag.RequiresApproval)
			assert.Equal(t, tt.wantPeriod, flag.Context["period"])
		})
	}

	t.Run("mid month passes", func(t *testing.T) {
		in := balancedInput(100)
		in.TransactionDate = time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)

		result := engine.Detect(in, thresholds)
		assert.False(t, result.HasFlags())
	})

	t.Run("detector can be disabled", func(t *testing.T) {
		quiet := thresholds
		quiet.FlagPeriodEndEntries = false

		in := balancedInput(100)
		in.TransactionDate = time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

		result := engine.Detect(in, quiet)
		assert.False(t, result.HasFlags())
	})
}

func TestEngine_MergesFlagsAcrossDetectors(t *testing.T) {
	engine := edgecase.NewEngine()

	in := balancedInput(15250)
	in.Description = "x"
	in.TransactionDate = detectionNow.AddDate(0, 0, -40)

	result := engine.Detect(in, edgecase.DefaultThresholds("comp-1"))

	types := flagTypes(result)
	assert.Contains(t, types, edgecase.FlagLargeAmount)
	assert.Contains(t, types, edgecase.FlagBackdated)
	assert.Contains(t, types, edgecase.FlagMissingDescription)
	assert.True(t, result.RequiresApproval())
	require.Equal(t, edgecase.ApprovalTypeHighValue, result.SuggestedApprovalType(),
		"large amount outranks backdated")
}
