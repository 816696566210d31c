package edgecase

// Approval types suggested by a detection result, by descending priority.
const (
	ApprovalTypeNegativeBalance = "negative_balance"
	ApprovalTypeHighValue       = "high_value"
	ApprovalTypeBackdated       = "backdated"
	ApprovalTypeAdjustment      = "adjustment"
	ApprovalTypeTransaction     = "transaction"
)

// Result is an immutable collection of flags raised by one detection run.
type Result struct {
	flags []Flag
}

// NewResult builds a result from the given flags.
func NewResult(flags []Flag) Result {
	copied := make([]Flag, len(flags))
	copy(copied, flags)
	return Result{flags: copied}
}

// Merge concatenates the flags of two results.
func (r Result) Merge(other Result) Result {
	merged := make([]Flag, 0, len(r.flags)+len(other.flags))
	merged = append(merged, r.flags...)
	merged = append(merged, other.flags...)
	return Result{flags: merged}
}

// Flags returns a copy of the raised flags.
func (r Result) Flags() []Flag {
	copied := make([]Flag, len(r.flags))
	copy(copied, r.flags)
	return copied
}

// HasFlags reports whether any rule fired.
func (r Result) HasFlags() bool {
	return len(r.flags) > 0
}

// RequiresApproval is true iff any flag requires approval.
func (r Result) RequiresApproval() bool {
	for _, f := range r.flags {
		if f.RequiresApproval {
			return true
		}
	}
	return false
}

// has reports whether a flag of the given type was raised.
func (r Result) has(flagType FlagType) bool {
	for _, f := range r.flags {
		if f.Type == flagType {
			return true
		}
	}
	return false
}

// SuggestedApprovalType resolves the approval route by fixed priority:
// negative balance, then large amount, then backdated, then equity/contra
// adjustments, falling back to a plain transaction approval.
func (r Result) SuggestedApprovalType() string {
	switch {
	case r.has(FlagNegativeBalance):
		return ApprovalTypeNegativeBalance
	case r.has(FlagLargeAmount):
		return ApprovalTypeHighValue
	case r.has(FlagBackdated):
		return ApprovalTypeBackdated
	case r.has(FlagEquityAdjustment), r.has(FlagContraRevenue), r.has(FlagContraExpense):
		return ApprovalTypeAdjustment
	default:
		return ApprovalTypeTransaction
	}
}
