package edgecase

import "fmt"

// DuplicateDetector flags transactions when another transaction already
// exists for the same company with the same total amount, description and
// date. Candidates are resolved by the caller before the run.
type DuplicateDetector struct{}

func (DuplicateDetector) Name() string { return "duplicate" }

func (DuplicateDetector) Detect(in Input, _ Thresholds) []Flag {
	if len(in.DuplicateCandidates) == 0 {
		return nil
	}
	prior := in.DuplicateCandidates[0]
	return []Flag{{
		Type:             FlagDuplicateTransaction,
		Description:      fmt.Sprintf("matches existing transaction %s on amount, description and date", prior.TransactionNumber),
		RequiresApproval: false,
		Context: map[string]any{
			"duplicate_of":        prior.TransactionNumber,
			"duplicate_of_id":     prior.TransactionID,
			"matching_candidates": len(in.DuplicateCandidates),
		},
	}}
}
