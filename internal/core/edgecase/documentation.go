package edgecase

import (
	"fmt"
	"strings"
)

// minDescriptionLength is the shortest description considered adequate
// documentation, after trimming whitespace.
const minDescriptionLength = 5

// DocumentationDetector flags transactions whose description is too short
// to explain the entry.
type DocumentationDetector struct{}

func (DocumentationDetector) Name() string { return "documentation" }

func (DocumentationDetector) Detect(in Input, _ Thresholds) []Flag {
	trimmed := strings.TrimSpace(in.Description)
	if len(trimmed) >= minDescriptionLength {
		return nil
	}
	return []Flag{{
		Type:             FlagMissingDescription,
		Description:      fmt.Sprintf("description %q is shorter than %d characters", trimmed, minDescriptionLength),
		RequiresApproval: false,
		Context:          map[string]any{"description_length": len(trimmed)},
	}}
}
