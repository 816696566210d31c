package edgecase

// Detector is one independent, stateless rule. Detectors are pure
// functions over the input and thresholds and emit zero or more flags.
type Detector interface {
	Name() string
	Detect(in Input, th Thresholds) []Flag
}

// Engine runs a fixed set of detectors and merges their flags into a
// single detection result.
type Engine struct {
	detectors []Detector
}

// NewEngine creates an engine with the full standard rule set.
func NewEngine() *Engine {
	return &Engine{
		detectors: []Detector{
			TimingDetector{},
			AmountDetector{},
			AccountTypeDetector{},
			BalanceImpactDetector{},
			DocumentationDetector{},
			DormantAccountDetector{},
			DuplicateDetector{},
			PeriodEndDetector{},
		},
	}
}

// NewEngineWith creates an engine with a custom rule set. Mostly useful
// in tests that exercise one detector in isolation.
func NewEngineWith(detectors ...Detector) *Engine {
	return &Engine{detectors: detectors}
}

// Detect runs every detector and concatenates their flags.
func (e *Engine) Detect(in Input, th Thresholds) Result {
	var flags []Flag
	for _, d := range e.detectors {
		flags = append(flags, d.Detect(in, th)...)
	}
	return NewResult(flags)
}
