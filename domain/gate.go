package domain

// Gate threshold names reported in violations
const (
	GateRuleMinScore    = "min-score"
	GateRuleMaxErrors   = "max-errors"
	GateRuleMaxWarnings = "max-warnings"
)

// GateConfig holds the quality thresholds applied to a review run
type GateConfig struct {
	// MinScore is the minimum acceptable average score
	MinScore float64 `json:"min_score"`

	// MaxErrors is the maximum tolerated number of error issues
	MaxErrors int `json:"max_errors"`

	// MaxWarnings is the maximum tolerated number of warning issues
	MaxWarnings int `json:"max_warnings"`
}

// DefaultGateConfig returns the default gate thresholds
func DefaultGateConfig() GateConfig {
	return GateConfig{
		MinScore:    70.0,
		MaxErrors:   0,
		MaxWarnings: 10,
	}
}

// GateViolation represents a single threshold violation
type GateViolation struct {
	Rule      string `json:"rule"`      // min-score, max-errors, max-warnings
	Message   string `json:"message"`   // Human-readable description
	Actual    string `json:"actual"`    // Actual value
	Threshold string `json:"threshold"` // Configured threshold
}

// GateDecision is the accept/reject outcome for a set of file reports
type GateDecision struct {
	Passed     bool            `json:"passed"`
	Violations []GateViolation `json:"violations"`

	// Totals the decision was based on
	AverageScore  float64 `json:"average_score"`
	TotalErrors   int     `json:"total_errors"`
	TotalWarnings int     `json:"total_warnings"`
	FilesChecked  int     `json:"files_checked"`
}

// GateService evaluates file reports against configured thresholds.
// Evaluate is pure: no I/O, no hidden state, deterministic.
type GateService interface {
	Evaluate(reports []FileReport, config GateConfig) GateDecision
}
