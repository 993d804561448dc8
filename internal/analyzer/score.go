package analyzer

import "github.com/ludo-technologies/jrev/domain"

// Severity weights used by the scorer. The deduction for a file depends
// only on the multiset of issue severities, never on file length.
const (
	WeightError   = 10
	WeightWarning = 5
	WeightInfo    = 1

	// ScoreBase is both the starting score and the fixed normalizer.
	ScoreBase = 100
)

// SeverityWeight returns the deduction for one issue of the given severity
func SeverityWeight(sev domain.Severity) int {
	switch sev {
	case domain.SeverityError:
		return WeightError
	case domain.SeverityWarning:
		return WeightWarning
	default:
		return WeightInfo
	}
}

// Score computes the 0-100 quality score for a set of issues. An empty set
// scores exactly 100; deductions accumulate per issue and the result is
// clamped at zero.
func Score(issues []domain.Issue) float64 {
	deduction := 0
	for _, issue := range issues {
		deduction += SeverityWeight(issue.Severity)
	}
	score := ScoreBase - deduction
	if score < 0 {
		score = 0
	}
	return float64(score)
}
