package service

import (
	"fmt"

	"github.com/ludo-technologies/jrev/domain"
)

// GateServiceImpl implements domain.GateService
type GateServiceImpl struct{}

// NewGateService creates a new gate service
func NewGateService() *GateServiceImpl {
	return &GateServiceImpl{}
}

// Evaluate applies the configured thresholds to a set of file reports.
// Every violated threshold is reported; the decision never short-circuits
// after the first violation. An empty report set trivially passes.
func (s *GateServiceImpl) Evaluate(reports []domain.FileReport, cfg domain.GateConfig) domain.GateDecision {
	decision := domain.GateDecision{
		Passed:       true,
		Violations:   []domain.GateViolation{},
		FilesChecked: len(reports),
	}

	var scoreSum float64
	for _, r := range reports {
		scoreSum += r.Score
		decision.TotalErrors += r.ErrorCount()
		decision.TotalWarnings += r.WarningCount()
	}
	if len(reports) > 0 {
		decision.AverageScore = scoreSum / float64(len(reports))
	} else {
		// Nothing to judge; treat the absence of files as a clean slate
		decision.AverageScore = 100
	}

	if decision.AverageScore < cfg.MinScore {
		decision.Violations = append(decision.Violations, domain.GateViolation{
			Rule:      domain.GateRuleMinScore,
			Message:   "average score is below the minimum",
			Actual:    fmt.Sprintf("%.1f", decision.AverageScore),
			Threshold: fmt.Sprintf("%.1f", cfg.MinScore),
		})
	}

	if decision.TotalErrors > cfg.MaxErrors {
		decision.Violations = append(decision.Violations, domain.GateViolation{
			Rule:      domain.GateRuleMaxErrors,
			Message:   "too many error findings",
			Actual:    fmt.Sprintf("%d", decision.TotalErrors),
			Threshold: fmt.Sprintf("%d", cfg.MaxErrors),
		})
	}

	if decision.TotalWarnings > cfg.MaxWarnings {
		decision.Violations = append(decision.Violations, domain.GateViolation{
			Rule:      domain.GateRuleMaxWarnings,
			Message:   "too many warning findings",
			Actual:    fmt.Sprintf("%d", decision.TotalWarnings),
			Threshold: fmt.Sprintf("%d", cfg.MaxWarnings),
		})
	}

	decision.Passed = len(decision.Violations) == 0
	return decision
}
