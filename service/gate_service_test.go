package service

import (
	"testing"

	"github.com/ludo-technologies/jrev/domain"
)

func reportWith(score float64, errors, warnings int) domain.FileReport {
	var issues []domain.Issue
	for i := 0; i < errors; i++ {
		issues = append(issues, domain.Issue{LineNumber: i + 1, Severity: domain.SeverityError, Category: domain.CategoryException, Message: "e"})
	}
	for i := 0; i < warnings; i++ {
		issues = append(issues, domain.Issue{LineNumber: i + 100, Severity: domain.SeverityWarning, Category: domain.CategoryLogging, Message: "w"})
	}
	return domain.FileReport{FilePath: "X.java", Score: score, Issues: issues}
}

func violationRules(d domain.GateDecision) []string {
	var rules []string
	for _, v := range d.Violations {
		rules = append(rules, v.Rule)
	}
	return rules
}

func TestGateEvaluate(t *testing.T) {
	gate := NewGateService()
	cfg := domain.DefaultGateConfig()

	t.Run("clean run passes", func(t *testing.T) {
		decision := gate.Evaluate([]domain.FileReport{reportWith(100, 0, 0)}, cfg)
		if !decision.Passed {
			t.Errorf("expected pass: %+v", decision)
		}
		if len(decision.Violations) != 0 {
			t.Errorf("expected no violations, got %v", decision.Violations)
		}
	})

	t.Run("low score fails on min-score only", func(t *testing.T) {
		decision := gate.Evaluate([]domain.FileReport{reportWith(60, 0, 3)}, cfg)
		if decision.Passed {
			t.Fatal("expected failure")
		}
		rules := violationRules(decision)
		if len(rules) != 1 || rules[0] != domain.GateRuleMinScore {
			t.Errorf("violations = %v, want only min-score", rules)
		}
	})

	t.Run("single error fails max-errors", func(t *testing.T) {
		decision := gate.Evaluate([]domain.FileReport{reportWith(90, 1, 0)}, cfg)
		if decision.Passed {
			t.Fatal("expected failure")
		}
		rules := violationRules(decision)
		if len(rules) != 1 || rules[0] != domain.GateRuleMaxErrors {
			t.Errorf("violations = %v, want only max-errors", rules)
		}
	})

	t.Run("all thresholds reported together", func(t *testing.T) {
		decision := gate.Evaluate([]domain.FileReport{reportWith(10, 3, 15)}, cfg)
		if decision.Passed {
			t.Fatal("expected failure")
		}
		if len(decision.Violations) != 3 {
			t.Errorf("got %d violations, want 3: %v", len(decision.Violations), decision.Violations)
		}
	})

	t.Run("warning count at the limit passes", func(t *testing.T) {
		decision := gate.Evaluate([]domain.FileReport{reportWith(80, 0, cfg.MaxWarnings)}, cfg)
		if !decision.Passed {
			t.Errorf("expected pass at the exact limit: %+v", decision.Violations)
		}
	})

	t.Run("average is computed across files", func(t *testing.T) {
		reports := []domain.FileReport{reportWith(100, 0, 0), reportWith(40, 0, 0)}
		decision := gate.Evaluate(reports, cfg)
		if decision.AverageScore != 70 {
			t.Errorf("AverageScore = %v, want 70", decision.AverageScore)
		}
		if !decision.Passed {
			t.Errorf("average exactly at the threshold should pass: %+v", decision.Violations)
		}
	})

	t.Run("empty report set passes", func(t *testing.T) {
		decision := gate.Evaluate(nil, cfg)
		if !decision.Passed {
			t.Errorf("expected pass for empty input: %+v", decision)
		}
		if decision.FilesChecked != 0 {
			t.Errorf("FilesChecked = %d, want 0", decision.FilesChecked)
		}
	})
}
