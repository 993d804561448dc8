package rules

import (
	"fmt"

	"github.com/ludo-technologies/jrev/domain"
	"github.com/ludo-technologies/jrev/internal/constants"
)

// Check is a stateless rule detector. Evaluate inspects one source unit and
// returns zero or more issues. Findings are never signalled through the
// error return; a check fails only for malformed input (nil unit).
type Check interface {
	// Name identifies the check for config toggles and failure reporting
	Name() string

	// Category is the issue category this check produces
	Category() domain.Category

	// Evaluate scans the unit and returns its findings
	Evaluate(unit *domain.SourceUnit) ([]domain.Issue, error)
}

// InternalCheckError reports that a check could not run at all
type InternalCheckError struct {
	CheckName string
	Reason    string
}

// Error implements the error interface
func (e *InternalCheckError) Error() string {
	return fmt.Sprintf("check %s: %s", e.CheckName, e.Reason)
}

func errNilUnit(name string) error {
	return &InternalCheckError{CheckName: name, Reason: "nil source unit"}
}

// Catalog is the registry of checks for a review run.
// It is read-only after construction and safe for concurrent use.
type Catalog struct {
	checks []Check
}

// NewCatalog builds a catalog from the default check set, omitting any
// check whose name appears in disabled.
func NewCatalog(disabled []string) *Catalog {
	skip := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		skip[name] = true
	}

	all := []Check{
		&IndentationCheck{},
		&LineLengthCheck{},
		&BlankLinesCheck{},
		&ThreadSafetyCheck{},
		&LoggingCheck{},
		&ExceptionCheck{},
		&PerformanceCheck{},
		&BestPracticeCheck{},
	}

	catalog := &Catalog{}
	for _, chk := range all {
		if !skip[chk.Name()] {
			catalog.checks = append(catalog.checks, chk)
		}
	}
	return catalog
}

// Checks returns the registered checks
func (c *Catalog) Checks() []Check {
	return c.checks
}

// Size returns the number of registered checks
func (c *Catalog) Size() int {
	return len(c.checks)
}

// SafeEvaluate runs a single check and converts an internal check failure
// into one file-level info issue naming the check, so the remaining catalog
// keeps running.
func SafeEvaluate(chk Check, unit *domain.SourceUnit) []domain.Issue {
	issues, err := chk.Evaluate(unit)
	if err != nil {
		return []domain.Issue{{
			LineNumber: 0,
			Severity:   domain.SeverityInfo,
			Category:   domain.CategoryBestPractice,
			Message:    fmt.Sprintf("check %s did not run: %v", chk.Name(), err),
			Suggestion: "re-run with a readable source file",
		}}
	}
	return issues
}

// DefaultCheckNames lists the names of all built-in checks
func DefaultCheckNames() []string {
	return []string{
		constants.RuleIndentation,
		constants.RuleLineLength,
		constants.RuleBlankLines,
		constants.RuleThreadSafety,
		constants.RuleLogging,
		constants.RuleException,
		constants.RulePerformance,
		constants.RuleBestPractice,
	}
}
