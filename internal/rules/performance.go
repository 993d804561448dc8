package rules

import (
	"regexp"
	"strings"

	"github.com/ludo-technologies/jrev/domain"
	"github.com/ludo-technologies/jrev/internal/constants"
)

var loopHeaderRe = regexp.MustCompile(`^\s*(?:for|while)\s*\(`)

// PerformanceCheck flags string concatenation inside loop bodies.
// Loop nesting is tracked with a local brace-depth accumulator built per
// invocation; nothing is shared between files or invocations.
type PerformanceCheck struct{}

// Name implements Check
func (c *PerformanceCheck) Name() string { return constants.RulePerformance }

// Category implements Check
func (c *PerformanceCheck) Category() domain.Category { return domain.CategoryPerformance }

// Evaluate implements Check
func (c *PerformanceCheck) Evaluate(unit *domain.SourceUnit) ([]domain.Issue, error) {
	if unit == nil {
		return nil, errNilUnit(c.Name())
	}

	var issues []domain.Issue
	depth := 0
	var loopDepths []int // brace depth at each enclosing loop header

	for i, raw := range unit.Lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || isComment(line) {
			continue
		}

		inLoopBody := len(loopDepths) > 0 && depth > loopDepths[len(loopDepths)-1]
		if inLoopBody && isStringConcat(line) {
			issues = append(issues, domain.Issue{
				LineNumber: lineNo,
				Severity:   domain.SeverityInfo,
				Category:   domain.CategoryPerformance,
				Message:    "string concatenation inside a loop",
				Suggestion: "accumulate with a StringBuilder instead of repeated concatenation",
			})
		}

		if loopHeaderRe.MatchString(line) {
			loopDepths = append(loopDepths, depth)
		}

		depth += braceDelta(line)
		if depth < 0 {
			depth = 0
		}
		for len(loopDepths) > 0 && depth <= loopDepths[len(loopDepths)-1] {
			loopDepths = loopDepths[:len(loopDepths)-1]
		}
	}
	return issues, nil
}

// isStringConcat is a cheap signal for string building: a quoted literal
// joined with +, or += appending to something with a quoted literal.
func isStringConcat(line string) bool {
	if strings.Contains(line, "\" +") || strings.Contains(line, "+ \"") {
		return true
	}
	return strings.Contains(line, "+=") && strings.Contains(line, "\"")
}
