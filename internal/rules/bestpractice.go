package rules

import (
	"regexp"
	"strings"

	"github.com/ludo-technologies/jrev/domain"
	"github.com/ludo-technologies/jrev/internal/constants"
)

var (
	magicNumberRe = regexp.MustCompile(`\b\d{2,}\b`)
	basePrefixRe  = regexp.MustCompile(`0[xXbB]`)
)

// BestPracticeCheck flags magic numeric literals and TODO/FIXME markers
type BestPracticeCheck struct{}

// Name implements Check
func (c *BestPracticeCheck) Name() string { return constants.RuleBestPractice }

// Category implements Check
func (c *BestPracticeCheck) Category() domain.Category { return domain.CategoryBestPractice }

// Evaluate implements Check
func (c *BestPracticeCheck) Evaluate(unit *domain.SourceUnit) ([]domain.Issue, error) {
	if unit == nil {
		return nil, errNilUnit(c.Name())
	}

	var issues []domain.Issue
	for i, raw := range unit.Lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if containsAny(line, "TODO", "FIXME") {
			issues = append(issues, domain.Issue{
				LineNumber: lineNo,
				Severity:   domain.SeverityInfo,
				Category:   domain.CategoryBestPractice,
				Message:    "TODO or FIXME marker found",
				Suggestion: "resolve the pending work or track it in the issue tracker",
			})
		}

		if isComment(line) {
			continue
		}

		// final declarations are the named constants the rule asks for
		if magicNumberRe.MatchString(line) &&
			!basePrefixRe.MatchString(line) &&
			!strings.Contains(line, "final ") {
			issues = append(issues, domain.Issue{
				LineNumber: lineNo,
				Severity:   domain.SeverityInfo,
				Category:   domain.CategoryBestPractice,
				Message:    "possible magic number",
				Suggestion: "extract the literal into a named constant",
			})
		}
	}
	return issues, nil
}
