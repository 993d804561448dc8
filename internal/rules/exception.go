package rules

import (
	"regexp"
	"strings"

	"github.com/ludo-technologies/jrev/domain"
	"github.com/ludo-technologies/jrev/internal/constants"
)

var (
	genericCatchRe = regexp.MustCompile(`catch\s*\(\s*(?:final\s+)?(?:Exception|Throwable)\b`)
	catchHeaderRe  = regexp.MustCompile(`catch\s*\(`)
)

// ExceptionCheck flags weak exception handling: empty catch blocks,
// catching or throwing overly generic exception types.
type ExceptionCheck struct{}

// Name implements Check
func (c *ExceptionCheck) Name() string { return constants.RuleException }

// Category implements Check
func (c *ExceptionCheck) Category() domain.Category { return domain.CategoryException }

// Evaluate implements Check
func (c *ExceptionCheck) Evaluate(unit *domain.SourceUnit) ([]domain.Issue, error) {
	if unit == nil {
		return nil, errNilUnit(c.Name())
	}

	var issues []domain.Issue
	for i, raw := range unit.Lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || isComment(line) {
			continue
		}

		if catchHeaderRe.MatchString(line) {
			if isEmptyCatchBody(catchBody(unit.Lines, i)) {
				issues = append(issues, domain.Issue{
					LineNumber: lineNo,
					Severity:   domain.SeverityError,
					Category:   domain.CategoryException,
					Message:    "empty catch block",
					Suggestion: "log the exception or rethrow it; swallowing it hides failures",
				})
			}

			if genericCatchRe.MatchString(line) {
				issues = append(issues, domain.Issue{
					LineNumber: lineNo,
					Severity:   domain.SeverityWarning,
					Category:   domain.CategoryException,
					Message:    "catches the generic Exception type",
					Suggestion: "catch the specific exception the block can actually handle",
				})
			}
		}

		if strings.Contains(line, "throws Exception") {
			issues = append(issues, domain.Issue{
				LineNumber: lineNo,
				Severity:   domain.SeverityWarning,
				Category:   domain.CategoryException,
				Message:    "throws the generic Exception type",
				Suggestion: "declare a specific exception such as ParseException or IOException",
			})
		}
	}
	return issues, nil
}
