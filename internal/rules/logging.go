package rules

import (
	"strings"

	"github.com/ludo-technologies/jrev/domain"
	"github.com/ludo-technologies/jrev/internal/constants"
)

// catchLogWindow is how many lines after a catch header are searched for a
// log statement before the catch is flagged as silent.
const catchLogWindow = 10

// LoggingCheck flags console printing and catch blocks without logging
type LoggingCheck struct{}

// Name implements Check
func (c *LoggingCheck) Name() string { return constants.RuleLogging }

// Category implements Check
func (c *LoggingCheck) Category() domain.Category { return domain.CategoryLogging }

// Evaluate implements Check
func (c *LoggingCheck) Evaluate(unit *domain.SourceUnit) ([]domain.Issue, error) {
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

		if strings.Contains(line, "System.out.println") {
			issues = append(issues, domain.Issue{
				LineNumber: lineNo,
				Severity:   domain.SeverityWarning,
				Category:   domain.CategoryLogging,
				Message:    "System.out.println used for output",
				Suggestion: "use a logging framework such as SLF4J with Logback",
			})
		}

		if strings.Contains(line, "System.err.println") {
			issues = append(issues, domain.Issue{
				LineNumber: lineNo,
				Severity:   domain.SeverityWarning,
				Category:   domain.CategoryLogging,
				Message:    "System.err.println used for error output",
				Suggestion: "log at ERROR level through the logging framework",
			})
		}

		if strings.Contains(line, "catch") && strings.Contains(line, "Exception") {
			// An empty catch is already an error finding; flagging it
			// again for missing logging would double-count it.
			if !isEmptyCatchBody(catchBody(unit.Lines, i)) && !hasLogStatementAfter(unit.Lines, i) {
				issues = append(issues, domain.Issue{
					LineNumber: lineNo,
					Severity:   domain.SeverityWarning,
					Category:   domain.CategoryLogging,
					Message:    "catch block has no log statement",
					Suggestion: "record the exception in the catch block for debugging and monitoring",
				})
			}
		}
	}
	return issues, nil
}

// hasLogStatementAfter scans the catch body window for any logging call
func hasLogStatementAfter(lines []string, catchIdx int) bool {
	end := catchIdx + catchLogWindow
	if end > len(lines) {
		end = len(lines)
	}
	for j := catchIdx; j < end; j++ {
		if containsAny(lines[j], "log.", "Logger", "System.out") {
			return true
		}
	}
	return false
}
