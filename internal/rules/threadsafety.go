package rules

import (
	"regexp"
	"strings"

	"github.com/ludo-technologies/jrev/domain"
	"github.com/ludo-technologies/jrev/internal/constants"
)

var (
	staticFieldRe    = regexp.MustCompile(`^\s*private\s+static\s+`)
	syncFormatterRe  = regexp.MustCompile(`synchronized\s*\(\s*\w*(?:sdf|[Ff]ormat)\w*\s*\)`)
	threadLocalOfSDF = "ThreadLocal<SimpleDateFormat>"
)

// ThreadSafetyCheck detects shared mutable formatter objects used without
// protection. A ThreadLocal wrapper is reported as a positive signal, not
// an error.
type ThreadSafetyCheck struct{}

// Name implements Check
func (c *ThreadSafetyCheck) Name() string { return constants.RuleThreadSafety }

// Category implements Check
func (c *ThreadSafetyCheck) Category() domain.Category { return domain.CategoryThreadSafety }

// Evaluate implements Check
func (c *ThreadSafetyCheck) Evaluate(unit *domain.SourceUnit) ([]domain.Issue, error) {
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

		if strings.Contains(line, threadLocalOfSDF) {
			issues = append(issues, domain.Issue{
				LineNumber: lineNo,
				Severity:   domain.SeverityInfo,
				Category:   domain.CategoryThreadSafety,
				Message:    "SimpleDateFormat is wrapped in a ThreadLocal",
				Suggestion: "keep it: thread-scoped storage is the recommended way to share SimpleDateFormat",
			})
		}

		if syncFormatterRe.MatchString(line) {
			issues = append(issues, domain.Issue{
				LineNumber: lineNo,
				Severity:   domain.SeverityInfo,
				Category:   domain.CategoryThreadSafety,
				Message:    "formatter access is synchronized",
				Suggestion: "synchronization on the shared formatter is a valid safety measure",
			})
		}

		if staticFieldRe.MatchString(raw) &&
			strings.Contains(line, "SimpleDateFormat") &&
			!strings.Contains(line, "ThreadLocal") {
			if !hasThreadLocalNearby(unit.Lines, i) {
				issues = append(issues, domain.Issue{
					LineNumber: lineNo,
					Severity:   domain.SeverityError,
					Category:   domain.CategoryThreadSafety,
					Message:    "static SimpleDateFormat is not thread safe",
					Suggestion: "wrap it in a ThreadLocal or create a new instance per use",
				})
			}
		}
	}
	return issues, nil
}

// hasThreadLocalNearby scans twenty lines around index i for a ThreadLocal
// wrapper, the signal that the class already protects its formatter.
func hasThreadLocalNearby(lines []string, i int) bool {
	start, end := i-20, i+20
	if start < 0 {
		start = 0
	}
	if end > len(lines) {
		end = len(lines)
	}
	for j := start; j < end; j++ {
		if strings.Contains(lines[j], threadLocalOfSDF) {
			return true
		}
	}
	return false
}
