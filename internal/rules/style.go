package rules

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/jrev/domain"
	"github.com/ludo-technologies/jrev/internal/constants"
)

// IndentationCheck flags obviously wrong indentation: indented top-level
// declarations and block statements sitting at column zero.
type IndentationCheck struct{}

// Name implements Check
func (c *IndentationCheck) Name() string { return constants.RuleIndentation }

// Category implements Check
func (c *IndentationCheck) Category() domain.Category { return domain.CategoryStyle }

// Evaluate implements Check
func (c *IndentationCheck) Evaluate(unit *domain.SourceUnit) ([]domain.Issue, error) {
	if unit == nil {
		return nil, errNilUnit(c.Name())
	}

	var issues []domain.Issue
	depth := 0
	for i, raw := range unit.Lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || isComment(trimmed) {
			continue
		}

		switch {
		case isTopLevelDecl(trimmed):
			if isIndented(raw) {
				issues = append(issues, domain.Issue{
					LineNumber: lineNo,
					Severity:   domain.SeverityWarning,
					Category:   domain.CategoryStyle,
					Message:    "top-level declaration should not be indented",
					Suggestion: "remove the leading whitespace",
				})
			}
		case isBlockStatement(trimmed):
			// Closing braces at the start of the line un-nest the line
			// itself; one that closes all the way back to the top level
			// (a class-closing brace) belongs at column zero.
			if !isIndented(raw) && !hasAnyPrefix(trimmed, "public", "private", "protected", "static") &&
				depth-leadingClosers(trimmed) > 0 {
				issues = append(issues, domain.Issue{
					LineNumber: lineNo,
					Severity:   domain.SeverityWarning,
					Category:   domain.CategoryStyle,
					Message:    "statement inside a block is missing indentation",
					Suggestion: "indent with 4 spaces",
				})
			}
		}

		depth += braceDelta(trimmed)
		if depth < 0 {
			depth = 0
		}
	}
	return issues, nil
}

func isTopLevelDecl(trimmed string) bool {
	return hasAnyPrefix(trimmed,
		"package ", "import ",
		"public class", "class ",
		"public interface", "interface ",
		"public enum", "enum ")
}

func isBlockStatement(trimmed string) bool {
	return hasAnyPrefix(trimmed,
		"{", "}", "if", "for", "while", "try", "catch", "finally", "return", "throw")
}

// leadingClosers counts the closing braces a line starts with, before any
// other content.
func leadingClosers(trimmed string) int {
	n := 0
	for _, r := range trimmed {
		switch r {
		case '}':
			n++
		case ' ', '\t':
		default:
			return n
		}
	}
	return n
}

// LineLengthCheck flags lines longer than the configured limit
type LineLengthCheck struct{}

// Name implements Check
func (c *LineLengthCheck) Name() string { return constants.RuleLineLength }

// Category implements Check
func (c *LineLengthCheck) Category() domain.Category { return domain.CategoryStyle }

// Evaluate implements Check
func (c *LineLengthCheck) Evaluate(unit *domain.SourceUnit) ([]domain.Issue, error) {
	if unit == nil {
		return nil, errNilUnit(c.Name())
	}

	var issues []domain.Issue
	for i, raw := range unit.Lines {
		length := len(strings.TrimSpace(raw))
		if length > constants.MaxLineLength {
			issues = append(issues, domain.Issue{
				LineNumber: i + 1,
				Severity:   domain.SeverityInfo,
				Category:   domain.CategoryStyle,
				Message:    fmt.Sprintf("line is too long (%d characters)", length),
				Suggestion: "split the line across multiple lines",
			})
		}
	}
	return issues, nil
}

// BlankLinesCheck flags runs of three or more consecutive blank lines
type BlankLinesCheck struct{}

// Name implements Check
func (c *BlankLinesCheck) Name() string { return constants.RuleBlankLines }

// Category implements Check
func (c *BlankLinesCheck) Category() domain.Category { return domain.CategoryStyle }

// Evaluate implements Check
func (c *BlankLinesCheck) Evaluate(unit *domain.SourceUnit) ([]domain.Issue, error) {
	if unit == nil {
		return nil, errNilUnit(c.Name())
	}

	var issues []domain.Issue
	runStart, runLen := 0, 0
	flush := func() {
		if runLen >= 3 {
			issues = append(issues, domain.Issue{
				LineNumber: runStart,
				Severity:   domain.SeverityInfo,
				Category:   domain.CategoryStyle,
				Message:    fmt.Sprintf("%d consecutive blank lines", runLen),
				Suggestion: "use a single blank line to separate code sections",
			})
		}
		runLen = 0
	}

	for i, raw := range unit.Lines {
		if isBlank(raw) {
			if runLen == 0 {
				runStart = i + 1
			}
			runLen++
			continue
		}
		flush()
	}
	flush()
	return issues, nil
}
