package service

import (
	"fmt"
	"io"

	"github.com/ludo-technologies/jrev/domain"
)

// WriteMarkdownReport writes the full review as a Markdown document.
// Per-file advisory extras (improvement suggestions, generated tests) are
// included when present, making this the comprehensive report format.
func WriteMarkdownReport(response *domain.ReviewResponse, writer io.Writer) error {
	agg := response.Aggregate

	fmt.Fprintf(writer, "# Java Code Review Report\n\n")
	fmt.Fprintf(writer, "**Generated**: %s\n\n", response.GeneratedAt)

	fmt.Fprintf(writer, "## Overall Statistics\n\n")
	fmt.Fprintf(writer, "- **Files reviewed**: %d\n", agg.TotalFiles)
	fmt.Fprintf(writer, "- **Total issues**: %d\n", agg.TotalIssues)
	fmt.Fprintf(writer, "- **Average score**: %.1f/100\n", agg.AverageScore)
	fmt.Fprintf(writer, "- **Files with errors**: %d\n\n", agg.FilesWithErrors)

	writeCategoryBreakdown(agg, writer)

	fmt.Fprintf(writer, "## File Details\n\n")
	for _, file := range agg.Files {
		fmt.Fprintf(writer, "### %s\n\n", file.FileName)
		fmt.Fprintf(writer, "**Path**: `%s`\n\n", file.FilePath)
		fmt.Fprintf(writer, "**Lines**: %d\n\n", file.TotalLines)
		fmt.Fprintf(writer, "**Score**: %.0f/100\n\n", file.Score)
		fmt.Fprintf(writer, "**Summary**: %s\n\n", file.Summary)
		if file.AdvisoryDegraded {
			fmt.Fprintf(writer, "> Advisory analysis was unavailable for this file; results are rule-based only.\n\n")
		}

		if len(file.Issues) > 0 {
			fmt.Fprintf(writer, "#### Issues\n\n")
			for _, issue := range file.Issues {
				location := fmt.Sprintf("Line %d", issue.LineNumber)
				if issue.LineNumber == 0 {
					location = "File"
				}
				fmt.Fprintf(writer, "- **%s** **%s** (%s)\n", location, issue.Severity, issue.Category)
				fmt.Fprintf(writer, "  - **Problem**: %s\n", issue.Message)
				if issue.Suggestion != "" {
					fmt.Fprintf(writer, "  - **Suggestion**: %s\n", issue.Suggestion)
				}
				fmt.Fprintln(writer)
			}
		} else {
			fmt.Fprintf(writer, "No issues found.\n\n")
		}

		if len(file.Improvements) > 0 {
			fmt.Fprintf(writer, "#### Improvement Suggestions\n\n")
			for _, suggestion := range file.Improvements {
				fmt.Fprintf(writer, "```\n%s\n```\n\n", suggestion)
			}
		}

		if file.GeneratedTests != "" {
			fmt.Fprintf(writer, "#### Suggested Unit Tests\n\n")
			fmt.Fprintf(writer, "```java\n%s\n```\n\n", file.GeneratedTests)
		}

		fmt.Fprintf(writer, "---\n\n")
	}

	writeConclusion(agg.AverageScore, writer)
	return nil
}

// writeCategoryBreakdown writes per-category severity counts
func writeCategoryBreakdown(agg *domain.AggregateReport, writer io.Writer) {
	type counts struct{ errors, warnings, infos int }
	byCategory := make(map[domain.Category]*counts)
	var order []domain.Category

	for _, file := range agg.Files {
		for _, issue := range file.Issues {
			c, ok := byCategory[issue.Category]
			if !ok {
				c = &counts{}
				byCategory[issue.Category] = c
				order = append(order, issue.Category)
			}
			switch issue.Severity {
			case domain.SeverityError:
				c.errors++
			case domain.SeverityWarning:
				c.warnings++
			case domain.SeverityInfo:
				c.infos++
			}
		}
	}

	if len(order) == 0 {
		return
	}

	fmt.Fprintf(writer, "## Issues by Category\n\n")
	for _, category := range order {
		c := byCategory[category]
		fmt.Fprintf(writer, "### %s\n", category)
		fmt.Fprintf(writer, "- Errors: %d\n", c.errors)
		fmt.Fprintf(writer, "- Warnings: %d\n", c.warnings)
		fmt.Fprintf(writer, "- Suggestions: %d\n\n", c.infos)
	}
}

// writeConclusion writes the closing assessment and priority list
func writeConclusion(avgScore float64, writer io.Writer) {
	fmt.Fprintf(writer, "## Conclusion\n\n")
	switch {
	case avgScore >= 80:
		fmt.Fprintf(writer, "Overall code quality is good.\n\n")
	case avgScore >= 60:
		fmt.Fprintf(writer, "Code quality is average; review the warnings and suggestions.\n\n")
	default:
		fmt.Fprintf(writer, "Code quality needs improvement; address errors and warnings first.\n\n")
	}

	fmt.Fprintf(writer, "### Priorities\n\n")
	fmt.Fprintf(writer, "1. **High**: fix all errors\n")
	fmt.Fprintf(writer, "2. **Medium**: address warnings\n")
	fmt.Fprintf(writer, "3. **Low**: consider suggestions\n")
}
