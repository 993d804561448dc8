package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/jrev/domain"
)

// ReportFormatterImpl implements the domain.ReportWriter interface
type ReportFormatterImpl struct {
	// ShowDetails controls whether text output lists every issue
	ShowDetails bool
}

// NewReportFormatter creates a new report formatter
func NewReportFormatter(showDetails bool) *ReportFormatterImpl {
	return &ReportFormatterImpl{ShowDetails: showDetails}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	defer encoder.Close()
	return encoder.Encode(data)
}

// Write writes the review response in the specified format
func (f *ReportFormatterImpl) Write(response *domain.ReviewResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatText:
		return f.writeText(response, writer)
	case domain.OutputFormatMarkdown:
		return WriteMarkdownReport(response, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// writeText writes a human-readable terminal report
func (f *ReportFormatterImpl) writeText(response *domain.ReviewResponse, writer io.Writer) error {
	agg := response.Aggregate

	fmt.Fprintf(writer, "Java Code Review\n")
	fmt.Fprintf(writer, "================\n\n")
	fmt.Fprintf(writer, "Files reviewed:    %d\n", agg.TotalFiles)
	fmt.Fprintf(writer, "Total issues:      %d\n", agg.TotalIssues)
	fmt.Fprintf(writer, "Average score:     %.1f/100\n", agg.AverageScore)
	fmt.Fprintf(writer, "Files with errors: %d\n\n", agg.FilesWithErrors)

	for _, file := range agg.Files {
		fmt.Fprintf(writer, "%s  score %.0f/100  (%s)\n", file.FilePath, file.Score, file.Summary)
		if file.AdvisoryDegraded {
			fmt.Fprintf(writer, "  advisory analysis unavailable; rule-based results only\n")
		}

		if f.ShowDetails {
			for _, issue := range file.Issues {
				location := fmt.Sprintf("line %d", issue.LineNumber)
				if issue.LineNumber == 0 {
					location = "file"
				}
				fmt.Fprintf(writer, "  [%s] %s (%s): %s\n",
					strings.ToUpper(string(issue.Severity)), location, issue.Category, issue.Message)
				if issue.Suggestion != "" {
					fmt.Fprintf(writer, "      suggestion: %s\n", issue.Suggestion)
				}
			}
		}
		fmt.Fprintln(writer)
	}

	for _, warning := range response.Warnings {
		fmt.Fprintf(writer, "warning: %s\n", warning)
	}
	return nil
}

// WriteGateDecision writes a gate decision as text
func WriteGateDecision(decision domain.GateDecision, writer io.Writer) {
	fmt.Fprintf(writer, "Quality Gate\n")
	fmt.Fprintf(writer, "============\n\n")
	fmt.Fprintf(writer, "Files checked:  %d\n", decision.FilesChecked)
	fmt.Fprintf(writer, "Average score:  %.1f/100\n", decision.AverageScore)
	fmt.Fprintf(writer, "Errors:         %d\n", decision.TotalErrors)
	fmt.Fprintf(writer, "Warnings:       %d\n\n", decision.TotalWarnings)

	if decision.Passed {
		fmt.Fprintln(writer, "PASSED")
		return
	}

	fmt.Fprintln(writer, "FAILED")
	for _, v := range decision.Violations {
		fmt.Fprintf(writer, "  %s: %s (actual %s, threshold %s)\n", v.Rule, v.Message, v.Actual, v.Threshold)
	}
}
