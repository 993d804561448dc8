package domain

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText     OutputFormat = "text"
	OutputFormatJSON     OutputFormat = "json"
	OutputFormatYAML     OutputFormat = "yaml"
	OutputFormatMarkdown OutputFormat = "markdown"
)

// Severity represents the importance of an issue
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank returns a numeric rank for ordering; higher is more severe
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Category classifies what aspect of the code an issue concerns
type Category string

const (
	CategoryStyle        Category = "style"
	CategoryThreadSafety Category = "thread_safety"
	CategoryLogging      Category = "logging"
	CategoryException    Category = "exception"
	CategoryPerformance  Category = "performance"
	CategoryBestPractice Category = "best_practice"
	CategoryAIAnalysis   Category = "ai_analysis"
)

// categoryOrder fixes a deterministic presentation order for categories
var categoryOrder = map[Category]int{
	CategoryStyle:        0,
	CategoryThreadSafety: 1,
	CategoryLogging:      2,
	CategoryException:    3,
	CategoryPerformance:  4,
	CategoryBestPractice: 5,
	CategoryAIAnalysis:   6,
}

// Rank returns the presentation rank of the category
func (c Category) Rank() int {
	if r, ok := categoryOrder[c]; ok {
		return r
	}
	return len(categoryOrder)
}

// SourceUnit is one file's content as an ordered, 1-indexed line sequence.
// It is immutable once created.
type SourceUnit struct {
	Path  string   `json:"path"`
	Lines []string `json:"-"`
}

// NewSourceUnit creates a SourceUnit by splitting content into lines
func NewSourceUnit(path string, content []byte) *SourceUnit {
	return &SourceUnit{
		Path:  path,
		Lines: strings.Split(string(content), "\n"),
	}
}

// LineCount returns the number of lines in the unit
func (u *SourceUnit) LineCount() int {
	if u == nil {
		return 0
	}
	return len(u.Lines)
}

// Line returns the 1-indexed line, or the empty string when out of range
func (u *SourceUnit) Line(n int) string {
	if u == nil || n < 1 || n > len(u.Lines) {
		return ""
	}
	return u.Lines[n-1]
}

// Content re-joins the unit's lines into the original file content
func (u *SourceUnit) Content() string {
	if u == nil {
		return ""
	}
	return strings.Join(u.Lines, "\n")
}

// Issue is a single categorized finding at a specific line.
// Line 0 is reserved for file-level findings. Issues are value objects;
// two issues with the same (line, category, message) are duplicates.
type Issue struct {
	LineNumber int      `json:"line_number"`
	Severity   Severity `json:"severity"`
	Category   Category `json:"category"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion"`
}

// Key returns the deduplication key for the issue
func (i Issue) Key() string {
	return fmt.Sprintf("%d\x00%s\x00%s", i.LineNumber, i.Category, i.Message)
}

// FileReport is the finished review result for one source unit.
// It is never mutated after creation.
type FileReport struct {
	FilePath   string  `json:"file_path"`
	FileName   string  `json:"file_name"`
	TotalLines int     `json:"total_lines"`
	Issues     []Issue `json:"issues"`
	Score      float64 `json:"score"`
	Summary    string  `json:"summary"`

	// AdvisoryDegraded is true when the advisory collaborator was enabled
	// but unreachable or timed out; rule-based issues are still complete.
	AdvisoryDegraded bool `json:"advisory_degraded,omitempty"`

	// Optional advisory extras, present only in comprehensive reports
	Improvements   []string `json:"improvements,omitempty"`
	GeneratedTests string   `json:"generated_tests,omitempty"`
}

// CountBySeverity returns the number of issues with the given severity
func (r *FileReport) CountBySeverity(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// ErrorCount returns the number of error-severity issues
func (r *FileReport) ErrorCount() int { return r.CountBySeverity(SeverityError) }

// WarningCount returns the number of warning-severity issues
func (r *FileReport) WarningCount() int { return r.CountBySeverity(SeverityWarning) }

// InfoCount returns the number of info-severity issues
func (r *FileReport) InfoCount() int { return r.CountBySeverity(SeverityInfo) }

// Summarize derives a human-readable summary from issue counts
func Summarize(issues []Issue) string {
	if len(issues) == 0 {
		return "no issues found"
	}

	var errors, warnings, infos int
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			infos++
		}
	}

	var parts []string
	if errors > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", errors))
	}
	if warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", warnings))
	}
	if infos > 0 {
		parts = append(parts, fmt.Sprintf("%d suggestion(s)", infos))
	}
	return strings.Join(parts, ", ")
}

// AggregateReport folds a set of file reports into run-level totals.
// It is a pure fold and safe to recompute idempotently.
type AggregateReport struct {
	Files           []FileReport `json:"files"`
	TotalFiles      int          `json:"total_files"`
	TotalIssues     int          `json:"total_issues"`
	AverageScore    float64      `json:"average_score"`
	FilesWithErrors int          `json:"files_with_errors"`
}

// NewAggregateReport computes the aggregate totals for the given reports
func NewAggregateReport(files []FileReport) *AggregateReport {
	agg := &AggregateReport{
		Files:      files,
		TotalFiles: len(files),
	}

	var scoreSum float64
	for _, f := range files {
		agg.TotalIssues += len(f.Issues)
		scoreSum += f.Score
		if f.ErrorCount() > 0 {
			agg.FilesWithErrors++
		}
	}
	if len(files) > 0 {
		agg.AverageScore = scoreSum / float64(len(files))
	}
	return agg
}

// ReviewRequest represents a request for a review run
type ReviewRequest struct {
	// Input files or directories to review
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer

	// Analysis options
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
}

// ReviewResponse represents the complete result of a review run
type ReviewResponse struct {
	Aggregate *AggregateReport `json:"aggregate"`

	// Non-fatal problems collected during the run (skipped files etc.)
	Warnings []string `json:"warnings,omitempty"`

	// Metadata
	GeneratedAt string `json:"generated_at"`
	Version     string `json:"version"`
}

// ReviewService defines the core business logic for code review
type ReviewService interface {
	// Review runs the full review pipeline for the given request
	Review(ctx context.Context, req ReviewRequest) (*ReviewResponse, error)

	// ReviewUnit reviews a single source unit. It fails only when the
	// unit itself is invalid (nil or empty), never for findings.
	ReviewUnit(ctx context.Context, unit *SourceUnit) (*FileReport, error)
}

// FileReader defines the interface for reading and collecting Java files
type FileReader interface {
	// CollectJavaFiles recursively finds all Java files in the given paths
	CollectJavaFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// IsValidJavaFile checks if a file is a Java source file
	IsValidJavaFile(path string) bool

	// FileExists checks if a file exists and returns an error if not
	FileExists(path string) (bool, error)
}

// ReportWriter defines the interface for serializing review results
type ReportWriter interface {
	// Write writes the response in the given format to the writer
	Write(response *ReviewResponse, format OutputFormat, writer io.Writer) error
}
