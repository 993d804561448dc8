package domain

import "context"

// AdvisoryClient is the external generative-text collaborator consulted
// for supplementary analysis. Implementations are transport-specific;
// callers bound the call with the context deadline.
type AdvisoryClient interface {
	// Invoke sends a prompt and returns the raw text response
	Invoke(ctx context.Context, prompt string) (string, error)
}

// AdvisoryAnalysis is the tagged result of parsing an advisory response.
// Parsed=false means extraction failed; Raw keeps the original text so the
// caller can degrade gracefully instead of treating it as an error.
type AdvisoryAnalysis struct {
	Parsed bool

	// Populated when Parsed is true
	Issues  []Issue
	Overall string

	// The unmodified response text
	Raw string
}

// UnparsedAdvisoryMessage is the message of the single info issue recorded
// when an advisory response cannot be parsed.
const UnparsedAdvisoryMessage = "advisory analysis completed but result parsing failed"

// UnparsedIssue returns the file-level issue recorded for an advisory
// response that could not be parsed.
func UnparsedIssue() Issue {
	return Issue{
		LineNumber: 0,
		Severity:   SeverityInfo,
		Category:   CategoryAIAnalysis,
		Message:    UnparsedAdvisoryMessage,
		Suggestion: "check that the advisory model returns the documented JSON format",
	}
}
