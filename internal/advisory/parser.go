package advisory

import (
	"encoding/json"
	"strings"

	"github.com/ludo-technologies/jrev/domain"
)

// envelope is the JSON shape the review prompt asks the model for
type envelope struct {
	Issues []struct {
		LineNumber int    `json:"line_number"`
		Severity   string `json:"severity"`
		Category   string `json:"category"`
		Message    string `json:"message"`
		Suggestion string `json:"suggestion"`
	} `json:"issues"`
	Summary struct {
		TotalIssues  int    `json:"total_issues"`
		QualityScore int    `json:"quality_score"`
		Overall      string `json:"overall"`
	} `json:"summary"`
}

// ParseReviewResponse extracts the issue envelope from a raw advisory
// response. The payload may sit inside a fenced code block or be the bare
// response body. A response that cannot be decoded yields Parsed=false with
// the raw text preserved; it is never an error.
func ParseReviewResponse(raw string) domain.AdvisoryAnalysis {
	payload := extractPayload(raw)

	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return domain.AdvisoryAnalysis{Parsed: false, Raw: raw}
	}

	analysis := domain.AdvisoryAnalysis{
		Parsed:  true,
		Overall: env.Summary.Overall,
		Raw:     raw,
	}
	for _, it := range env.Issues {
		analysis.Issues = append(analysis.Issues, domain.Issue{
			LineNumber: it.LineNumber,
			Severity:   normalizeSeverity(it.Severity),
			Category:   normalizeCategory(it.Category),
			Message:    it.Message,
			Suggestion: it.Suggestion,
		})
	}
	return analysis
}

// extractPayload returns the text inside the first fenced block, preferring
// a json-tagged fence, or the whole trimmed response when no fence exists.
func extractPayload(raw string) string {
	if idx := strings.Index(raw, "```json"); idx >= 0 {
		rest := raw[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(raw, "```"); idx >= 0 {
		rest := raw[idx+len("```"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(raw)
}

func normalizeSeverity(s string) domain.Severity {
	switch domain.Severity(strings.ToLower(strings.TrimSpace(s))) {
	case domain.SeverityError:
		return domain.SeverityError
	case domain.SeverityWarning:
		return domain.SeverityWarning
	default:
		return domain.SeverityInfo
	}
}

func normalizeCategory(c string) domain.Category {
	switch domain.Category(strings.ToLower(strings.TrimSpace(c))) {
	case domain.CategoryStyle,
		domain.CategoryThreadSafety,
		domain.CategoryLogging,
		domain.CategoryException,
		domain.CategoryPerformance,
		domain.CategoryBestPractice:
		return domain.Category(strings.ToLower(strings.TrimSpace(c)))
	default:
		return domain.CategoryAIAnalysis
	}
}
