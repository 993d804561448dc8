package analyzer

import (
	"sort"

	"github.com/ludo-technologies/jrev/domain"
)

// Aggregate merges issue slices from independent checks into one
// deterministic list. Exact duplicates on (line, category, message) are
// collapsed keeping the first occurrence, then the result is ordered by
// line ascending, severity descending, category rank, and finally message.
// Aggregating an already aggregated list returns it unchanged.
func Aggregate(batches ...[]domain.Issue) []domain.Issue {
	merged := make([]domain.Issue, 0)
	seen := make(map[string]bool)

	for _, batch := range batches {
		for _, issue := range batch {
			key := issue.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, issue)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.LineNumber != b.LineNumber {
			return a.LineNumber < b.LineNumber
		}
		if a.Severity != b.Severity {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.Category != b.Category {
			return a.Category.Rank() < b.Category.Rank()
		}
		return a.Message < b.Message
	})
	return merged
}
