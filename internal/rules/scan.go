package rules

import "strings"

// isBlank reports whether the line contains only whitespace
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// isComment reports whether the trimmed line is a comment line
func isComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "*") ||
		strings.HasPrefix(trimmed, "/*")
}

// isIndented reports whether the raw line starts with whitespace
func isIndented(raw string) bool {
	return strings.HasPrefix(raw, " ") || strings.HasPrefix(raw, "\t")
}

// braceDelta counts opening minus closing braces on the line. Braces inside
// string literals are counted too; the rules here are heuristics over lines,
// not a parser.
func braceDelta(line string) int {
	return strings.Count(line, "{") - strings.Count(line, "}")
}

// hasAnyPrefix reports whether the string starts with any of the prefixes
func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// containsAny reports whether the string contains any of the substrings
func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// catchBody collects the trimmed lines inside the catch block whose header
// sits at index catchIdx, by balancing braces from the header onward.
func catchBody(lines []string, catchIdx int) []string {
	var body []string
	depth := 0
	inBlock := false

	for j := catchIdx; j < len(lines); j++ {
		current := strings.TrimSpace(lines[j])

		// Ignore the closing brace of the preceding block on a
		// "} catch (...) {" header.
		if j == catchIdx {
			if k := strings.Index(current, "catch"); k > 0 {
				current = current[k:]
			}
		}

		if strings.Contains(current, "{") {
			depth += strings.Count(current, "{")
			inBlock = true
		}
		if strings.Contains(current, "}") {
			depth -= strings.Count(current, "}")
		}

		if inBlock && depth > 0 && j > catchIdx {
			body = append(body, current)
		}
		if inBlock && depth <= 0 && j > catchIdx {
			break
		}
	}
	return body
}

// isEmptyCatchBody reports whether the catch body holds no statements,
// only blanks and comments.
func isEmptyCatchBody(body []string) bool {
	for _, line := range body {
		if line == "" || isComment(line) {
			continue
		}
		return false
	}
	return true
}
