package advisory

import (
	"fmt"

	"github.com/ludo-technologies/jrev/domain"
)

// Prompt templates sent to the advisory model. The review prompt pins the
// expected JSON envelope so the response stays machine-parseable; the
// improvement and test prompts ask for free-form text.

const reviewPromptTemplate = `You are a senior Java architect reviewing production code. Focus on:

1. Logging
   - SLF4J usage (LoggerFactory.getLogger) instead of console printing
   - exceptions logged with context and stack trace
   - appropriate log levels (error/warn/info/debug)
2. Exception handling
   - specific exception types (ParseException rather than Exception)
   - no empty catch blocks
   - propagate rather than wrap in RuntimeException
3. Null checks
   - validate parameters at method entry
   - throw IllegalArgumentException for invalid arguments
4. Readability
   - clear naming, necessary comments, method length
5. Thread safety
   - ThreadLocal<SimpleDateFormat> is the correct pattern; rate it positively
   - never suggest replacing ThreadLocal with new SimpleDateFormat()

Respond with JSON only, no explanation, in exactly this shape:

{
    "issues": [
        {
            "line_number": 12,
            "severity": "warning",
            "category": "exception",
            "message": "throws the generic Exception type",
            "suggestion": "declare throws ParseException"
        }
    ],
    "summary": {
        "total_issues": 3,
        "quality_score": 75,
        "overall": "solid structure; improve exception handling and logging"
    }
}

Java code:
` + "```java\n%s\n```\n" + `
Return only the JSON result, nothing else.
`

const improvementPromptTemplate = `Provide concrete improvement suggestions for the following Java code, focusing on:

1. Logging: replace System.out.println with SLF4J + Logback
2. Exception handling: complete the handling logic and log the exceptions
3. Null checks: guard against null pointer exceptions
4. Readability: naming, comments, structure
5. Best practices: follow Java coding conventions

If the code uses ThreadLocal<SimpleDateFormat>, that is correct; do not
suggest removing it or replacing it with new SimpleDateFormat().

Provide concrete code examples with each suggestion.

Java code:
` + "```java\n%s\n```\n"

const testPromptTemplate = `Generate JUnit unit tests for the following Java code, covering:

1. Normal cases
2. Boundary conditions
3. Exception cases
4. Parameter validation
5. Performance testing suggestions

Provide complete test code.

Java code:
` + "```java\n%s\n```\n"

// BuildReviewPrompt builds the structured analysis prompt for a unit
func BuildReviewPrompt(unit *domain.SourceUnit) string {
	return fmt.Sprintf(reviewPromptTemplate, unit.Content())
}

// BuildImprovementPrompt builds the free-form improvement prompt for a unit
func BuildImprovementPrompt(unit *domain.SourceUnit) string {
	return fmt.Sprintf(improvementPromptTemplate, unit.Content())
}

// BuildTestPrompt builds the unit test generation prompt for a unit
func BuildTestPrompt(unit *domain.SourceUnit) string {
	return fmt.Sprintf(testPromptTemplate, unit.Content())
}
