package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "jrev"

	// ConfigFileName is the default config file name
	ConfigFileName = "jrev.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "JREV"
)

// Rule family identifiers, used in config rule toggles
const (
	RuleIndentation  = "indentation"
	RuleLineLength   = "line-length"
	RuleBlankLines   = "blank-lines"
	RuleThreadSafety = "thread-safety"
	RuleLogging      = "logging"
	RuleException    = "exception"
	RulePerformance  = "performance"
	RuleBestPractice = "best-practice"
)

// Output format constants
const (
	OutputFormatText     = "text"
	OutputFormatJSON     = "json"
	OutputFormatYAML     = "yaml"
	OutputFormatMarkdown = "markdown"
)

// MaxLineLength is the line length limit enforced by the style rules
const MaxLineLength = 120
