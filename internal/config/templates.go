package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ProjectType represents the build layout of a Java project
type ProjectType string

const (
	ProjectTypeGeneric ProjectType = "generic"
	ProjectTypeMaven   ProjectType = "maven"
	ProjectTypeGradle  ProjectType = "gradle"
)

// Strictness represents the gate strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ProjectPreset holds file collection presets for different project layouts
type ProjectPreset struct {
	IncludePatterns []string
	ExcludePatterns []string
}

// StrictnessPreset holds gate thresholds for different strictness levels
type StrictnessPreset struct {
	MinScore    float64
	MaxErrors   int
	MaxWarnings int
}

// GetProjectPresets returns presets for different project layouts
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			IncludePatterns: []string{"**/*.java"},
			ExcludePatterns: []string{
				"**/target/**",
				"**/build/**",
				"**/out/**",
				"**/generated/**",
			},
		},
		ProjectTypeMaven: {
			IncludePatterns: []string{"src/main/java/**/*.java", "src/test/java/**/*.java"},
			ExcludePatterns: []string{
				"**/target/**",
				"**/generated-sources/**",
			},
		},
		ProjectTypeGradle: {
			IncludePatterns: []string{"src/main/java/**/*.java", "src/test/java/**/*.java"},
			ExcludePatterns: []string{
				"**/build/**",
				"**/.gradle/**",
				"**/generated/**",
			},
		},
	}
}

// GetStrictnessPresets returns gate presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			MinScore:    50,
			MaxErrors:   5,
			MaxWarnings: 30,
		},
		StrictnessStandard: {
			MinScore:    DefaultMinScore,
			MaxErrors:   DefaultMaxErrors,
			MaxWarnings: DefaultMaxWarnings,
		},
		StrictnessStrict: {
			MinScore:    85,
			MaxErrors:   0,
			MaxWarnings: 3,
		},
	}
}

// GetFullConfigTemplate returns the documented config template as YAML
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) string {
	preset := GetProjectPresets()[projectType]
	strict := GetStrictnessPresets()[strictness]

	return `# jrev configuration
# Documentation: https://github.com/ludo-technologies/jrev

# ============================================================================
# RULE CATALOG
# ============================================================================
# Every built-in check runs unless listed here. Available names:
# indentation, line-length, blank-lines, thread-safety, logging,
# exception, performance, best-practice
rules:
  disable: []

# ============================================================================
# QUALITY GATE
# ============================================================================
# Thresholds enforced by "jrev check" for CI/CD pipelines
gate:
  # Minimum acceptable average score (0-100)
  min_score: ` + formatFloat(strict.MinScore) + `

  # Maximum number of error findings allowed
  max_errors: ` + strconv.Itoa(strict.MaxErrors) + `

  # Maximum number of warning findings allowed
  max_warnings: ` + strconv.Itoa(strict.MaxWarnings) + `

# ============================================================================
# ADVISORY ANALYSIS
# ============================================================================
# Optional AI-assisted analysis merged into the rule-based results.
# The review never fails when the advisory service is down.
advisory:
  enabled: false

  # Backend: "ollama" or "openai"
  backend: ollama
  base_url: http://localhost:11434
  model: deepseek-coder:6.7b

  # Per-call timeout in seconds
  timeout_seconds: 30

# ============================================================================
# OUTPUT SETTINGS
# ============================================================================
output:
  # Output format: "text", "json", "yaml", "markdown"
  format: text

  # Show per-issue detail
  show_details: true

  # Directory for report files (empty = stdout only)
  directory: ""

# ============================================================================
# ANALYSIS SCOPE
# ============================================================================
analysis:
  include_patterns:
` + formatYAMLList(preset.IncludePatterns, "    ") + `
  exclude_patterns:
` + formatYAMLList(preset.ExcludePatterns, "    ") + `
  recursive: true
  respect_gitignore: true

# ============================================================================
# PERFORMANCE
# ============================================================================
performance:
  # Concurrent file reviews (0 = auto-detect based on CPU)
  max_goroutines: 0

  # Whole-run timeout in seconds
  timeout_seconds: 300
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# jrev configuration (minimal)
# See full options: https://github.com/ludo-technologies/jrev

gate:
  min_score: 70
  max_errors: 0
  max_warnings: 10

analysis:
  include_patterns:
    - "**/*.java"
  exclude_patterns:
    - "**/target/**"
    - "**/build/**"
`
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatYAMLList formats a string slice as an indented YAML sequence
func formatYAMLList(items []string, indent string) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s- %q\n", indent, item)
	}
	return strings.TrimRight(b.String(), "\n")
}
