package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/jrev/domain"
	"github.com/ludo-technologies/jrev/internal/constants"
)

// Default gate thresholds. A review run passes the gate when the average
// score reaches the minimum and the error/warning counts stay inside the
// limits.
const (
	// DefaultMinScore is the minimum acceptable average quality score
	DefaultMinScore = 70.0

	// DefaultMaxErrors is the number of error findings tolerated
	DefaultMaxErrors = 0

	// DefaultMaxWarnings is the number of warning findings tolerated
	DefaultMaxWarnings = 10
)

// Default advisory settings matching a local Ollama install
const (
	DefaultAdvisoryBackend = "ollama"
	DefaultAdvisoryBaseURL = "http://localhost:11434"
	DefaultAdvisoryModel   = "deepseek-coder:6.7b"

	// DefaultAdvisoryTimeoutSeconds bounds one advisory call
	DefaultAdvisoryTimeoutSeconds = 30
)

// Default performance settings
const (
	// DefaultMaxGoroutines caps concurrent file reviews; 0 means NumCPU
	DefaultMaxGoroutines = 0

	// DefaultTimeoutSeconds bounds the whole review run
	DefaultTimeoutSeconds = 300
)

// Config represents the main configuration structure
type Config struct {
	// Rules holds rule catalog configuration
	Rules RulesConfig `json:"rules" mapstructure:"rules" yaml:"rules"`

	// Gate holds quality gate thresholds
	Gate GateConfig `json:"gate" mapstructure:"gate" yaml:"gate"`

	// Advisory holds advisory model configuration
	Advisory AdvisoryConfig `json:"advisory" mapstructure:"advisory" yaml:"advisory"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Analysis holds file collection configuration
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis"`

	// Performance holds concurrency and timeout configuration
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance"`
}

// RulesConfig holds configuration for the rule catalog
type RulesConfig struct {
	// Disable lists rule names to skip during review
	Disable []string `json:"disable" mapstructure:"disable" yaml:"disable"`
}

// GateConfig holds the quality gate thresholds
type GateConfig struct {
	// MinScore is the minimum acceptable average score (0-100)
	MinScore float64 `json:"min_score" mapstructure:"min_score" yaml:"min_score"`

	// MaxErrors is the maximum number of error findings allowed
	MaxErrors int `json:"max_errors" mapstructure:"max_errors" yaml:"max_errors"`

	// MaxWarnings is the maximum number of warning findings allowed
	MaxWarnings int `json:"max_warnings" mapstructure:"max_warnings" yaml:"max_warnings"`
}

// AdvisoryConfig holds configuration for the advisory model
type AdvisoryConfig struct {
	// Enabled controls whether advisory analysis runs at all
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// Backend selects the advisory transport: ollama or openai
	Backend string `json:"backend" mapstructure:"backend" yaml:"backend"`

	// BaseURL is the advisory service endpoint
	BaseURL string `json:"base_url" mapstructure:"base_url" yaml:"base_url"`

	// Model names the model consulted for analysis
	Model string `json:"model" mapstructure:"model" yaml:"model"`

	// TimeoutSeconds bounds one advisory call
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, markdown
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowDetails controls whether to print per-issue detail
	ShowDetails bool `json:"show_details" mapstructure:"show_details" yaml:"show_details"`

	// Directory specifies the output directory for report files
	Directory string `json:"directory" mapstructure:"directory" yaml:"directory"`
}

// AnalysisConfig holds configuration for file collection
type AnalysisConfig struct {
	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies file patterns to exclude
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls whether directories are walked recursively
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`

	// RespectGitignore skips files matched by .gitignore
	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`
}

// PerformanceConfig holds concurrency and timeout configuration
type PerformanceConfig struct {
	// MaxGoroutines caps concurrent file reviews; 0 means NumCPU
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// TimeoutSeconds bounds the whole review run
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Rules: RulesConfig{
			Disable: []string{},
		},
		Gate: GateConfig{
			MinScore:    DefaultMinScore,
			MaxErrors:   DefaultMaxErrors,
			MaxWarnings: DefaultMaxWarnings,
		},
		Advisory: AdvisoryConfig{
			Enabled:        false,
			Backend:        DefaultAdvisoryBackend,
			BaseURL:        DefaultAdvisoryBaseURL,
			Model:          DefaultAdvisoryModel,
			TimeoutSeconds: DefaultAdvisoryTimeoutSeconds,
		},
		Output: OutputConfig{
			Format:      "text",
			ShowDetails: false,
			Directory:   "",
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{"**/*.java"},
			ExcludePatterns: []string{
				// Build outputs
				"target",
				"build",
				"out",
				// Dependency caches
				".gradle",
				".m2",
				// Version control
				".git",
				// Generated sources
				"generated",
			},
			Recursive:        true,
			RespectGitignore: true,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  DefaultMaxGoroutines,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// GateSettings converts the configured thresholds into the domain type
func (c *Config) GateSettings() domain.GateConfig {
	return domain.GateConfig{
		MinScore:    c.Gate.MinScore,
		MaxErrors:   c.Gate.MaxErrors,
		MaxWarnings: c.Gate.MaxWarnings,
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// When no explicit path is given, the config file is discovered by walking
// upward from the target path.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file %s", configPath), err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, domain.NewConfigError("failed to unmarshal config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}

	return config, nil
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations.
// targetPath is the path being reviewed (a Java file or directory).
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		constants.ConfigFileName,
		"jrev.yml",
		".jrev.yml",
		"jrev.json",
		".jrev.json",
	}

	// Search from the target directory upward
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	// Check XDG config directory
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "jrev"), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", "jrev")
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}
		if config := searchConfigInDirectory(home, candidates); config != "" {
			return config
		}
	}

	// Check JREV_CONFIG environment variable as fallback
	if envConfig := os.Getenv("JREV_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Gate.MinScore < 0 || c.Gate.MinScore > 100 {
		return fmt.Errorf("gate.min_score must be between 0 and 100, got %v", c.Gate.MinScore)
	}
	if c.Gate.MaxErrors < 0 {
		return fmt.Errorf("gate.max_errors must be >= 0, got %d", c.Gate.MaxErrors)
	}
	if c.Gate.MaxWarnings < 0 {
		return fmt.Errorf("gate.max_warnings must be >= 0, got %d", c.Gate.MaxWarnings)
	}

	validBackends := map[string]bool{
		"ollama": true,
		"openai": true,
	}
	if !validBackends[c.Advisory.Backend] {
		return fmt.Errorf("invalid advisory.backend '%s', must be one of: ollama, openai", c.Advisory.Backend)
	}
	if c.Advisory.TimeoutSeconds <= 0 {
		return fmt.Errorf("advisory.timeout_seconds must be > 0, got %d", c.Advisory.TimeoutSeconds)
	}

	validFormats := map[string]bool{
		constants.OutputFormatText:     true,
		constants.OutputFormatJSON:     true,
		constants.OutputFormatYAML:     true,
		constants.OutputFormatMarkdown: true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, markdown", c.Output.Format)
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}

	if c.Performance.MaxGoroutines < 0 {
		return fmt.Errorf("performance.max_goroutines must be >= 0, got %d", c.Performance.MaxGoroutines)
	}
	if c.Performance.TimeoutSeconds <= 0 {
		return fmt.Errorf("performance.timeout_seconds must be > 0, got %d", c.Performance.TimeoutSeconds)
	}

	return nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("rules", config.Rules)
	v.Set("gate", config.Gate)
	v.Set("advisory", config.Advisory)
	v.Set("output", config.Output)
	v.Set("analysis", config.Analysis)
	v.Set("performance", config.Performance)

	return v.WriteConfig()
}
