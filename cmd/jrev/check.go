package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/jrev/app"
	"github.com/ludo-technologies/jrev/domain"
	"github.com/ludo-technologies/jrev/internal/config"
	"github.com/ludo-technologies/jrev/service"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkMinScore    float64
	checkMaxErrors   int
	checkMaxWarnings int
	checkAI          bool
	checkVerbose     bool
	checkJSON        bool
	checkConfigPath  string
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Quality gate check for CI/CD pipelines",
		Long: `Review Java files and evaluate the result against quality thresholds.

Exit codes:
  0 - Quality gate passed
  1 - One or more thresholds violated
  2 - Review error (file not found, bad configuration, etc.)

Examples:
  # Basic check with defaults
  jrev check src/

  # Stricter gate
  jrev check --min-score 85 --max-warnings 3 src/

  # JSON output for machine parsing
  jrev check --json src/`,
		RunE:          runCheck,
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	cmd.Flags().Float64Var(&checkMinScore, "min-score", config.DefaultMinScore,
		"Minimum acceptable average score (0-100)")
	cmd.Flags().IntVar(&checkMaxErrors, "max-errors", config.DefaultMaxErrors,
		"Maximum number of error findings allowed")
	cmd.Flags().IntVar(&checkMaxWarnings, "max-warnings", config.DefaultMaxWarnings,
		"Maximum number of warning findings allowed")
	cmd.Flags().BoolVar(&checkAI, "ai", false,
		"Include advisory findings in the gated review")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Show detailed output")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &CheckExitError{Code: 2, Message: "no paths specified"}
	}

	cfg, err := config.LoadConfigWithTarget(checkConfigPath, args[0])
	if err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	// Apply config values for flags not explicitly set on CLI
	if cmd.Flags().Changed("min-score") {
		cfg.Gate.MinScore = checkMinScore
	}
	if cmd.Flags().Changed("max-errors") {
		cfg.Gate.MaxErrors = checkMaxErrors
	}
	if cmd.Flags().Changed("max-warnings") {
		cfg.Gate.MaxWarnings = checkMaxWarnings
	}
	if checkAI {
		cfg.Advisory.Enabled = true
	}

	// Progress bars would interleave with machine-readable output
	pm := service.NewProgressManager(!checkJSON)
	defer pm.Close()

	uc, err := app.NewReviewUseCaseBuilder().
		WithReviewService(buildReviewService(cfg, pm)).
		WithGateService(service.NewGateService()).
		WithReportWriter(service.NewReportFormatter(false)).
		WithFileHelper(app.NewFileHelperWithOptions(cfg.Analysis.RespectGitignore)).
		Build()
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Performance.TimeoutSeconds)*time.Second)
	defer cancel()

	result, err := uc.ExecuteGate(ctx, domain.ReviewRequest{
		Paths:           args,
		Recursive:       cfg.Analysis.Recursive,
		IncludePatterns: cfg.Analysis.IncludePatterns,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
	}, cfg.GateSettings())
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	return outputCheckResult(result, os.Stdout)
}

func outputCheckResult(result *app.ReviewResult, w io.Writer) error {
	decision := result.Decision

	if checkJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(decision); err != nil {
			return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to encode JSON: %v", err)}
		}
	} else {
		service.WriteGateDecision(*decision, w)
		if checkVerbose {
			fmt.Fprintf(w, "  Duration: %dms\n", result.Duration.Milliseconds())
			for _, warning := range result.Response.Warnings {
				fmt.Fprintf(w, "  Warning: %s\n", warning)
			}
		}
	}

	if !decision.Passed {
		return &CheckExitError{Code: 1, Message: ""}
	}
	return nil
}
