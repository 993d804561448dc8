package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/jrev/app"
	"github.com/ludo-technologies/jrev/domain"
	"github.com/ludo-technologies/jrev/internal/config"
	"github.com/ludo-technologies/jrev/internal/rules"
	"github.com/ludo-technologies/jrev/service"
)

var (
	reviewFormat        string
	reviewJSON          bool
	reviewOutputDir     string
	reviewDetails       bool
	reviewDisable       []string
	reviewAI            bool
	reviewNoAI          bool
	reviewComprehensive bool
	reviewRecursive     bool
	reviewConfigPath    string
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review [path...]",
		Short: "Review Java source files",
		Long: `Review Java source files with the built-in rule catalog.

Examples:
  jrev review src/
  jrev review --details src/
  jrev review --format markdown --output reports/ src/
  jrev review --ai --comprehensive src/
  jrev review --disable line-length,blank-lines Main.java`,
		RunE: runReview,
	}

	cmd.Flags().StringVarP(&reviewFormat, "format", "f", "text",
		"Output format: text, json, yaml, markdown")
	cmd.Flags().BoolVar(&reviewJSON, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().StringVarP(&reviewOutputDir, "output", "o", "",
		"Directory to write a timestamped report file into")
	cmd.Flags().BoolVar(&reviewDetails, "details", false,
		"Show per-issue detail in text output")
	cmd.Flags().StringSliceVar(&reviewDisable, "disable", nil,
		"Rule names to skip (comma-separated)")
	cmd.Flags().BoolVar(&reviewAI, "ai", false,
		"Enable AI-assisted advisory analysis")
	cmd.Flags().BoolVar(&reviewNoAI, "no-ai", false,
		"Disable advisory analysis even when the config enables it")
	cmd.Flags().BoolVar(&reviewComprehensive, "comprehensive", false,
		"Also collect improvement and test suggestions (implies --ai)")
	cmd.Flags().BoolVar(&reviewRecursive, "recursive", true,
		"Walk directories recursively")
	cmd.Flags().StringVarP(&reviewConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runReview(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	cfg, err := config.LoadConfigWithTarget(reviewConfigPath, args[0])
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyReviewFlags(cmd, cfg)

	format, err := parseOutputFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	pm := service.NewProgressManager(format == domain.OutputFormatText)
	defer pm.Close()

	uc, err := app.NewReviewUseCaseBuilder().
		WithReviewService(buildReviewService(cfg, pm)).
		WithReportWriter(service.NewReportFormatter(cfg.Output.ShowDetails)).
		WithFileHelper(app.NewFileHelperWithOptions(cfg.Analysis.RespectGitignore)).
		WithOutputDirectory(cfg.Output.Directory).
		Build()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Performance.TimeoutSeconds)*time.Second)
	defer cancel()

	result, err := uc.Execute(ctx, domain.ReviewRequest{
		Paths:           args,
		OutputFormat:    format,
		OutputWriter:    os.Stdout,
		Recursive:       cfg.Analysis.Recursive,
		IncludePatterns: cfg.Analysis.IncludePatterns,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
	})
	if err != nil {
		return err
	}

	if result.ReportPath != "" && format != domain.OutputFormatJSON {
		fmt.Fprintf(os.Stderr, "Report saved to: %s\n", result.ReportPath)
	}
	return nil
}

// applyReviewFlags overlays CLI flags onto the loaded configuration.
// A flag only overrides the config value when it was set explicitly.
func applyReviewFlags(cmd *cobra.Command, cfg *config.Config) {
	if reviewJSON {
		cfg.Output.Format = "json"
	} else if cmd.Flags().Changed("format") {
		cfg.Output.Format = reviewFormat
	}
	if cmd.Flags().Changed("details") {
		cfg.Output.ShowDetails = reviewDetails
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.Directory = reviewOutputDir
	}
	if cmd.Flags().Changed("disable") {
		cfg.Rules.Disable = append(cfg.Rules.Disable, reviewDisable...)
	}
	if cmd.Flags().Changed("recursive") {
		cfg.Analysis.Recursive = reviewRecursive
	}

	if reviewAI || reviewComprehensive {
		cfg.Advisory.Enabled = true
	}
	if reviewNoAI {
		cfg.Advisory.Enabled = false
	}
}

// buildReviewService wires the review service from the configuration
func buildReviewService(cfg *config.Config, pm domain.ProgressManager) domain.ReviewService {
	opts := []service.ReviewServiceOption{
		service.WithProgress(pm),
	}

	if cfg.Advisory.Enabled {
		client, err := service.NewAdvisoryClient(&cfg.Advisory)
		if err != nil {
			// Advisory is best effort; the rule-based review still runs
			fmt.Fprintf(os.Stderr, "Warning: advisory disabled: %v\n", err)
		} else {
			timeout := time.Duration(cfg.Advisory.TimeoutSeconds) * time.Second
			opts = append(opts, service.WithAdvisoryClient(client, timeout))
			if reviewComprehensive {
				opts = append(opts, service.WithComprehensiveAnalysis())
			}
		}
	}

	return service.NewReviewService(
		rules.NewCatalog(cfg.Rules.Disable),
		app.NewFileHelperWithOptions(cfg.Analysis.RespectGitignore),
		&cfg.Performance,
		opts...,
	)
}

// parseOutputFormat validates and converts the configured format
func parseOutputFormat(format string) (domain.OutputFormat, error) {
	switch format {
	case "text":
		return domain.OutputFormatText, nil
	case "json":
		return domain.OutputFormatJSON, nil
	case "yaml":
		return domain.OutputFormatYAML, nil
	case "markdown":
		return domain.OutputFormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
