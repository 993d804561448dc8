package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/jrev/internal/config"
)

// hookMarker identifies hooks written by jrev so uninstall never
// removes a hand-written hook
const hookMarker = "# Installed by jrev"

var (
	hooksForce       bool
	hooksMinScore    float64
	hooksMaxErrors   int
	hooksMaxWarnings int
)

func hooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage git hooks that run the quality gate",
		Long: `Install or remove a git pre-commit hook that runs 'jrev check'
before every commit and blocks the commit when the gate fails.

Examples:
  # Install the pre-commit hook in the current repository
  jrev hooks install

  # Install with a stricter gate
  jrev hooks install --min-score 85 --max-warnings 3

  # Remove the hook again
  jrev hooks uninstall`,
	}

	install := &cobra.Command{
		Use:   "install [path]",
		Short: "Install the pre-commit hook",
		RunE:  runHooksInstall,
	}
	install.Flags().BoolVarP(&hooksForce, "force", "f", false,
		"Overwrite an existing pre-commit hook")
	install.Flags().Float64Var(&hooksMinScore, "min-score", config.DefaultMinScore,
		"Minimum acceptable average score enforced by the hook")
	install.Flags().IntVar(&hooksMaxErrors, "max-errors", config.DefaultMaxErrors,
		"Maximum number of error findings allowed by the hook")
	install.Flags().IntVar(&hooksMaxWarnings, "max-warnings", config.DefaultMaxWarnings,
		"Maximum number of warning findings allowed by the hook")

	uninstall := &cobra.Command{
		Use:   "uninstall [path]",
		Short: "Remove the pre-commit hook",
		RunE:  runHooksUninstall,
	}

	cmd.AddCommand(install)
	cmd.AddCommand(uninstall)
	return cmd
}

func runHooksInstall(cmd *cobra.Command, args []string) error {
	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}

	hooksDir, err := resolveHooksDir(repoPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return fmt.Errorf("failed to create hooks directory: %w", err)
	}

	hookPath := filepath.Join(hooksDir, "pre-commit")
	if !hooksForce {
		if existing, err := os.ReadFile(hookPath); err == nil {
			if !strings.Contains(string(existing), hookMarker) {
				return fmt.Errorf("%s already exists. Use --force to overwrite", hookPath)
			}
		}
	}

	if err := os.WriteFile(hookPath, []byte(preCommitHook()), 0755); err != nil {
		return fmt.Errorf("failed to write hook: %w", err)
	}

	fmt.Printf("Installed pre-commit hook: %s\n", hookPath)
	return nil
}

func runHooksUninstall(cmd *cobra.Command, args []string) error {
	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}

	hooksDir, err := resolveHooksDir(repoPath)
	if err != nil {
		return err
	}

	hookPath := filepath.Join(hooksDir, "pre-commit")
	content, err := os.ReadFile(hookPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No pre-commit hook installed.")
			return nil
		}
		return err
	}
	if !strings.Contains(string(content), hookMarker) {
		return fmt.Errorf("%s was not installed by jrev, refusing to remove it", hookPath)
	}

	if err := os.Remove(hookPath); err != nil {
		return fmt.Errorf("failed to remove hook: %w", err)
	}
	fmt.Printf("Removed pre-commit hook: %s\n", hookPath)
	return nil
}

// resolveHooksDir locates the .git/hooks directory for the repository
func resolveHooksDir(repoPath string) (string, error) {
	gitDir := filepath.Join(repoPath, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("no git repository found at %s", repoPath)
	}
	return filepath.Join(gitDir, "hooks"), nil
}

// preCommitHook renders the pre-commit script with the configured gate
func preCommitHook() string {
	return `#!/bin/sh
` + hookMarker + ` - runs the quality gate before every commit

echo "Running jrev quality gate..."
jrev check --min-score ` + strconv.FormatFloat(hooksMinScore, 'f', -1, 64) +
		` --max-errors ` + strconv.Itoa(hooksMaxErrors) +
		` --max-warnings ` + strconv.Itoa(hooksMaxWarnings) + ` .
status=$?

if [ $status -ne 0 ]; then
    echo "Quality gate failed, commit blocked."
    exit $status
fi

echo "Quality gate passed."
`
}
