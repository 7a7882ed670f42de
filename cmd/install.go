package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const preCommitHookScript = `#!/bin/sh
modbound check
`

var installCmd = &cobra.Command{
	Use:   "install [pre-commit]",
	Short: "Install a git pre-commit hook that runs modbound check",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	target := "pre-commit"
	if len(args) == 1 {
		target = args[0]
	}
	if target != "pre-commit" {
		return fmt.Errorf("unsupported install target %q", target)
	}

	hookPath := filepath.Join(".git", "hooks", "pre-commit")
	if _, err := os.Stat(filepath.Dir(hookPath)); err != nil {
		return fmt.Errorf("not a git repository (missing %s): %w", filepath.Dir(hookPath), err)
	}
	if err := os.WriteFile(hookPath, []byte(preCommitHookScript), 0o755); err != nil {
		return fmt.Errorf("writing %s: %w", hookPath, err)
	}

	cmd.Println("installed", hookPath)
	return nil
}
