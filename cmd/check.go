package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modbound/modbound/internal/check"
	"github.com/modbound/modbound/internal/config"
	"github.com/modbound/modbound/internal/diagnostic"
	"github.com/modbound/modbound/internal/syncengine"
	"github.com/modbound/modbound/internal/telemetry"
)

var (
	checkExact      bool
	checkExcludeCSV string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that imports respect the declared module boundaries",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkExact, "exact", false, "also fail on declared-but-unused dependencies")
	checkCmd.Flags().StringVar(&checkExcludeCSV, "exclude", "", "comma-separated extra exclude patterns")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	logger := newLogger()
	telemetry.ReportEvent(telemetry.CheckStarted)

	cfg, projectRoot, err := loadProjectConfig()
	if err != nil {
		telemetry.ReportEvent(telemetry.CheckFailed)
		return err
	}
	if checkExcludeCSV != "" {
		cfg.Exclude = append(cfg.Exclude, strings.Split(checkExcludeCSV, ",")...)
	}

	logger.Progress("checking module boundaries under %s", projectRoot)

	c := check.NewChecker(projectRoot, cfg)
	res, err := c.Run(context.Background())
	if err != nil {
		telemetry.ReportEvent(telemetry.CheckFailed)
		return fmt.Errorf("running checker: %w", err)
	}

	diags := res.Diagnostics
	if checkExact {
		pruned, err := syncengine.Prune(context.Background(), projectRoot, cfg)
		if err == nil {
			for _, extra := range syncengine.CompareDependencies(cfg, pruned) {
				for _, dep := range extra.Extra {
					diags = append(diags, diagnostic.UnusedDependencyError(extra.ModulePath, dep))
				}
			}
			diagnostic.Sort(diags)
		}
	}

	errs, warnings := diagnostic.Split(diags)
	for _, w := range warnings {
		logger.Warning("%s", w.String())
	}
	for _, e := range errs {
		cmd.Println(e.String())
	}

	logger.Statistic("%d error(s), %d warning(s)", len(errs), len(warnings))

	if len(errs) > 0 {
		telemetry.ReportEvent(telemetry.CheckFailed)
		return fmt.Errorf("%d boundary violation(s) found", len(errs))
	}
	telemetry.ReportEvent(telemetry.CheckCompleted)
	return nil
}

// loadProjectConfig loads the project configuration from configPath,
// resolving the project root as the configuration file's own directory.
func loadProjectConfig() (*config.ProjectConfig, string, error) {
	cfg, err := config.LoadTOML(configPath)
	if err != nil {
		return nil, "", err
	}
	return cfg, projectRootOf(configPath), nil
}

func projectRootOf(cfgPath string) string {
	return filepath.Dir(cfgPath)
}
