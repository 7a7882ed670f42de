package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modbound/modbound/internal/config"
	"github.com/modbound/modbound/internal/syncengine"
	"github.com/modbound/modbound/internal/telemetry"
)

var syncPrune bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Add any missing dependencies a dependency violation would otherwise report",
	RunE:  runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncPrune, "prune", false, "also remove declared dependencies the code no longer needs")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	logger := newLogger()
	telemetry.ReportEvent(telemetry.SyncStarted)

	cfg, projectRoot, err := loadProjectConfig()
	if err != nil {
		return err
	}

	var updated *config.ProjectConfig
	if syncPrune {
		updated, err = syncengine.Prune(context.Background(), projectRoot, cfg)
	} else {
		updated, err = syncengine.Sync(context.Background(), projectRoot, cfg)
	}
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	if err := config.SaveTOML(configPath, updated); err != nil {
		return err
	}

	logger.Statistic("wrote updated dependencies to %s", configPath)
	telemetry.ReportEvent(telemetry.SyncCompleted)
	return nil
}
