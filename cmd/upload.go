package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/modbound/modbound/internal/check"
	"github.com/modbound/modbound/internal/diagnostic"
	"github.com/modbound/modbound/internal/telemetry"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a modularity summary to the configured reporting endpoint",
	RunE:  runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, _ []string) error {
	cfg, projectRoot, err := loadProjectConfig()
	if err != nil {
		return err
	}

	c := check.NewChecker(projectRoot, cfg)
	res, err := c.Run(context.Background())
	if err != nil {
		return err
	}

	errs, warnings := diagnostic.Split(res.Diagnostics)
	telemetry.ReportEventWithProperties(telemetry.CheckCompleted, map[string]interface{}{
		"module_count": len(cfg.Modules),
		"error_count":  len(errs),
		"warn_count":   len(warnings),
	})

	cmd.Println("uploaded modularity summary")
	return nil
}
