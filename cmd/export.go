package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modbound/modbound/internal/check"
	"github.com/modbound/modbound/internal/sarifreport"
)

var (
	exportOutputPath string
	exportForce      bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current diagnostics as a SARIF report",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutputPath, "output", "o", "modbound.sarif", "output file path")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "overwrite an existing output file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if !exportForce {
		if _, err := os.Stat(exportOutputPath); err == nil {
			return fmt.Errorf("%s already exists; pass --force to overwrite", exportOutputPath)
		}
	}

	cfg, projectRoot, err := loadProjectConfig()
	if err != nil {
		return err
	}

	c := check.NewChecker(projectRoot, cfg)
	res, err := c.Run(context.Background())
	if err != nil {
		return err
	}

	f, err := os.Create(exportOutputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", exportOutputPath, err)
	}
	defer f.Close()

	if err := sarifreport.WriteTo(f, res.Diagnostics); err != nil {
		return fmt.Errorf("writing SARIF report: %w", err)
	}

	cmd.Println("wrote", exportOutputPath)
	return nil
}
