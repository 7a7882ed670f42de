// Package cmd implements the modbound command-line dispatcher (spec.md
// §6), wiring every sub-command to the internal analysis engines.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/modbound/modbound/internal/logx"
	"github.com/modbound/modbound/internal/telemetry"
)

var (
	verboseFlag bool
	debugFlag   bool
	configPath  string
	Version     = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "modbound",
	Short: "Enforce and evolve module boundaries in a Python codebase",
	Long: `modbound checks that a codebase's imports respect a declared module
dependency graph, visibility rules, and public interfaces, and keeps that
graph in sync with the code as it evolves.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		disableMetrics, _ := cmd.Flags().GetBool("disable-metrics")
		telemetry.LoadIdentity()
		telemetry.Init(disableMetrics)
		telemetry.SetVersion(Version)
	},
}

// Execute runs the root command and returns any error. main exits with
// status 1 for every returned error, usage errors included; they get no
// separate exit status.
func Execute() error {
	return rootCmd.Execute()
}

func newLogger() *logx.Logger {
	v := logx.VerbosityDefault
	switch {
	case debugFlag:
		v = logx.VerbosityDebug
	case verboseFlag:
		v = logx.VerbosityVerbose
	}
	return logx.New(v)
}

func init() {
	rootCmd.PersistentFlags().Bool("disable-metrics", false, "disable usage telemetry")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "show progress and statistics")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "show debug diagnostics")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "modbound.toml", "path to the project configuration file")
}
