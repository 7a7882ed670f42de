package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modbound/modbound/internal/affected"
	"github.com/modbound/modbound/internal/check"
	"github.com/modbound/modbound/internal/moduletree"
)

var (
	reportDependencies bool
	reportUsages       bool
	reportExternal     bool
	reportRaw          bool
)

var reportCmd = &cobra.Command{
	Use:   "report <path>",
	Short: "Report a single module's dependencies or usages",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVarP(&reportDependencies, "dependencies", "d", false, "show this module's declared dependencies")
	reportCmd.Flags().BoolVarP(&reportUsages, "usages", "u", false, "show modules that depend on this module")
	reportCmd.Flags().BoolVar(&reportExternal, "external", false, "print a notice that external imports are not reported")
	reportCmd.Flags().BoolVar(&reportRaw, "raw", false, "print bare module paths, one per line")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	modulePath := args[0]

	cfg, projectRoot, err := loadProjectConfig()
	if err != nil {
		return err
	}

	c := check.NewChecker(projectRoot, cfg)
	res, err := c.Run(context.Background())
	if err != nil {
		return err
	}

	node := res.Tree.Get(modulePath)
	if node == nil {
		return fmt.Errorf("module %q is not configured", modulePath)
	}

	showAll := !reportDependencies && !reportUsages && !reportExternal
	if reportDependencies || showAll {
		printModuleList(cmd, "dependencies", dependencyPaths(node))
	}
	if reportUsages || showAll {
		reverse := affected.ReverseDependents(cfg.Modules)
		printModuleList(cmd, "usages", reverse[modulePath])
	}
	if reportExternal {
		cmd.Println("external: not available without a distribution manifest")
	}
	return nil
}

func dependencyPaths(node *moduletree.Node) []string {
	if node.Config == nil {
		return nil
	}
	paths := make([]string, len(node.Config.DependsOn))
	for i, d := range node.Config.DependsOn {
		paths[i] = d.Path
	}
	return paths
}

func printModuleList(cmd *cobra.Command, label string, paths []string) {
	if reportRaw {
		for _, p := range paths {
			cmd.Println(p)
		}
		return
	}
	cmd.Printf("%s:\n", label)
	for _, p := range paths {
		cmd.Printf("  %s\n", p)
	}
}
