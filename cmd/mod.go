package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modbound/modbound/internal/check"
	"github.com/modbound/modbound/internal/modpath"
	"github.com/modbound/modbound/internal/moduletree"
)

var modDepth int

var modCmd = &cobra.Command{
	Use:   "mod",
	Short: "Print the configured module tree",
	RunE:  runMod,
}

func init() {
	modCmd.Flags().IntVar(&modDepth, "depth", -1, "limit the tree to this many levels (-1 for unlimited)")
	rootCmd.AddCommand(modCmd)
}

func runMod(cmd *cobra.Command, _ []string) error {
	cfg, projectRoot, err := loadProjectConfig()
	if err != nil {
		return err
	}

	c := check.NewChecker(projectRoot, cfg)
	res, err := c.Run(context.Background())
	if err != nil {
		return err
	}

	printTree(cmd, res.Tree, modDepth)
	return nil
}

// printTree prints one line per module, indented by depth, truncated to
// maxDepth levels when maxDepth >= 0.
func printTree(cmd *cobra.Command, tree *moduletree.Tree, maxDepth int) {
	tree.Walk(func(n *moduletree.Node) bool {
		if modpath.IsRoot(n.FullPath) {
			cmd.Println(modpath.Root)
			return true
		}
		depth := len(modpath.Segments(n.FullPath)) - 1
		if maxDepth >= 0 && depth >= maxDepth {
			return true
		}
		cmd.Println(strings.Repeat("  ", depth) + lastSegment(n.FullPath))
		return true
	})
}

func lastSegment(dotted string) string {
	segs := modpath.Segments(dotted)
	if len(segs) == 0 {
		return dotted
	}
	return segs[len(segs)-1]
}
