package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modbound/modbound/internal/check"
	"github.com/modbound/modbound/internal/moduletree"
)

var (
	showMermaid bool
	showOutput  string
)

var showCmd = &cobra.Command{
	Use:   "show [paths...]",
	Short: "Render the module dependency graph",
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showMermaid, "mermaid", false, "render as a mermaid flowchart instead of plain text")
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "", "write to this path instead of stdout")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, projectRoot, err := loadProjectConfig()
	if err != nil {
		return err
	}

	c := check.NewChecker(projectRoot, cfg)
	res, err := c.Run(context.Background())
	if err != nil {
		return err
	}

	var rendered string
	if showMermaid {
		rendered = renderMermaid(res.Tree, args)
	} else {
		rendered = renderPlainGraph(res.Tree, args)
	}

	if showOutput == "" {
		cmd.Print(rendered)
		return nil
	}
	return os.WriteFile(showOutput, []byte(rendered), 0o644)
}

func renderMermaid(tree *moduletree.Tree, filter []string) string {
	out := "flowchart LR\n"
	allowed := filterSet(filter)
	tree.Walk(func(n *moduletree.Node) bool {
		if n.Config == nil || !allowed(n.FullPath) {
			return true
		}
		for _, dep := range n.Config.DependsOn {
			out += fmt.Sprintf("  %s --> %s\n", mermaidID(n.FullPath), mermaidID(dep.Path))
		}
		return true
	})
	return out
}

func renderPlainGraph(tree *moduletree.Tree, filter []string) string {
	out := ""
	allowed := filterSet(filter)
	tree.Walk(func(n *moduletree.Node) bool {
		if n.Config == nil || !allowed(n.FullPath) {
			return true
		}
		for _, dep := range n.Config.DependsOn {
			out += fmt.Sprintf("%s -> %s\n", n.FullPath, dep.Path)
		}
		return true
	})
	return out
}

func filterSet(paths []string) func(string) bool {
	if len(paths) == 0 {
		return func(string) bool { return true }
	}
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return func(p string) bool { return set[p] }
}

func mermaidID(modulePath string) string {
	id := []byte(modulePath)
	for i, b := range id {
		if b == '.' || b == '-' {
			id[i] = '_'
		}
	}
	return string(id)
}
