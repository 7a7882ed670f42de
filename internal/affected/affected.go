// Package affected computes the set of modules, and test files, impacted
// by a set of changed source files (spec.md §4.6).
package affected

import (
	"path/filepath"
	"strings"

	"github.com/modbound/modbound/internal/config"
	"github.com/modbound/modbound/internal/imports"
	"github.com/modbound/modbound/internal/modpath"
	"github.com/modbound/modbound/internal/moduletree"
)

// ModulesForChangedFiles maps each changed (absolute) file path to the
// deepest module whose on-disk location is an ancestor of it, falling
// back to modpath.Root when no configured module's location contains the
// file (spec.md §4.6 step 1).
func ModulesForChangedFiles(projectRoot string, sourceRoots []string, changedFiles []string, tree *moduletree.Tree) map[string]bool {
	changed := make(map[string]bool)
	for _, f := range changedFiles {
		mod := moduleForFile(projectRoot, sourceRoots, f, tree)
		changed[mod] = true
	}
	return changed
}

func moduleForFile(projectRoot string, sourceRoots []string, file string, tree *moduletree.Tree) string {
	for _, root := range sourceRoots {
		absRoot := filepath.Join(projectRoot, root)
		rel, err := filepath.Rel(absRoot, file)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		modPath := modpath.ToModulePath(filepath.ToSlash(rel))
		if n := tree.FindNearest(modPath); n != nil {
			return n.FullPath
		}
		return modpath.Root
	}
	return modpath.Root
}

// ReverseDependents builds the B => A edge set from the declared A -> B
// depends_on graph (spec.md §4.6 step 2).
func ReverseDependents(modules []config.ModuleConfig) map[string][]string {
	reverse := make(map[string][]string)
	for _, m := range modules {
		for _, dep := range m.DependsOn {
			reverse[dep.Path] = append(reverse[dep.Path], m.Path)
		}
	}
	return reverse
}

// Closure computes the set S of modules that transitively depend on any
// module in `changed`, under the reverse-dependency graph (spec.md §4.6
// step 3). The changed modules themselves are included in S.
func Closure(changed map[string]bool, reverse map[string][]string) map[string]bool {
	closure := make(map[string]bool, len(changed))
	var queue []string
	for m := range changed {
		closure[m] = true
		queue = append(queue, m)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dependent := range reverse[cur] {
			if !closure[dependent] {
				closure[dependent] = true
				queue = append(queue, dependent)
			}
		}
	}
	return closure
}

// TestFile is one test file candidate being evaluated for affectedness.
type TestFile struct {
	AbsPath string
	Imports []imports.Import // pre-extracted first-party imports of this test file, if available
}

// FilterAffectedTests implements spec.md §4.6 step 4: keep a test iff (a)
// its own path is among the changed files, (b) its containing module is
// in S, or (c) it imports from any module in S.
func FilterAffectedTests(projectRoot string, sourceRoots []string, tests []TestFile, changedFiles []string, affected map[string]bool, tree *moduletree.Tree) []TestFile {
	changedSet := make(map[string]bool, len(changedFiles))
	for _, f := range changedFiles {
		changedSet[f] = true
	}

	var kept []TestFile
	for _, tf := range tests {
		if changedSet[tf.AbsPath] {
			kept = append(kept, tf)
			continue
		}
		ownModule := moduleForFile(projectRoot, sourceRoots, tf.AbsPath, tree)
		if affected[ownModule] {
			kept = append(kept, tf)
			continue
		}
		if importsAffectedModule(tf, affected, tree) {
			kept = append(kept, tf)
		}
	}
	return kept
}

func importsAffectedModule(tf TestFile, affected map[string]bool, tree *moduletree.Tree) bool {
	for _, imp := range tf.Imports {
		n := tree.FindNearest(imp.Path)
		if n != nil && affected[n.FullPath] {
			return true
		}
	}
	return false
}
