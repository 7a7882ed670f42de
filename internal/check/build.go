package check

import (
	"os"
	"path/filepath"

	"github.com/modbound/modbound/internal/config"
	"github.com/modbound/modbound/internal/diagnostic"
	"github.com/modbound/modbound/internal/imports"
	"github.com/modbound/modbound/internal/modpath"
	"github.com/modbound/modbound/internal/moduletree"
)

// BuildModuleTree implements spec.md §4.4 steps 1-2: validates that every
// module's path resolves to an existing file or directory under some
// source root (dropping and warning about those that don't), builds the
// trie, and attaches interface members to modules located at a
// package-initializer.
func BuildModuleTree(projectRoot string, cfg *config.ProjectConfig, reader FileReader) (*moduletree.Tree, []diagnostic.Diagnostic, error) {
	tree := moduletree.New()
	var warnings []diagnostic.Diagnostic

	for i := range cfg.Modules {
		m := &cfg.Modules[i]

		loc, isPkg, found := locateModule(projectRoot, cfg.SourceRoots, m.Path)
		if !found {
			warnings = append(warnings, diagnostic.Warning("", 0,
				"module \""+m.Path+"\" not found on disk — ignored"))
			continue
		}

		var members []string
		if isPkg {
			src, err := reader.ReadFile(loc)
			if err == nil {
				if parsed, perr := imports.ExtractInterfaceMembers(src); perr == nil {
					members = parsed
				}
			}
		}

		if err := tree.Insert(m.Path, m, members); err != nil {
			return nil, nil, err
		}
	}

	return tree, warnings, nil
}

// locateModule resolves a dotted module path to its on-disk location: a
// package directory's __init__.py, or a plain module's .py file. Returns
// found=false if neither exists under any source root.
func locateModule(projectRoot string, sourceRoots []string, modPath string) (location string, isPackage bool, found bool) {
	rel := filepath.Join(modpath.Segments(modPath)...)
	if modpath.IsRoot(modPath) {
		rel = ""
	}
	for _, root := range sourceRoots {
		base := filepath.Join(projectRoot, root, rel)

		pkgInit := filepath.Join(base, modpath.PackageInitializer)
		if fi, err := os.Stat(pkgInit); err == nil && !fi.IsDir() {
			return pkgInit, true, true
		}

		moduleFile := base + modpath.SourceExtension
		if fi, err := os.Stat(moduleFile); err == nil && !fi.IsDir() {
			return moduleFile, false, true
		}

		if fi, err := os.Stat(base); err == nil && fi.IsDir() {
			// A package directory without __init__.py is still a valid
			// namespace package location for the tree, but carries no
			// interface members.
			return base, false, true
		}
	}
	return "", false, false
}
