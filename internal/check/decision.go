// Package check implements the per-import decision procedure (spec.md
// §4.3) and the top-level boundary checker that walks every source file
// and applies it (spec.md §4.4).
package check

import (
	"strings"

	"github.com/modbound/modbound/internal/config"
	"github.com/modbound/modbound/internal/diagnostic"
	"github.com/modbound/modbound/internal/moduletree"
)

// layerIndex looks up a layer's position in the project's declared layer
// order (most-dependent first); -1 means the layer isn't declared.
type layerIndex map[string]int

func newLayerIndex(layers []string) layerIndex {
	idx := make(layerIndex, len(layers))
	for i, l := range layers {
		idx[l] = i
	}
	return idx
}

// DecideImport runs spec.md §4.3's per-import decision procedure for one
// resolved import found at (file, line) inside fileModulePath, against the
// module tree and project configuration. It returns the single diagnostic
// produced, or nil if the import is allowed. Only the first failing check
// is evaluated, per spec.md's "Ties" rule.
func DecideImport(tree *moduletree.Tree, cfg *config.ProjectConfig, file string, line int, importPath, fileModulePath string) *diagnostic.Diagnostic {
	importModule := tree.FindNearest(importPath)
	if importModule == nil {
		return nil // external import, allowed
	}

	fileModule := tree.FindNearest(fileModulePath)
	if fileModule == nil {
		d := diagnostic.ConfigurationError("file " + file + " (module " + fileModulePath + ") is under a source root but outside any configured module")
		d.File = file
		d.Line = line
		return &d
	}

	if importModule == fileModule {
		return nil
	}

	if isUnchecked(importModule) || isUnchecked(fileModule) {
		return nil
	}

	// Step 4: interface check.
	if importModule.Config != nil && importModule.Config.Strict {
		if !isTopLevelImport(importPath, importModule) && !matchesInterfaceMember(importPath, importModule) {
			d := diagnostic.InterfaceError(file, line, importPath, fileModule.FullPath, importModule.FullPath)
			return &d
		}
	}

	// Step 5: visibility check.
	patterns := importModule.Config.VisibilityPatterns()
	if !matchesAnyGlob(patterns, fileModule.FullPath) {
		d := diagnostic.VisibilityError(file, line, fileModule.FullPath, importModule.FullPath, patterns)
		return &d
	}

	// Step 6: dependency check.
	dep, ok := fileModule.Config.HasDependency(importModule.FullPath)
	if ok {
		if dep.Deprecated {
			d := diagnostic.Warning(file, line, "module "+fileModule.FullPath+" depends on deprecated dependency "+importModule.FullPath)
			return &d
		}
		// Step 7: layer check, only meaningful once the direct
		// dependency is otherwise allowed.
		if d := checkLayer(cfg, file, line, fileModule, importModule); d != nil {
			return d
		}
		return nil
	}

	allowed := make([]string, 0, len(fileModule.Config.DependsOn))
	for _, d := range fileModule.Config.DependsOn {
		allowed = append(allowed, d.Path)
	}
	d := diagnostic.DependencyError(file, line, fileModule.FullPath, importModule.FullPath, allowed, false)
	return &d
}

func isUnchecked(n *moduletree.Node) bool {
	return n.Config != nil && n.Config.Unchecked
}

// isTopLevelImport reports whether importPath is exactly the imported
// module's own full path (spec.md §4.1 "top-level import").
func isTopLevelImport(importPath string, module *moduletree.Node) bool {
	return importPath == module.FullPath
}

// matchesInterfaceMember reports whether importPath names a member listed
// in the module's interface (the last dotted segment of importPath, once
// the module's own path prefix is stripped).
func matchesInterfaceMember(importPath string, module *moduletree.Node) bool {
	if len(importPath) <= len(module.FullPath) || importPath[:len(module.FullPath)] != module.FullPath {
		return false
	}
	rest := importPath[len(module.FullPath):]
	if len(rest) == 0 || rest[0] != '.' {
		return false
	}
	member := rest[1:]
	if i := strings.LastIndexByte(member, '.'); i >= 0 {
		member = member[i+1:]
	}
	for _, m := range module.InterfaceMembers {
		if m == member {
			return true
		}
	}
	return false
}

// checkLayer implements spec.md §4.3 step 7: when both modules declare a
// layer, the file's module may only depend on its own layer or a layer
// later in the project's declared (most-dependent-first) order.
func checkLayer(cfg *config.ProjectConfig, file string, line int, fileModule, importModule *moduletree.Node) *diagnostic.Diagnostic {
	if fileModule.Config.Layer == "" || importModule.Config.Layer == "" {
		return nil
	}
	idx := newLayerIndex(cfg.Layers)
	fileLayerPos, fileOK := idx[fileModule.Config.Layer]
	importLayerPos, importOK := idx[importModule.Config.Layer]
	if !fileOK || !importOK {
		return nil
	}
	if fileLayerPos > importLayerPos {
		d := diagnostic.DependencyError(file, line, fileModule.FullPath, importModule.FullPath,
			[]string{"modules in layer " + fileModule.Config.Layer + " or later"}, false)
		return &d
	}
	return nil
}
