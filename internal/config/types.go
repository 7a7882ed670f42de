// Package config holds the project configuration model: module
// declarations, project-global options, and the TOML/legacy-YAML loaders
// that populate them.
package config

import "fmt"

// RootSentinelTag is the reserved tag reserved for the <root> module; no
// other module may declare it.
const RootSentinelTag = "<root>"

// Dependency is a relation from a module to one of its declared
// dependencies.
type Dependency struct {
	Path       string `toml:"path" yaml:"path"`
	Deprecated bool   `toml:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// ModuleConfig declares one module's place in the dependency graph.
type ModuleConfig struct {
	Path       string       `toml:"path"`
	Tags       []string     `toml:"tags,omitempty"`
	Strict     bool         `toml:"strict,omitempty"`
	DependsOn  []Dependency `toml:"depends_on,omitempty"`
	Visibility []string     `toml:"visibility,omitempty"`
	Layer      string       `toml:"layer,omitempty"`
	Unchecked  bool         `toml:"unchecked,omitempty"`
}

// HasDependency reports whether the module declares a dependency on path,
// and whether that declaration is marked deprecated.
func (m *ModuleConfig) HasDependency(path string) (dep Dependency, ok bool) {
	for _, d := range m.DependsOn {
		if d.Path == path {
			return d, true
		}
	}
	return Dependency{}, false
}

// VisibilityPatterns returns the module's configured visibility glob
// patterns, defaulting to "*" (allow all) when unset.
func (m *ModuleConfig) VisibilityPatterns() []string {
	if len(m.Visibility) == 0 {
		return []string{"*"}
	}
	return m.Visibility
}

// CacheConfig configures the optional computation cache backend.
type CacheConfig struct {
	Backend          string   `toml:"backend,omitempty"`
	FileDependencies []string `toml:"file_dependencies,omitempty"`
	EnvDependencies  []string `toml:"env_dependencies,omitempty"`
}

// DefaultExcludePatterns mirrors spec.md §6's documented default.
var DefaultExcludePatterns = []string{"tests", "docs", ".*__pycache__", ".*egg-info"}

// ProjectConfig is the whole of a project's tach-style configuration.
type ProjectConfig struct {
	SourceRoots                []string       `toml:"source_roots"`
	Modules                    []ModuleConfig `toml:"modules"`
	Layers                     []string       `toml:"layers,omitempty"`
	Exclude                    []string       `toml:"exclude,omitempty"`
	UseRegexMatching           bool           `toml:"use_regex_matching,omitempty"`
	IgnoreTypeCheckingImports  bool           `toml:"ignore_type_checking_imports,omitempty"`
	IncludeStringImports       bool           `toml:"include_string_imports,omitempty"`
	ForbidCircularDependencies bool           `toml:"forbid_circular_dependencies,omitempty"`
	Exact                      bool           `toml:"exact,omitempty"`
	Cache                      *CacheConfig   `toml:"cache,omitempty"`
}

// ModuleByPath returns a pointer to the module declared at path, or nil.
func (p *ProjectConfig) ModuleByPath(path string) *ModuleConfig {
	for i := range p.Modules {
		if p.Modules[i].Path == path {
			return &p.Modules[i]
		}
	}
	return nil
}

// Validate checks the structural invariants from spec.md §3 that don't
// require filesystem access: unique paths, at most one root module, no
// module depending on itself, no duplicate dependencies, and no module
// other than <root> using the reserved sentinel tag.
func (p *ProjectConfig) Validate() error {
	seenPaths := make(map[string]bool, len(p.Modules))
	seenRoot := false
	for _, m := range p.Modules {
		if seenPaths[m.Path] {
			return &ConfigurationError{Message: fmt.Sprintf("duplicate module path %q", m.Path)}
		}
		seenPaths[m.Path] = true

		if m.Path == RootSentinelTag {
			if seenRoot {
				return &ConfigurationError{Message: "<root> module declared more than once"}
			}
			seenRoot = true
		} else {
			for _, tag := range m.Tags {
				if tag == RootSentinelTag {
					return &ConfigurationError{
						Message: fmt.Sprintf("module %q may not use reserved tag %q", m.Path, RootSentinelTag),
					}
				}
			}
		}

		seenDeps := make(map[string]bool, len(m.DependsOn))
		for _, dep := range m.DependsOn {
			if dep.Path == m.Path {
				return &ConfigurationError{Message: fmt.Sprintf("module %q may not depend on itself", m.Path)}
			}
			if seenDeps[dep.Path] {
				return &ConfigurationError{Message: fmt.Sprintf("module %q declares duplicate dependency %q", m.Path, dep.Path)}
			}
			seenDeps[dep.Path] = true
		}
	}
	return nil
}

// ConfigurationError is a diagnostic.Diagnostic-compatible error describing
// a problem with the project configuration itself, surfaced before any
// file is examined (spec.md §7).
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Message
}
