// Package diagnostic defines the tagged-union diagnostic type produced by
// every core engine (checker, sync, affected-tests, external-dependency
// classifier) and its deterministic ordering.
package diagnostic

import "fmt"

// Kind discriminates the tagged union described in spec.md §3. The integer
// values fix the tie-break order within (file, line) per spec.md §5
// "Ordering guarantees".
type Kind int

const (
	KindDependencyError Kind = iota
	KindInterfaceError
	KindVisibilityError
	KindCircularDependencyError
	KindConfigurationError
	KindExternalDependencyError
	KindUnusedDependencyError
	KindWarning
)

func (k Kind) String() string {
	switch k {
	case KindDependencyError:
		return "dependency-error"
	case KindInterfaceError:
		return "interface-error"
	case KindVisibilityError:
		return "visibility-error"
	case KindCircularDependencyError:
		return "circular-dependency-error"
	case KindConfigurationError:
		return "configuration-error"
	case KindExternalDependencyError:
		return "external-dependency-error"
	case KindUnusedDependencyError:
		return "unused-dependency-error"
	case KindWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// IsError reports whether this Kind counts toward a non-zero exit code
// (everything except Warning, per spec.md §7).
func (k Kind) IsError() bool {
	return k != KindWarning
}

// Diagnostic is one finding from any core engine. Not every field is
// populated for every Kind; see the per-kind constructors below.
type Diagnostic struct {
	Kind Kind

	File string
	Line int

	// DependencyError / UnusedDependencyError (SourceModule, InvalidModule only)
	SourceModule   string
	InvalidModule  string
	AllowedModules []string
	Deprecated     bool

	// InterfaceError
	ImportPath      string
	ImportingModule string
	TargetModule    string

	// VisibilityError
	Dependent          string
	Dependency         string
	VisibilityPatterns []string

	// CircularDependencyError
	Cycle []string

	// ConfigurationError / Warning / ExternalDependencyError
	Message string
}

// Message text matching spec.md §7's "single-line message per diagnostic".
func (d Diagnostic) String() string {
	switch d.Kind {
	case KindDependencyError:
		msg := fmt.Sprintf("%s:%d: module %q is not allowed to import %q (allowed: %v)",
			d.File, d.Line, d.SourceModule, d.InvalidModule, d.AllowedModules)
		if d.Deprecated {
			msg += " [deprecated dependency]"
		}
		return msg
	case KindInterfaceError:
		return fmt.Sprintf("%s:%d: %q is not part of the public interface of %q (imported from %q)",
			d.File, d.Line, d.ImportPath, d.TargetModule, d.ImportingModule)
	case KindVisibilityError:
		return fmt.Sprintf("%s:%d: module %q is not visible to %q (visibility: %v)",
			d.File, d.Line, d.Dependency, d.Dependent, d.VisibilityPatterns)
	case KindCircularDependencyError:
		return fmt.Sprintf("circular dependency detected: %v", d.Cycle)
	case KindConfigurationError:
		return "configuration error: " + d.Message
	case KindExternalDependencyError:
		return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message)
	case KindUnusedDependencyError:
		return fmt.Sprintf("module %q declares unused dependency %q", d.SourceModule, d.InvalidModule)
	case KindWarning:
		return "warning: " + d.Message
	default:
		return d.Message
	}
}

// DependencyError constructs a Kind-DependencyError diagnostic.
func DependencyError(file string, line int, sourceModule, invalidModule string, allowed []string, deprecated bool) Diagnostic {
	return Diagnostic{
		Kind: KindDependencyError, File: file, Line: line,
		SourceModule: sourceModule, InvalidModule: invalidModule,
		AllowedModules: allowed, Deprecated: deprecated,
	}
}

// InterfaceError constructs a Kind-InterfaceError diagnostic.
func InterfaceError(file string, line int, importPath, importingModule, targetModule string) Diagnostic {
	return Diagnostic{
		Kind: KindInterfaceError, File: file, Line: line,
		ImportPath: importPath, ImportingModule: importingModule, TargetModule: targetModule,
	}
}

// VisibilityError constructs a Kind-VisibilityError diagnostic.
func VisibilityError(file string, line int, dependent, dependency string, patterns []string) Diagnostic {
	return Diagnostic{
		Kind: KindVisibilityError, File: file, Line: line,
		Dependent: dependent, Dependency: dependency, VisibilityPatterns: patterns,
	}
}

// CircularDependencyError constructs a Kind-CircularDependencyError
// diagnostic. cycle should already be rotated to start with its
// lexicographically smallest element (spec.md Scenario 6).
func CircularDependencyError(cycle []string) Diagnostic {
	return Diagnostic{Kind: KindCircularDependencyError, Cycle: RotateToSmallest(cycle)}
}

// ConfigurationError constructs a Kind-ConfigurationError diagnostic.
func ConfigurationError(message string) Diagnostic {
	return Diagnostic{Kind: KindConfigurationError, Message: message}
}

// Warning constructs a Kind-Warning diagnostic, optionally anchored to a
// file/line (File may be empty for project-level warnings).
func Warning(file string, line int, message string) Diagnostic {
	return Diagnostic{Kind: KindWarning, File: file, Line: line, Message: message}
}

// ExternalDependencyError constructs a Kind-ExternalDependencyError
// diagnostic for an undeclared third-party import (spec.md §4.7).
func ExternalDependencyError(file string, line int, message string) Diagnostic {
	return Diagnostic{Kind: KindExternalDependencyError, File: file, Line: line, Message: message}
}

// UnusedDependencyError constructs a Kind-UnusedDependencyError diagnostic
// for a declared-but-unused dependency, counted as an error so `check
// --exact` exits non-zero the same way the distilled original's exact-mode
// comparison does (spec.md §9).
func UnusedDependencyError(modulePath, dependency string) Diagnostic {
	return Diagnostic{Kind: KindUnusedDependencyError, SourceModule: modulePath, InvalidModule: dependency}
}

// RotateToSmallest rotates a cycle so it starts with its lexicographically
// smallest element, giving circular-dependency diagnostics a canonical
// form independent of which node Tarjan happened to visit first.
func RotateToSmallest(cycle []string) []string {
	if len(cycle) == 0 {
		return cycle
	}
	minIdx := 0
	for i, v := range cycle {
		if v < cycle[minIdx] {
			minIdx = i
		}
	}
	rotated := make([]string, len(cycle))
	for i := range cycle {
		rotated[i] = cycle[(minIdx+i)%len(cycle)]
	}
	return rotated
}
