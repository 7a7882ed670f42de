package syncengine

import "github.com/modbound/modbound/internal/config"

// ExtraDependencies is, for one module, the set of dependency paths present
// in the first configuration given to CompareDependencies but absent from
// the second.
type ExtraDependencies struct {
	ModulePath string
	Extra      []string
}

// CompareDependencies returns, per module, the dependencies declared in a
// but not in b — this powers spec.md §4.5's `exact` mode ("no unused
// dependencies"): comparing the original config against the pruned config
// surfaces every currently-declared-but-unused dependency.
func CompareDependencies(a, b *config.ProjectConfig) []ExtraDependencies {
	bDeps := make(map[string]map[string]bool, len(b.Modules))
	for _, m := range b.Modules {
		set := make(map[string]bool, len(m.DependsOn))
		for _, d := range m.DependsOn {
			set[d.Path] = true
		}
		bDeps[m.Path] = set
	}

	var out []ExtraDependencies
	for _, m := range a.Modules {
		var extra []string
		bSet := bDeps[m.Path]
		for _, d := range m.DependsOn {
			if bSet == nil || !bSet[d.Path] {
				extra = append(extra, d.Path)
			}
		}
		if len(extra) > 0 {
			out = append(out, ExtraDependencies{ModulePath: m.Path, Extra: extra})
		}
	}
	return out
}
