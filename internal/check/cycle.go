package check

import (
	"github.com/modbound/modbound/internal/config"
	"github.com/modbound/modbound/internal/diagnostic"
)

// DetectCycles runs Tarjan's strongly-connected-components algorithm over
// the declared-dependency graph and returns one cycle (module path list)
// per non-trivial SCC, each rotated to start with its lexicographically
// smallest element (spec.md §4.4 step 3, Scenario 6).
//
// Modeled as map<ModulePath, list<ModulePath>> keyed by path rather than
// pointer, per spec.md §9 "Cyclic module graphs": "nodes referenced by
// path (an index, not a pointer), enabling cycle detection without
// ownership puzzles."
func DetectCycles(modules []config.ModuleConfig) [][]string {
	graph := make(map[string][]string, len(modules))
	for _, m := range modules {
		deps := make([]string, 0, len(m.DependsOn))
		for _, d := range m.DependsOn {
			deps = append(deps, d.Path)
		}
		graph[m.Path] = deps
	}

	t := &tarjan{
		graph:   graph,
		index:   make(map[string]int),
		lowlink: make(map[string]int),
		onStack: make(map[string]bool),
	}

	// Iterate in declaration order so results are deterministic for a
	// fixed config, independent of Go map iteration order.
	for _, m := range modules {
		if _, seen := t.index[m.Path]; !seen {
			t.strongConnect(m.Path)
		}
	}

	var cycles [][]string
	for _, scc := range t.sccs {
		if len(scc) > 1 {
			cycles = append(cycles, diagnostic.RotateToSmallest(scc))
			continue
		}
		// A single-node SCC is still circular if the node depends on
		// itself directly (disallowed elsewhere, but defensive here).
		node := scc[0]
		for _, dep := range graph[node] {
			if dep == node {
				cycles = append(cycles, scc)
				break
			}
		}
	}
	return cycles
}

type tarjan struct {
	graph   map[string][]string
	index   map[string]int
	lowlink map[string]int
	onStack map[string]bool
	stack   []string
	counter int
	sccs    [][]string
}

func (t *tarjan) strongConnect(v string) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.graph[v] {
		if _, ok := t.index[w]; !ok {
			t.strongConnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		}
	}

	if t.lowlink[v] == t.index[v] {
		var scc []string
		for {
			n := len(t.stack) - 1
			w := t.stack[n]
			t.stack = t.stack[:n]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		t.sccs = append(t.sccs, scc)
	}
}
