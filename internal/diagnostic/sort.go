package diagnostic

import "sort"

// Sort orders diagnostics deterministically by (file, line, kind), per
// spec.md §5 "Ordering guarantees". The sort is stable so diagnostics
// produced for the same (file, line, kind) keep their discovery order.
func Sort(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Kind < b.Kind
	})
}

// Split partitions diagnostics into errors and warnings, matching the
// `{errors, warnings}` result shape from spec.md §7.
func Split(diags []Diagnostic) (errors, warnings []Diagnostic) {
	for _, d := range diags {
		if d.Kind.IsError() {
			errors = append(errors, d)
		} else {
			warnings = append(warnings, d)
		}
	}
	return errors, warnings
}
