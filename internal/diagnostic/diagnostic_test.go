package diagnostic_test

import (
	"testing"

	"github.com/modbound/modbound/internal/diagnostic"
	"github.com/stretchr/testify/assert"
)

func TestRotateToSmallest(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, diagnostic.RotateToSmallest([]string{"b", "c", "a"}))
	assert.Equal(t, []string{"a", "b", "c"}, diagnostic.RotateToSmallest([]string{"a", "b", "c"}))
	assert.Nil(t, diagnostic.RotateToSmallest(nil))
}

func TestSortDeterministic(t *testing.T) {
	diags := []diagnostic.Diagnostic{
		diagnostic.Warning("b.py", 1, "x"),
		diagnostic.DependencyError("a.py", 5, "m", "n", nil, false),
		diagnostic.DependencyError("a.py", 1, "m", "n", nil, false),
		diagnostic.InterfaceError("a.py", 1, "x.y", "m", "x"),
	}
	diagnostic.Sort(diags)

	assert.Equal(t, "a.py", diags[0].File)
	assert.Equal(t, 1, diags[0].Line)
	assert.Equal(t, diagnostic.KindDependencyError, diags[0].Kind)

	assert.Equal(t, "a.py", diags[1].File)
	assert.Equal(t, 1, diags[1].Line)
	assert.Equal(t, diagnostic.KindInterfaceError, diags[1].Kind)

	assert.Equal(t, 5, diags[2].Line)
	assert.Equal(t, "b.py", diags[3].File)
}

func TestSplitErrorsAndWarnings(t *testing.T) {
	diags := []diagnostic.Diagnostic{
		diagnostic.Warning("a.py", 1, "w"),
		diagnostic.DependencyError("a.py", 2, "m", "n", nil, false),
	}
	errs, warns := diagnostic.Split(diags)
	assert.Len(t, errs, 1)
	assert.Len(t, warns, 1)
}

func TestStringFormatting(t *testing.T) {
	d := diagnostic.DependencyError("a.py", 3, "a", "b", []string{"c"}, true)
	assert.Contains(t, d.String(), "deprecated")
	assert.Contains(t, d.String(), "a.py:3")
}
