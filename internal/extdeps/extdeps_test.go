package extdeps_test

import (
	"testing"

	"github.com/modbound/modbound/internal/diagnostic"
	"github.com/modbound/modbound/internal/extdeps"
	"github.com/stretchr/testify/assert"
)

func TestClassify_StandardLibrary(t *testing.T) {
	c := extdeps.NewClassifier(extdeps.Manifest{})
	class, dist := c.Classify("os")
	assert.Equal(t, extdeps.ClassificationStandardLibrary, class)
	assert.Empty(t, dist)
}

func TestClassify_Declared(t *testing.T) {
	c := extdeps.NewClassifier(extdeps.Manifest{"requests": {"requests"}})
	class, dist := c.Classify("requests")
	assert.Equal(t, extdeps.ClassificationDeclared, class)
	assert.Equal(t, "requests", dist)
}

func TestClassify_Undeclared(t *testing.T) {
	c := extdeps.NewClassifier(extdeps.Manifest{"requests": {"requests"}})
	class, _ := c.Classify("numpy")
	assert.Equal(t, extdeps.ClassificationUndeclared, class)
}

func TestScan_EmitsUndeclaredErrorAndUnusedWarning(t *testing.T) {
	c := extdeps.NewClassifier(extdeps.Manifest{
		"requests": {"requests"},
		"pyyaml":   {"yaml"},
	})
	imports := []extdeps.Import{
		{File: "a.py", Line: 1, TopLevel: "numpy"},
		{File: "a.py", Line: 2, TopLevel: "requests"},
		{File: "a.py", Line: 3, TopLevel: "os"},
	}

	diags := extdeps.Scan(imports, c, "pyproject.toml")

	var gotError, gotWarning bool
	for _, d := range diags {
		switch d.Kind {
		case diagnostic.KindExternalDependencyError:
			gotError = true
			assert.Equal(t, "a.py", d.File)
			assert.Equal(t, 1, d.Line)
		case diagnostic.KindWarning:
			gotWarning = true
			assert.Contains(t, d.Message, "pyyaml")
		}
	}
	assert.True(t, gotError, "expected an external-dependency error for numpy")
	assert.True(t, gotWarning, "expected a warning for the unused pyyaml distribution")
}

func TestScan_NoDiagnosticsWhenAllDeclaredAndUsed(t *testing.T) {
	c := extdeps.NewClassifier(extdeps.Manifest{"requests": {"requests"}})
	imports := []extdeps.Import{{File: "a.py", Line: 1, TopLevel: "requests"}}
	diags := extdeps.Scan(imports, c, "pyproject.toml")
	assert.Empty(t, diags)
}
