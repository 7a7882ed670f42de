package extdeps_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modbound/modbound/internal/extdeps"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "pyproject.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadManifest_PEP621Dependencies(t *testing.T) {
	path := writeManifest(t, `
[project]
name = "demo"
dependencies = [
    "requests>=2.31",
    "PyYAML==6.0",
    "click",
]
`)

	manifest, err := extdeps.LoadManifest(path)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"requests"}, manifest["requests"])
	assert.ElementsMatch(t, []string{"pyyaml"}, manifest["PyYAML"])
	assert.ElementsMatch(t, []string{"click"}, manifest["click"])
}

func TestLoadManifest_PoetryDependencies(t *testing.T) {
	path := writeManifest(t, `
[tool.poetry.dependencies]
python = "^3.10"
requests = "^2.31"
"ruamel.yaml" = "*"
`)

	manifest, err := extdeps.LoadManifest(path)
	require.NoError(t, err)

	_, hasPython := manifest["python"]
	assert.False(t, hasPython, "the python version constraint is not a dependency")
	assert.ElementsMatch(t, []string{"requests"}, manifest["requests"])
	assert.ElementsMatch(t, []string{"ruamel_yaml"}, manifest["ruamel.yaml"])
}

func TestLoadManifest_MissingFile(t *testing.T) {
	_, err := extdeps.LoadManifest(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadManifest_ClassifiesAgainstDeclaredNames(t *testing.T) {
	path := writeManifest(t, `
[project]
dependencies = ["requests>=2.31"]
`)

	manifest, err := extdeps.LoadManifest(path)
	require.NoError(t, err)

	classifier := extdeps.NewClassifier(manifest)
	class, dist := classifier.Classify("requests")
	assert.Equal(t, extdeps.ClassificationDeclared, class)
	assert.Equal(t, "requests", dist)
}
