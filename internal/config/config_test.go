package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/modbound/modbound/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTOML_DependsOnShorthand(t *testing.T) {
	data := []byte(`
source_roots = ["src"]

[[modules]]
path = "a"
depends_on = ["b", { path = "c", deprecated = true }]
`)
	cfg, err := config.ParseTOML(data)
	require.NoError(t, err)
	require.Len(t, cfg.Modules, 1)
	assert.Equal(t, []config.Dependency{{Path: "b"}, {Path: "c", Deprecated: true}}, cfg.Modules[0].DependsOn)
	assert.Equal(t, config.DefaultExcludePatterns, cfg.Exclude)
	assert.Equal(t, []string{"*"}, cfg.Modules[0].Visibility)
}

func TestValidate_DuplicatePath(t *testing.T) {
	cfg := &config.ProjectConfig{Modules: []config.ModuleConfig{{Path: "a"}, {Path: "a"}}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate module path")
}

func TestValidate_SelfDependency(t *testing.T) {
	cfg := &config.ProjectConfig{Modules: []config.ModuleConfig{
		{Path: "a", DependsOn: []config.Dependency{{Path: "a"}}},
	}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "may not depend on itself")
}

func TestValidate_ReservedTag(t *testing.T) {
	cfg := &config.ProjectConfig{Modules: []config.ModuleConfig{
		{Path: "a", Tags: []string{config.RootSentinelTag}},
	}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved tag")
}

func TestValidate_DuplicateRoot(t *testing.T) {
	cfg := &config.ProjectConfig{Modules: []config.ModuleConfig{
		{Path: config.RootSentinelTag}, {Path: config.RootSentinelTag},
	}}
	err := cfg.Validate()
	require.Error(t, err)
}

func TestSaveAndLoadTOMLRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.toml")

	cfg := &config.ProjectConfig{
		SourceRoots: []string{"src"},
		Modules: []config.ModuleConfig{
			{Path: "a", DependsOn: []config.Dependency{{Path: "b"}}, Visibility: []string{"*"}},
		},
		Exclude: config.DefaultExcludePatterns,
	}
	require.NoError(t, config.SaveTOML(path, cfg))

	loaded, err := config.LoadTOML(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.SourceRoots, loaded.SourceRoots)
	assert.Equal(t, cfg.Modules[0].Path, loaded.Modules[0].Path)
	assert.Equal(t, cfg.Modules[0].DependsOn, loaded.Modules[0].DependsOn)
}

func TestMigrateLegacyYAML(t *testing.T) {
	dir := t.TempDir()
	legacyPath := filepath.Join(dir, "modguard.yml")
	tomlPath := filepath.Join(dir, "project.toml")

	yamlContent := []byte(`
source_roots:
  - src
module_tags:
  core: [base]
  api: [http]
constraints:
  http:
    depends_on: [base]
`)
	require.NoError(t, os.WriteFile(legacyPath, yamlContent, 0o644))

	cfg, err := config.MigrateLegacyYAML(legacyPath, tomlPath)
	require.NoError(t, err)

	_, err = os.Stat(legacyPath)
	assert.True(t, os.IsNotExist(err), "legacy file should be removed after successful migration")

	api := cfg.ModuleByPath("api")
	require.NotNil(t, api)
	require.Len(t, api.DependsOn, 1)
	assert.Equal(t, "core", api.DependsOn[0].Path)
}

func TestModuleConfig_HasDependency(t *testing.T) {
	m := &config.ModuleConfig{DependsOn: []config.Dependency{{Path: "b", Deprecated: true}}}
	dep, ok := m.HasDependency("b")
	require.True(t, ok)
	assert.True(t, dep.Deprecated)

	_, ok = m.HasDependency("missing")
	assert.False(t, ok)
}
