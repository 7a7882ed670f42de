package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/modbound/modbound/internal/config"
)

func writeTestFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func withConfigPath(t *testing.T, path string) {
	t.Helper()
	old := configPath
	configPath = path
	t.Cleanup(func() { configPath = old })
}

func TestRunCheck_PlainModeIgnoresUnusedDependency(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "src/a/__init__.py", "")
	writeTestFile(t, dir, "src/a/x.py", "from b import foo\n")
	writeTestFile(t, dir, "src/b/__init__.py", "")
	writeTestFile(t, dir, "src/c/__init__.py", "")

	cfg := &config.ProjectConfig{
		SourceRoots: []string{"src"},
		Modules: []config.ModuleConfig{
			{Path: "a", Visibility: []string{"*"}, DependsOn: []config.Dependency{{Path: "b"}, {Path: "c"}}},
			{Path: "b", Visibility: []string{"*"}},
			{Path: "c", Visibility: []string{"*"}},
		},
	}
	cfgPath := filepath.Join(dir, "modbound.toml")
	require.NoError(t, config.SaveTOML(cfgPath, cfg))
	withConfigPath(t, cfgPath)

	old := checkExact
	checkExact = false
	defer func() { checkExact = old }()

	out := &bytes.Buffer{}
	fake := &cobra.Command{}
	fake.SetOut(out)

	err := runCheck(fake, nil)
	require.NoError(t, err)
}

func TestRunCheck_ExactModeFailsOnUnusedDependency(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "src/a/__init__.py", "")
	writeTestFile(t, dir, "src/a/x.py", "from b import foo\n")
	writeTestFile(t, dir, "src/b/__init__.py", "")
	writeTestFile(t, dir, "src/c/__init__.py", "")

	cfg := &config.ProjectConfig{
		SourceRoots: []string{"src"},
		Modules: []config.ModuleConfig{
			{Path: "a", Visibility: []string{"*"}, DependsOn: []config.Dependency{{Path: "b"}, {Path: "c"}}},
			{Path: "b", Visibility: []string{"*"}},
			{Path: "c", Visibility: []string{"*"}},
		},
	}
	cfgPath := filepath.Join(dir, "modbound.toml")
	require.NoError(t, config.SaveTOML(cfgPath, cfg))
	withConfigPath(t, cfgPath)

	old := checkExact
	checkExact = true
	defer func() { checkExact = old }()

	out := &bytes.Buffer{}
	fake := &cobra.Command{}
	fake.SetOut(out)

	err := runCheck(fake, nil)
	require.Error(t, err)
	require.Contains(t, out.String(), `unused dependency "c"`)
}
