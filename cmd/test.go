package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modbound/modbound/internal/affected"
	"github.com/modbound/modbound/internal/check"
	"github.com/modbound/modbound/internal/imports"
	"github.com/modbound/modbound/internal/modpath"
	"github.com/modbound/modbound/internal/telemetry"
)

var (
	testBaseRef      string
	testHeadRef      string
	testDisableCache bool
)

var testCmd = &cobra.Command{
	Use:   "test -- [pytest-args...]",
	Short: "Run pytest restricted to tests affected by changes between two refs",
	RunE:  runTest,
}

func init() {
	testCmd.Flags().StringVar(&testBaseRef, "base", "HEAD~1", "base git ref to diff against")
	testCmd.Flags().StringVar(&testHeadRef, "head", "HEAD", "head git ref")
	testCmd.Flags().BoolVar(&testDisableCache, "disable-cache", false, "ignore the computation cache")
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, pytestArgs []string) error {
	telemetry.ReportEvent(telemetry.TestRunStarted)

	cfg, projectRoot, err := loadProjectConfig()
	if err != nil {
		return err
	}

	changedFiles, err := gitChangedFiles(projectRoot, testBaseRef, testHeadRef)
	if err != nil {
		return fmt.Errorf("listing changed files: %w", err)
	}

	c := check.NewChecker(projectRoot, cfg)
	res, err := c.Run(context.Background())
	if err != nil {
		return err
	}

	changedModules := affected.ModulesForChangedFiles(projectRoot, cfg.SourceRoots, changedFiles, res.Tree)
	reverse := affected.ReverseDependents(cfg.Modules)
	closure := affected.Closure(changedModules, reverse)

	tests, err := discoverTestFiles(projectRoot, cfg.SourceRoots, cfg.IgnoreTypeCheckingImports, cfg.IncludeStringImports)
	if err != nil {
		return fmt.Errorf("discovering test files: %w", err)
	}
	kept := affected.FilterAffectedTests(projectRoot, cfg.SourceRoots, tests, changedFiles, closure, res.Tree)

	args := append([]string{}, pytestArgs...)
	for _, tf := range kept {
		args = append(args, tf.AbsPath)
	}
	if len(kept) == 0 {
		cmd.Println("no affected tests")
		telemetry.ReportEvent(telemetry.TestRunCompleted)
		return nil
	}

	pytest := exec.Command("pytest", args...)
	pytest.Dir = projectRoot
	pytest.Stdout = cmd.OutOrStdout()
	pytest.Stderr = cmd.ErrOrStderr()
	err = pytest.Run()
	telemetry.ReportEvent(telemetry.TestRunCompleted)
	return err
}

func gitChangedFiles(projectRoot, base, head string) ([]string, error) {
	out, err := exec.Command("git", "-C", projectRoot, "diff", "--name-only", base, head).Output()
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		files = append(files, filepath.Join(projectRoot, line))
	}
	return files, nil
}

// discoverTestFiles walks every source root for pytest-discoverable test
// files and extracts each one's first-party imports, so
// affected.FilterAffectedTests can evaluate its condition (c) ("it imports
// from any module in S") rather than only (a) and (b).
func discoverTestFiles(projectRoot string, sourceRoots []string, ignoreTypeChecking, includeStringImports bool) ([]affected.TestFile, error) {
	firstParty, err := firstPartyTopSegments(projectRoot, sourceRoots)
	if err != nil {
		return nil, err
	}
	isFirstParty := func(dotted string) bool {
		top := dotted
		if i := strings.IndexByte(dotted, '.'); i >= 0 {
			top = dotted[:i]
		}
		return firstParty[top]
	}

	var files []affected.TestFile
	for _, root := range sourceRoots {
		absRoot := filepath.Join(projectRoot, root)
		walkErr := filepath.WalkDir(absRoot, func(p string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			name := d.Name()
			if !strings.HasPrefix(name, "test_") && !strings.HasSuffix(name, "_test.py") {
				return nil
			}

			tf := affected.TestFile{AbsPath: p}
			src, readErr := os.ReadFile(p)
			if readErr != nil {
				files = append(files, tf)
				return nil
			}
			relInRoot, relErr := filepath.Rel(absRoot, p)
			if relErr != nil {
				files = append(files, tf)
				return nil
			}
			fileModPath := modpath.ToModulePath(filepath.ToSlash(relInRoot))
			rel, _ := filepath.Rel(projectRoot, p)
			extracted, extractErr := imports.Extract(rel, src, fileModPath, modpath.IsPackageInitializer(p), imports.Options{
				IgnoreTypeCheckingImports: ignoreTypeChecking,
				IncludeStringImports:      includeStringImports,
			}, isFirstParty)
			if extractErr == nil {
				tf.Imports = extracted
			}
			files = append(files, tf)
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}
	return files, nil
}

// firstPartyTopSegments collects the set of top-level names found directly
// under any source root, the same convention internal/check uses to
// classify an import's first segment as first-party (spec.md §4.2
// "Filtering").
func firstPartyTopSegments(projectRoot string, sourceRoots []string) (map[string]bool, error) {
	tops := make(map[string]bool)
	for _, root := range sourceRoots {
		absRoot := filepath.Join(projectRoot, root)
		entries, err := os.ReadDir(absRoot)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range entries {
			name := e.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}
			if e.IsDir() {
				tops[name] = true
				continue
			}
			if modpath.IsSourceFile(name) && name != modpath.PackageInitializer {
				tops[strings.TrimSuffix(name, modpath.SourceExtension)] = true
			}
		}
	}
	return tops, nil
}
