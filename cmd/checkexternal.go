package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modbound/modbound/internal/diagnostic"
	"github.com/modbound/modbound/internal/extdeps"
	"github.com/modbound/modbound/internal/imports"
	"github.com/modbound/modbound/internal/modpath"
)

var checkExternalManifest string

var checkExternalCmd = &cobra.Command{
	Use:   "check-external",
	Short: "Check that every third-party import has a declared distribution",
	RunE:  runCheckExternal,
}

func init() {
	checkExternalCmd.Flags().StringVar(&checkExternalManifest, "manifest", "pyproject.toml", "dependency manifest path, relative to the project root")
	rootCmd.AddCommand(checkExternalCmd)
}

func runCheckExternal(cmd *cobra.Command, _ []string) error {
	cfg, projectRoot, err := loadProjectConfig()
	if err != nil {
		return err
	}

	firstParty := make(map[string]bool)
	for _, root := range cfg.SourceRoots {
		entries, err := os.ReadDir(filepath.Join(projectRoot, root))
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := strings.TrimSuffix(e.Name(), modpath.SourceExtension)
			firstParty[name] = true
		}
	}

	var collected []extdeps.Import
	for _, root := range cfg.SourceRoots {
		absRoot := filepath.Join(projectRoot, root)
		err := filepath.WalkDir(absRoot, func(p string, d os.DirEntry, walkErr error) error {
			if walkErr != nil || d.IsDir() || !modpath.IsSourceFile(p) {
				return walkErr
			}
			rel, _ := filepath.Rel(projectRoot, p)
			src, readErr := os.ReadFile(p)
			if readErr != nil {
				return nil
			}
			relInRoot, _ := filepath.Rel(absRoot, p)
			fileModPath := modpath.ToModulePath(filepath.ToSlash(relInRoot))
			// Extract keeps only imports for which the predicate returns
			// true; inverting first-party membership here turns it into
			// an external-import collector instead of the usual
			// first-party one.
			keepExternal := func(dotted string) bool {
				top := dotted
				if i := strings.IndexByte(dotted, '.'); i >= 0 {
					top = dotted[:i]
				}
				return !firstParty[top]
			}
			extracted, extractErr := imports.Extract(rel, src, fileModPath, modpath.IsPackageInitializer(p), imports.Options{}, keepExternal)
			if extractErr != nil {
				return nil
			}
			for _, imp := range extracted {
				top := imp.Path
				if i := strings.IndexByte(top, '.'); i >= 0 {
					top = top[:i]
				}
				collected = append(collected, extdeps.Import{File: rel, Line: imp.Line, TopLevel: top})
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	manifestPath := checkExternalManifest
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(projectRoot, manifestPath)
	}
	manifest, err := extdeps.LoadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("loading dependency manifest: %w", err)
	}

	classifier := extdeps.NewClassifier(manifest)
	diags := extdeps.Scan(collected, classifier, checkExternalManifest)
	errs, warnings := diagnostic.Split(diags)

	for _, w := range warnings {
		cmd.Println(w.String())
	}
	for _, e := range errs {
		cmd.Println(e.String())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d undeclared external dependenc(y/ies) found", len(errs))
	}
	return nil
}
