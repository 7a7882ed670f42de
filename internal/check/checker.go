package check

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/modbound/modbound/internal/config"
	"github.com/modbound/modbound/internal/diagnostic"
	"github.com/modbound/modbound/internal/imports"
	"github.com/modbound/modbound/internal/modpath"
	"github.com/modbound/modbound/internal/moduletree"
)

// FileReader abstracts file I/O so Checker can be driven against an
// in-memory fixture in tests without touching disk.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

type osFileReader struct{}

func (osFileReader) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// Checker walks every source file under every configured source root and
// evaluates spec.md §4.3's decision procedure against each import it finds.
// Per spec.md §5, file enumeration/parsing/checking are independent and
// safely parallelizable; the module tree and project config are built once
// and never mutated afterward.
type Checker struct {
	ProjectRoot string
	Config      *config.ProjectConfig
	Reader      FileReader
	// Workers bounds the worker pool size; 0 selects a sensible default
	// and negative forces the single-threaded fallback (spec.md §5).
	Workers int
}

// NewChecker constructs a Checker rooted at projectRoot.
func NewChecker(projectRoot string, cfg *config.ProjectConfig) *Checker {
	return &Checker{ProjectRoot: projectRoot, Config: cfg, Reader: osFileReader{}}
}

// Result is the outcome of a full Run: the populated module tree (useful
// to callers that want to re-run decisions, e.g. sync/prune) plus the
// diagnostics produced.
type Result struct {
	Tree        *moduletree.Tree
	Diagnostics []diagnostic.Diagnostic
}

// Run executes spec.md §4.4's top-level algorithm.
func (c *Checker) Run(ctx context.Context) (*Result, error) {
	tree, warnings, err := BuildModuleTree(c.ProjectRoot, c.Config, c.Reader)
	if err != nil {
		return nil, err
	}

	var cycleDiags []diagnostic.Diagnostic
	if c.Config.ForbidCircularDependencies {
		cycles := DetectCycles(c.Config.Modules)
		if len(cycles) > 0 {
			for _, cyc := range cycles {
				cycleDiags = append(cycleDiags, diagnostic.CircularDependencyError(cyc))
			}
			diagnostic.Sort(cycleDiags)
			return &Result{Tree: tree, Diagnostics: cycleDiags}, nil
		}
	}

	excludes, err := compileExcludes(c.Config.Exclude, c.Config.UseRegexMatching)
	if err != nil {
		return nil, err
	}

	firstPartyTops, err := firstPartyTopSegments(c.ProjectRoot, c.Config.SourceRoots)
	if err != nil {
		return nil, err
	}
	isFirstParty := func(dotted string) bool {
		top := dotted
		if i := strings.IndexByte(dotted, '.'); i >= 0 {
			top = dotted[:i]
		}
		return firstPartyTops[top]
	}

	files, err := enumerateFiles(c.ProjectRoot, c.Config.SourceRoots, excludes)
	if err != nil {
		return nil, err
	}

	diags := append([]diagnostic.Diagnostic(nil), warnings...)
	diags = append(diags, cycleDiags...)

	perFile := make([][]diagnostic.Diagnostic, len(files))

	process := func(i int) error {
		perFile[i] = c.checkFile(tree, files[i], isFirstParty)
		return nil
	}

	if c.Workers < 0 {
		for i := range files {
			if err := process(i); err != nil {
				return nil, err
			}
		}
	} else {
		g, _ := errgroup.WithContext(ctx)
		if c.Workers > 0 {
			g.SetLimit(c.Workers)
		} else {
			g.SetLimit(runtime.NumCPU())
		}
		for i := range files {
			i := i
			g.Go(func() error { return process(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	for _, fd := range perFile {
		diags = append(diags, fd...)
	}
	diagnostic.Sort(diags)
	return &Result{Tree: tree, Diagnostics: diags}, nil
}

func (c *Checker) checkFile(tree *moduletree.Tree, f sourceFile, isFirstParty func(string) bool) []diagnostic.Diagnostic {
	src, err := c.Reader.ReadFile(f.absPath)
	if err != nil {
		return []diagnostic.Diagnostic{diagnostic.Warning(f.relPath, 0, "skipping file: "+err.Error())}
	}

	isPkgInit := modpath.IsPackageInitializer(f.relPath)
	extracted, err := imports.Extract(f.relPath, src, f.modulePath, isPkgInit, imports.Options{
		IgnoreTypeCheckingImports: c.Config.IgnoreTypeCheckingImports,
		IncludeStringImports:      c.Config.IncludeStringImports,
	}, isFirstParty)
	if err != nil {
		return []diagnostic.Diagnostic{diagnostic.Warning(f.relPath, 0, "skipping file: "+err.Error())}
	}

	var diags []diagnostic.Diagnostic
	for _, imp := range extracted {
		if d := DecideImport(tree, c.Config, f.relPath, imp.Line, imp.Path, f.modulePath); d != nil {
			diags = append(diags, *d)
		}
	}
	return diags
}

type sourceFile struct {
	absPath    string
	relPath    string
	modulePath string
}

func enumerateFiles(projectRoot string, sourceRoots []string, excludes *compiledExcludes) ([]sourceFile, error) {
	var files []sourceFile
	for _, root := range sourceRoots {
		absRoot := filepath.Join(projectRoot, root)
		err := filepath.WalkDir(absRoot, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, rerr := filepath.Rel(projectRoot, p)
			if rerr != nil {
				return rerr
			}
			rel = filepath.ToSlash(rel)
			name := d.Name()
			if name != "." && strings.HasPrefix(name, ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			matchPath := rel
			if d.IsDir() {
				matchPath += "/"
			}
			if excludes.Matches(matchPath) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !modpath.IsSourceFile(p) {
				return nil
			}
			relInRoot, rerr := filepath.Rel(absRoot, p)
			if rerr != nil {
				return rerr
			}
			files = append(files, sourceFile{
				absPath:    p,
				relPath:    rel,
				modulePath: modpath.ToModulePath(filepath.ToSlash(relInRoot)),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].relPath < files[j].relPath })
	return files, nil
}

// firstPartyTopSegments collects the set of top-level names (directories
// or .py files, minus __init__.py) found directly under any source root,
// used to classify an import's first segment as first-party (spec.md
// §4.2 "Filtering").
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
