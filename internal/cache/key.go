// Package cache implements the computation cache (spec.md §5 "Caching"):
// a content-addressed key over a project's source roots and configuration,
// and the create/check/update primitives that guard a cached
// affected-tests result. It also provides the file-contents read cache
// keyed by (cwd, path) described in spec.md §5 "Shared-resource policy";
// it caches raw bytes, not parsed trees.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// FileStat is one source file's contribution to a cache key: its path
// relative to the project root, size, and modification time in Unix nanos.
type FileStat struct {
	Path    string
	Size    int64
	ModTime int64
}

// KeyInputs is everything CreateKey hashes together. InterpreterVersion,
// FileDependencies and EnvDependencies come from spec.md §5's key
// derivation (cache.file_dependencies / cache.env_dependencies in the
// project configuration).
type KeyInputs struct {
	Files              []FileStat
	ConfigBytes        []byte
	InterpreterVersion string
	FileDependencies   map[string][]byte // path -> contents, for declared cache.file_dependencies
	EnvDependencies    map[string]string // name -> value, for declared cache.env_dependencies
}

// CreateKey hashes the sorted file list (by path), the project config
// bytes, the interpreter version, and the declared file/env dependencies
// into a single content-addressed hex digest.
func CreateKey(in KeyInputs) string {
	h := sha256.New()

	files := append([]FileStat(nil), in.Files...)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	for _, f := range files {
		fmt.Fprintf(h, "file:%s:%d:%d\n", f.Path, f.Size, f.ModTime)
	}

	h.Write(in.ConfigBytes)
	fmt.Fprintf(h, "\ninterpreter:%s\n", in.InterpreterVersion)

	fileDepPaths := make([]string, 0, len(in.FileDependencies))
	for p := range in.FileDependencies {
		fileDepPaths = append(fileDepPaths, p)
	}
	sort.Strings(fileDepPaths)
	for _, p := range fileDepPaths {
		fmt.Fprintf(h, "filedep:%s:", p)
		h.Write(in.FileDependencies[p])
		h.Write([]byte{'\n'})
	}

	envNames := make([]string, 0, len(in.EnvDependencies))
	for name := range in.EnvDependencies {
		envNames = append(envNames, name)
	}
	sort.Strings(envNames)
	for _, name := range envNames {
		fmt.Fprintf(h, "envdep:%s=%s\n", name, in.EnvDependencies[name])
	}

	return hex.EncodeToString(h.Sum(nil))
}

// StatSourceRoots walks each source root under projectRoot and collects a
// FileStat per regular file, for use as KeyInputs.Files.
func StatSourceRoots(projectRoot string, sourceRoots []string) ([]FileStat, error) {
	var stats []FileStat
	for _, root := range sourceRoots {
		absRoot := filepath.Join(projectRoot, root)
		err := filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(projectRoot, path)
			if err != nil {
				return err
			}
			stats = append(stats, FileStat{
				Path:    filepath.ToSlash(rel),
				Size:    info.Size(),
				ModTime: info.ModTime().UnixNano(),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return stats, nil
}
