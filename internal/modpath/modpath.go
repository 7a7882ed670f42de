// Package modpath converts between filesystem paths (relative to a source
// root) and dotted module paths, and recognizes package-initializer files.
package modpath

import (
	"path/filepath"
	"strings"
)

// Root is the sentinel module path representing the root of a source root.
const Root = "<root>"

// PackageInitializer is the conventional filename marking a directory as a
// package whose dotted path is the directory's own path (not a child of it).
const PackageInitializer = "__init__.py"

// SourceExtension is the file extension recognized as a source file.
const SourceExtension = ".py"

// ToModulePath converts a source-root-relative filesystem path to a dotted
// module path. "a/b/c.py" -> "a.b.c"; "a/b/__init__.py" -> "a.b";
// "__init__.py" at the root, "" and "." all normalize to Root.
func ToModulePath(relPath string) string {
	relPath = filepath.ToSlash(relPath)
	relPath = strings.TrimPrefix(relPath, "./")
	relPath = strings.TrimSuffix(relPath, "/")
	if relPath == "" || relPath == "." {
		return Root
	}

	base := filepath.Base(relPath)
	dir := filepath.Dir(relPath)
	if dir == "." {
		dir = ""
	}

	if base == PackageInitializer {
		if dir == "" {
			return Root
		}
		return dottedFromSlash(dir)
	}

	trimmed := strings.TrimSuffix(relPath, SourceExtension)
	if trimmed == "" {
		return Root
	}
	return dottedFromSlash(trimmed)
}

func dottedFromSlash(p string) string {
	return strings.ReplaceAll(p, "/", ".")
}

// IsPackageInitializer reports whether the given path's base name is the
// conventional package-initializer filename.
func IsPackageInitializer(path string) bool {
	return filepath.Base(path) == PackageInitializer
}

// IsSourceFile reports whether the given path has the recognized source
// file extension.
func IsSourceFile(path string) bool {
	return strings.HasSuffix(path, SourceExtension)
}

// Segments splits a dotted module path into its components. Root splits to
// an empty slice.
func Segments(modPath string) []string {
	if modPath == "" || modPath == Root || modPath == "." {
		return nil
	}
	return strings.Split(modPath, ".")
}

// Join re-joins path segments into a dotted module path. An empty segment
// slice joins to Root.
func Join(segments []string) string {
	if len(segments) == 0 {
		return Root
	}
	return strings.Join(segments, ".")
}

// StripTrailingSegments removes the last n segments of a dotted module
// path, used to resolve relative imports. n must not exceed the number of
// segments; the caller is responsible for reporting malformed relative
// imports (e.g. more leading dots than the file has ancestors).
func StripTrailingSegments(modPath string, n int) string {
	segs := Segments(modPath)
	if n >= len(segs) {
		return Root
	}
	if n <= 0 {
		return Join(segs)
	}
	return Join(segs[:len(segs)-n])
}

// IsRoot reports whether a dotted module path is the root sentinel, the
// empty string, or ".".
func IsRoot(modPath string) bool {
	return modPath == Root || modPath == "" || modPath == "."
}
