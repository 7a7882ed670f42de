// Package extdeps implements the external-dependency classifier (spec.md
// §4.7): for every non-first-party import, decide whether it resolves to
// the standard library, a declared third-party distribution, or an
// undeclared one, and separately flag distributions the manifest declares
// but no file ever imports.
package extdeps

import (
	"fmt"
	"sort"

	"github.com/modbound/modbound/internal/diagnostic"
)

// Classification is the outcome of classifying one non-first-party import.
type Classification int

const (
	ClassificationStandardLibrary Classification = iota
	ClassificationDeclared
	ClassificationUndeclared
)

// Manifest maps a distribution name (as it appears in a project's
// dependency manifest, e.g. pyproject.toml's `dependencies`) to the list
// of top-level import names it provides.
type Manifest map[string][]string

// Classifier classifies top-level import segments against a manifest and
// the standard-library set.
type Classifier struct {
	topLevelToDist map[string]string // top-level import name -> distribution name
	declaredDists  map[string]bool
}

// NewClassifier builds a Classifier from a distribution manifest. Multiple
// distributions providing the same top-level name is unusual; which of them
// the name maps to is not defined.
func NewClassifier(manifest Manifest) *Classifier {
	c := &Classifier{
		topLevelToDist: make(map[string]string),
		declaredDists:  make(map[string]bool, len(manifest)),
	}
	for dist, tops := range manifest {
		c.declaredDists[dist] = true
		for _, top := range tops {
			c.topLevelToDist[top] = dist
		}
	}
	return c
}

// Classify classifies a single top-level import segment, returning the
// distribution name when it resolves to one.
func (c *Classifier) Classify(topLevel string) (Classification, string) {
	if Standard[topLevel] {
		return ClassificationStandardLibrary, ""
	}
	if dist, ok := c.topLevelToDist[topLevel]; ok {
		return ClassificationDeclared, dist
	}
	return ClassificationUndeclared, ""
}

// Import is one non-first-party import encountered while scanning a file.
type Import struct {
	File     string
	Line     int
	TopLevel string // first segment of the dotted import path
}

// Scan classifies every import and returns one ExternalDependencyError per
// undeclared import, plus one Warning per distribution in the manifest
// that no scanned import ever resolved to (spec.md §4.7).
func Scan(imports []Import, classifier *Classifier, manifestLocation string) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	used := make(map[string]bool)

	for _, imp := range imports {
		class, dist := classifier.Classify(imp.TopLevel)
		switch class {
		case ClassificationDeclared:
			used[dist] = true
		case ClassificationUndeclared:
			diags = append(diags, diagnostic.ExternalDependencyError(imp.File, imp.Line,
				fmt.Sprintf("undeclared external dependency %q", imp.TopLevel)))
		}
	}

	unused := make([]string, 0)
	for dist := range classifier.declaredDists {
		if !used[dist] {
			unused = append(unused, dist)
		}
	}
	sort.Strings(unused)
	for _, dist := range unused {
		msg := fmt.Sprintf("distribution %q declared in %s is never imported", dist, manifestLocation)
		diags = append(diags, diagnostic.Warning("", 0, msg))
	}

	return diags
}
