package extdeps

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	toml "github.com/pelletier/go-toml"
)

// requirementNameRE matches the distribution-name prefix of a PEP 508
// requirement string, stopping at the first version specifier, extra
// marker, or environment marker.
var requirementNameRE = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*`)

// LoadManifest reads the project-local dependency manifest at path (a
// pyproject.toml, PEP 621 or Poetry-style) and builds the
// distribution-name -> top-level-importable-name mapping spec.md §4.7
// takes as input. Without installed package metadata to consult, each
// declared distribution is mapped to its normalizeImportName form,
// which is the top-level import name for the large majority of PyPI
// distributions (the teacher's "tach" itself follows this convention:
// "tach" the distribution imports as "tach").
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	tree, err := toml.Load(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	manifest := make(Manifest)
	for _, requirement := range collectRequirementStrings(tree) {
		dist := parseDistributionName(requirement)
		if dist == "" {
			continue
		}
		manifest[dist] = append(manifest[dist], normalizeImportName(dist))
	}
	return manifest, nil
}

// collectRequirementStrings gathers dependency declarations from both the
// PEP 621 `[project] dependencies` array and the Poetry-style
// `[tool.poetry.dependencies]` table, since either may appear in a
// pyproject.toml.
func collectRequirementStrings(tree *toml.Tree) []string {
	var out []string

	if deps, ok := tree.Get("project.dependencies").([]interface{}); ok {
		for _, d := range deps {
			if s, ok := d.(string); ok {
				out = append(out, s)
			}
		}
	}

	if poetryDeps, ok := tree.Get("tool.poetry.dependencies").(*toml.Tree); ok {
		for _, key := range poetryDeps.Keys() {
			if strings.EqualFold(key, "python") {
				continue
			}
			out = append(out, key)
		}
	}

	return out
}

func parseDistributionName(requirement string) string {
	return requirementNameRE.FindString(strings.TrimSpace(requirement))
}

// normalizeImportName derives the usual import name from a distribution
// name: lowercase, with each "-" and "." replaced by an underscore (runs of
// separators are not collapsed).
func normalizeImportName(dist string) string {
	normalized := strings.ToLower(dist)
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, ".", "_")
	return normalized
}
