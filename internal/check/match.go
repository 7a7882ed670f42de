package check

import (
	"path"
	"regexp"
)

// matchesAnyGlob reports whether value matches any of the given glob
// patterns (path.Match semantics, "*" matches any run of non-separator
// characters; module paths use "." as their separator but glob patterns
// are evaluated against the dotted string directly so "*" commonly means
// "anything").
func matchesAnyGlob(patterns []string, value string) bool {
	for _, p := range patterns {
		if p == "*" {
			return true
		}
		if ok, _ := path.Match(p, value); ok {
			return true
		}
	}
	return false
}

// compiledExcludes holds pre-compiled exclude patterns, built once per
// checker run (spec.md §4.4 step 4 "Compile the exclude patterns once").
type compiledExcludes struct {
	useRegex bool
	regexes  []*regexp.Regexp
	globs    []string
}

func compileExcludes(patterns []string, useRegex bool) (*compiledExcludes, error) {
	ce := &compiledExcludes{useRegex: useRegex}
	if !useRegex {
		ce.globs = patterns
		return ce, nil
	}
	ce.regexes = make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		ce.regexes = append(ce.regexes, re)
	}
	return ce, nil
}

// Matches reports whether relPath (project-relative, with a trailing "/"
// for directories) matches any compiled exclude pattern.
func (ce *compiledExcludes) Matches(relPath string) bool {
	if ce.useRegex {
		for _, re := range ce.regexes {
			if re.MatchString(relPath) {
				return true
			}
		}
		return false
	}
	for _, g := range ce.globs {
		if ok, _ := path.Match(g, relPath); ok {
			return true
		}
		// Glob patterns like "docs" should also match "docs/" and any
		// path beneath it, mirroring the documented default exclude set
		// (spec.md §6) which lists bare directory names.
		if matchesDirectoryPrefix(g, relPath) {
			return true
		}
	}
	return false
}

func matchesDirectoryPrefix(pattern, relPath string) bool {
	trimmed := relPath
	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == '/' {
		trimmed = trimmed[:len(trimmed)-1]
	}
	segs := splitPath(trimmed)
	for i := range segs {
		candidate := joinPath(segs[:i+1])
		if ok, _ := path.Match(pattern, candidate); ok {
			return true
		}
	}
	return false
}

func splitPath(p string) []string {
	var segs []string
	start := 0
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			segs = append(segs, p[start:i])
			start = i + 1
		}
	}
	segs = append(segs, p[start:])
	return segs
}

func joinPath(segs []string) string {
	out := ""
	for i, s := range segs {
		if i > 0 {
			out += "/"
		}
		out += s
	}
	return out
}
