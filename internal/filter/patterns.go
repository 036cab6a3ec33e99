// Package filter implements include/exclude pattern sets over source trees.
//
// Patterns use Ant/Gradle syntax against slash-separated paths relative to a
// source root: '*' matches within a path segment, '?' matches one character and
// '**' matches any number of segments (including none). A pattern ending in '/'
// matches everything below that directory.
//
// An exclude pattern that matches a directory drops everything below it, as
// in Gradle: excluding "**/internal" removes internal/Impl.java.
//
// A path is selected when it matches at least one include pattern (or no includes
// are configured) and matches no exclude pattern. Excludes always win, so the
// order in which Include and Exclude are called does not matter.
package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// PatternSet collects include and exclude patterns.
type PatternSet struct {
	includes []string
	excludes []string
}

// Include adds include patterns. Blank patterns are ignored.
func (p *PatternSet) Include(patterns ...string) *PatternSet {
	p.includes = appendPatterns(p.includes, patterns)
	return p
}

// Exclude adds exclude patterns. Blank patterns are ignored.
func (p *PatternSet) Exclude(patterns ...string) *PatternSet {
	p.excludes = appendPatterns(p.excludes, patterns)
	return p
}

// Includes returns a copy of the include patterns in insertion order.
func (p *PatternSet) Includes() []string { return slices.Clone(p.includes) }

// Excludes returns a copy of the exclude patterns in insertion order.
func (p *PatternSet) Excludes() []string { return slices.Clone(p.excludes) }

// IsEmpty reports whether no patterns were configured.
func (p *PatternSet) IsEmpty() bool { return len(p.includes) == 0 && len(p.excludes) == 0 }

func appendPatterns(dst, patterns []string) []string {
	for _, pat := range patterns {
		pat = strings.TrimSpace(pat)
		if pat == "" || slices.Contains(dst, pat) {
			continue
		}
		dst = append(dst, pat)
	}
	return dst
}

// Matcher is a compiled PatternSet.
type Matcher struct {
	includes []glob.Glob
	excludes []glob.Glob
}

// Compile turns the pattern set into a Matcher.
func (p *PatternSet) Compile() (*Matcher, error) {
	inc, err := compileAll(p.includes)
	if err != nil {
		return nil, err
	}
	exc, err := compileAll(p.excludes)
	if err != nil {
		return nil, err
	}
	return &Matcher{includes: inc, excludes: exc}, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, pat := range patterns {
		for _, variant := range expandDoubleStar(normalizePattern(pat)) {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("compile pattern %q: %w", pat, err)
			}
			out = append(out, g)
		}
	}
	return out, nil
}

func normalizePattern(pat string) string {
	pat = strings.ReplaceAll(pat, "\\", "/")
	pat = strings.TrimPrefix(pat, "/")
	if strings.HasSuffix(pat, "/") {
		pat += "**"
	}
	return pat
}

// expandDoubleStar returns every variant of pat where each "**/" is either kept
// or dropped, so that "**/" also matches zero directories.
func expandDoubleStar(pat string) []string {
	idx := strings.Index(pat, "**/")
	if idx < 0 {
		return []string{pat}
	}
	prefix, rest := pat[:idx], pat[idx+len("**/"):]
	var out []string
	for _, tail := range expandDoubleStar(rest) {
		out = append(out, prefix+"**/"+tail, prefix+tail)
	}
	return out
}

// Match reports whether the slash-separated relative path is selected.
func (m *Matcher) Match(rel string) bool {
	if m == nil {
		return true
	}
	for _, g := range m.excludes {
		if g.Match(rel) {
			return false
		}
	}
	if len(m.includes) == 0 {
		return true
	}
	for _, g := range m.includes {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// ExcludesDir reports whether an exclude pattern matches the directory rel,
// pruning its whole subtree.
func (m *Matcher) ExcludesDir(rel string) bool {
	if m == nil || rel == "" || rel == "." {
		return false
	}
	for _, g := range m.excludes {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
