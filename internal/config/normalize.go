package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/enunciator/internal/javac"
)

// NormalizationResult captures adjustments and warnings from the normalization pass.
type NormalizationResult struct{ Warnings []string }

// Normalize canonicalizes enumerations, encodings and pattern lists in place.
// It runs before defaults are applied.
func Normalize(c *Config) *NormalizationResult {
	res := &NormalizationResult{}
	if c == nil {
		return res
	}
	s := &c.Enunciate
	if p := strings.ToLower(strings.TrimSpace(s.ClasspathPolicy)); p != s.ClasspathPolicy {
		res.Warnings = append(res.Warnings, warnChanged("enunciate.classpath_policy", s.ClasspathPolicy, p))
		s.ClasspathPolicy = p
	}
	s.Includes = normalizeStringSlice("enunciate.includes", s.Includes, res)
	s.Excludes = normalizeStringSlice("enunciate.excludes", s.Excludes, res)
	s.Modules = normalizeStringSlice("enunciate.modules", s.Modules, res)
	s.Sourcepath = normalizeStringSlice("enunciate.sourcepath", s.Sourcepath, res)

	for i := range c.Project.CompileTasks {
		ct := &c.Project.CompileTasks[i]
		if ct.Encoding == "" {
			continue
		}
		field := fmt.Sprintf("project.compile_tasks[%d].encoding", i)
		canonical, ok := javac.CanonicalName(ct.Encoding)
		if !ok {
			res.Warnings = append(res.Warnings, warnUnknown(field, ct.Encoding, "passed through unchanged"))
			continue
		}
		if canonical != ct.Encoding {
			res.Warnings = append(res.Warnings, warnChanged(field, ct.Encoding, canonical))
			ct.Encoding = canonical
		}
	}
	return res
}

// normalizeStringSlice trims entries and drops blanks and duplicates, keeping order.
func normalizeStringSlice(label string, in []string, res *NormalizationResult) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	changed := false
	for _, v := range in {
		t := strings.TrimSpace(v)
		if t == "" {
			changed = true
			continue
		}
		if _, ok := seen[t]; ok {
			changed = true
			continue
		}
		if t != v {
			changed = true
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if changed {
		res.Warnings = append(res.Warnings, fmt.Sprintf("normalized %s list (%d -> %d entries)", label, len(in), len(out)))
	}
	return out
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value, action string) string {
	return fmt.Sprintf("unknown %s '%s' (%s)", field, value, action)
}
