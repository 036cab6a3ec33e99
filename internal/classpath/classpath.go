// Package classpath filters the files of a classpath group down to the entries
// that are valid on a compiler classpath.
package classpath

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// Policy selects how classpath entries are filtered.
type Policy string

const (
	// PolicyAllowList keeps directories and files whose type is in ValidTypes.
	PolicyAllowList Policy = "allow-list"
	// PolicyDenyPOM drops only files of type "pom" (BOM artifacts). Superseded by
	// PolicyAllowList, kept selectable for projects relying on the old behavior.
	PolicyDenyPOM Policy = "deny-pom"
)

// DefaultPolicy is the policy used when none is configured.
const DefaultPolicy = PolicyAllowList

// ValidTypes lists the artifact types accepted by PolicyAllowList. The list
// matches the one used by the Enunciate Maven plugin.
var ValidTypes = []string{"jar", "bundle", "eclipse-plugin", "ejb", "ejb-client"}

// ParsePolicy normalizes a policy name. The empty string yields DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultPolicy, nil
	case PolicyAllowList:
		return PolicyAllowList, nil
	case PolicyDenyPOM:
		return PolicyDenyPOM, nil
	default:
		return "", fmt.Errorf("unknown classpath policy %q (want %s or %s)", s, PolicyAllowList, PolicyDenyPOM)
	}
}

// Type returns the lower-cased text after the last '.' of the file name, or the
// whole lower-cased name when it contains no dot.
func Type(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

// Result is the outcome of filtering a classpath group.
type Result struct {
	Kept    []string
	Dropped []string
}

// Filter applies policy to files, preserving order. Each decision is logged at debug.
func Filter(files []string, policy Policy, logger *slog.Logger) Result {
	if logger == nil {
		logger = slog.Default()
	}
	res := Result{Kept: []string{}, Dropped: []string{}}
	for _, f := range files {
		name := baseName(f)
		typ := Type(name)
		include := IsValidElement(f, policy)
		logger.Debug(fmt.Sprintf("Include %s , type '%s' : %t", name, typ, include))
		if include {
			res.Kept = append(res.Kept, f)
		} else {
			res.Dropped = append(res.Dropped, f)
		}
	}
	return res
}

// IsValidElement reports whether file f belongs on the classpath under policy.
func IsValidElement(f string, policy Policy) bool {
	typ := Type(baseName(f))
	switch policy {
	case PolicyDenyPOM:
		return typ != "pom"
	default:
		return isDir(f) || slices.Contains(ValidTypes, typ)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// baseName strips trailing separators before taking the last element, so "build/"
// yields "build".
func baseName(path string) string {
	trimmed := strings.TrimRight(path, `/\`)
	if i := strings.LastIndexAny(trimmed, `/\`); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
