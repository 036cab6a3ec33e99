// Package javac assembles the compiler arguments handed to the generator.
package javac

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"git.home.luguber.info/inful/enunciator/internal/project"
)

// FallbackEncoding is used when neither the compile task nor the locale names a charset.
const FallbackEncoding = "UTF-8"

// BuildArgs returns -source/-target/-encoding for the project, followed by
// -bootclasspath when the first compile task has a bootstrap classpath
// configured, followed by extra in the order given.
func BuildArgs(p *project.Project, extra []string) []string {
	first := p.FirstCompileTask()

	args := []string{
		"-source", p.Java.SourceCompatibility,
		"-target", p.Java.TargetCompatibility,
		"-encoding", EncodingFor(first),
	}
	if first != nil && first.BootstrapClasspath != nil {
		entries := make([]string, 0, len(first.BootstrapClasspath))
		for _, e := range first.BootstrapClasspath {
			entries = append(entries, p.Path(e))
		}
		args = append(args, "-bootclasspath", strings.Join(entries, string(filepath.ListSeparator)))
	}
	return append(args, extra...)
}

// EncodingFor returns the compile task's encoding, or the platform default.
func EncodingFor(task *project.CompileTask) string {
	if task != nil && task.Encoding != "" {
		return task.Encoding
	}
	return DefaultEncoding()
}

// DefaultEncoding derives the platform charset from the locale environment
// (LC_ALL, LC_CTYPE, LANG). Unknown or absent codesets yield FallbackEncoding.
func DefaultEncoding() string {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		if name, ok := CanonicalName(localeCodeset(v)); ok {
			return name
		}
		return FallbackEncoding
	}
	return FallbackEncoding
}

// localeCodeset extracts "UTF-8" from "en_US.UTF-8@euro".
func localeCodeset(locale string) string {
	if i := strings.IndexByte(locale, '@'); i >= 0 {
		locale = locale[:i]
	}
	if i := strings.IndexByte(locale, '.'); i >= 0 {
		return locale[i+1:]
	}
	return ""
}

// CanonicalName resolves a charset name or alias to its MIME name using the
// IANA registry. "utf8" is accepted as the common locale spelling of UTF-8.
func CanonicalName(charset string) (string, bool) {
	if charset == "" {
		return "", false
	}
	if strings.EqualFold(charset, "utf8") {
		charset = "UTF-8"
	}
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return "", false
	}
	name, err := ianaindex.MIME.Name(enc)
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

// IsKnownEncoding reports whether the IANA registry knows charset.
func IsKnownEncoding(charset string) bool {
	_, ok := CanonicalName(charset)
	return ok
}
