// Package modules discovers Enunciate extension modules.
//
// Modules come from two places: the files of a module dependency group, which are
// scanned for the Java service descriptor of com.webcohesion.enunciate.module.EnunciateModule,
// and explicit module names listed in configuration. The result is a Resolver that
// is handed to the engine explicitly; discovery never touches process-wide state.
package modules

import (
	"archive/zip"
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/enunciator/internal/foundation/errors"
)

// ServiceDescriptor is the archive entry listing module implementations.
const ServiceDescriptor = "META-INF/services/com.webcohesion.enunciate.module.EnunciateModule"

// SourceConfig marks modules that were declared in configuration.
const SourceConfig = "config"

// Module is one discovered or declared extension module.
type Module struct {
	Name   string
	Source string
}

func (m Module) String() string {
	return m.Name + " (" + m.Source + ")"
}

// Resolver is the scoped lookup path for extension modules.
type Resolver struct {
	urls     []*url.URL
	declared []string
	modules  []Module
	scanned  bool
}

// FileURL converts a file path into an absolute file: URL.
func FileURL(path string) (*url.URL, error) {
	if strings.ContainsRune(path, 0) {
		return nil, fmt.Errorf("invalid path %q", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	u := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	if !strings.HasPrefix(u.Path, "/") {
		// Windows drive paths: file:///C:/...
		u.Path = "/" + u.Path
	}
	return u, nil
}

// NewResolver converts files to URLs. A failed conversion is a fatal module error.
func NewResolver(files []string, declared []string) (*Resolver, error) {
	r := &Resolver{declared: declared}
	for _, f := range files {
		u, err := FileURL(f)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryModule, "bad file->URL conversion for "+f).
				Fatal().
				WithContext("file", f).
				Build()
		}
		r.urls = append(r.urls, u)
	}
	return r, nil
}

// URLs returns the module lookup path as file: URLs.
func (r *Resolver) URLs() []string {
	out := make([]string, 0, len(r.urls))
	for _, u := range r.urls {
		out = append(out, u.String())
	}
	return out
}

// Paths returns the module lookup path as local file paths.
func (r *Resolver) Paths() []string {
	out := make([]string, 0, len(r.urls))
	for _, u := range r.urls {
		out = append(out, urlToPath(u))
	}
	return out
}

func urlToPath(u *url.URL) string {
	p := u.Path
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p)
}

// Modules scans the lookup path (once) and returns every module found there,
// followed by declared modules not already discovered.
func (r *Resolver) Modules() ([]Module, error) {
	if r.scanned {
		return r.modules, nil
	}
	seen := map[string]bool{}
	var found []Module
	for _, u := range r.urls {
		path := urlToPath(u)
		names, err := scan(path)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryModule, "failed to scan module path entry").
				Fatal().
				WithContext("url", u.String()).
				Build()
		}
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				found = append(found, Module{Name: n, Source: u.String()})
			}
		}
	}
	for _, n := range r.declared {
		n = strings.TrimSpace(n)
		if n != "" && !seen[n] {
			seen[n] = true
			found = append(found, Module{Name: n, Source: SourceConfig})
		}
	}
	r.modules = found
	r.scanned = true
	return found, nil
}

// scan reads the service descriptor from a directory or a jar/zip archive.
// Missing entries and other file types contribute nothing.
func scan(path string) ([]string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		f, err := os.Open(filepath.Join(path, filepath.FromSlash(ServiceDescriptor)))
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		return parseDescriptor(f)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jar", ".zip":
	default:
		return nil, nil
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = zr.Close() }()
	for _, zf := range zr.File {
		if zf.Name != ServiceDescriptor {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return parseDescriptor(rc)
	}
	return nil, nil
}

// parseDescriptor reads provider class names, one per line; '#' starts a comment.
func parseDescriptor(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names, sc.Err()
}
