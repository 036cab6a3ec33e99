package filter

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// MatchingFiles walks each root and returns the absolute paths of regular files
// with the given suffix whose root-relative path passes m. Missing roots are skipped.
// The result is sorted and free of duplicates.
func MatchingFiles(roots []string, suffix string, m *Matcher) ([]string, error) {
	var out []string
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			continue
		}
		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				rel, err := filepath.Rel(abs, path)
				if err != nil {
					return err
				}
				if m.ExcludesDir(filepath.ToSlash(rel)) {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(d.Name(), suffix) {
				return nil
			}
			rel, err := filepath.Rel(abs, path)
			if err != nil {
				return err
			}
			if m.Match(filepath.ToSlash(rel)) {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}
