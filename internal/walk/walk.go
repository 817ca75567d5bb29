// Package walk enumerates candidate files below a directory.
package walk

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Exclude decides whether a directory subtree is skipped entirely.
// relDir is slash-separated and relative to the walked directory, it is never called for the walked directory itself.
type Exclude func(relDir string) bool

// ExcludeNothing descends into every directory.
func ExcludeNothing(string) bool { return false }

// ExcludeSubstrings rejects directories whose relative path contains any of the given substrings (case-sensitive).
func ExcludeSubstrings(substrings ...string) Exclude {
	return func(relDir string) bool {
		for _, s := range substrings {
			if s != "" && strings.Contains(relDir, s) {
				return true
			}
		}
		return false
	}
}

// Matcher selects candidate files by doublestar glob patterns on their slash-separated relative path.
type Matcher struct {
	patterns []string
}

// DefaultPatterns select C sources and headers at any depth.
var DefaultPatterns = []string{"**/*.c", "**/*.h"}

// NewMatcher validates the patterns, at least one is required.
func NewMatcher(patterns ...string) (Matcher, error) {
	if len(patterns) == 0 {
		return Matcher{}, fmt.Errorf("no candidate patterns given")
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return Matcher{}, fmt.Errorf("bad candidate pattern: %q", p)
		}
	}
	return Matcher{patterns: append([]string(nil), patterns...)}, nil
}

// Match reports whether any pattern matches relPath.
func (m Matcher) Match(relPath string) bool {
	for _, p := range m.patterns {
		if ok, _ := doublestar.Match(p, relPath); ok { //error impossible because patterns are validated
			return true
		}
	}
	return false
}

// isRegularFile accepts regular files and symlinks resolving to one. Dangling links are ignored.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular()
	}
	target, err := os.Stat(path)
	return err == nil && target.Mode().IsRegular()
}

// Candidates walks dir in lexical order and collects the paths of all matching regular files.
// Returned paths are dir joined with the relative path. The first walk error aborts the walk.
func Candidates(dir string, match Matcher, exclude Exclude) (paths []string, err error) {
	if exclude == nil {
		exclude = ExcludeNothing
	}
	visitor := func(path string, d fs.DirEntry, walkError error) error {
		if walkError != nil {
			return walkError
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && exclude(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if match.Match(rel) && isRegularFile(path, d) {
			paths = append(paths, path)
		}
		return nil
	}
	if err = filepath.WalkDir(dir, visitor); err != nil {
		return nil, fmt.Errorf("scanning %s failed: %w", dir, err)
	}
	return paths, nil
}
