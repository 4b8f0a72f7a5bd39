package walker

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IgnoreFile lists extra exclude globs, one per line, in the walked root.
const IgnoreFile = ".chatmarkignore"

// skippedDirs are never descended into, in addition to hidden directories.
var skippedDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

// Filter decides which transcripts a walk picks up. Patterns use doublestar
// syntax. A pattern without a slash is also tried against the base name, so
// "*.log" excludes logs at any depth.
type Filter struct {
	include []string
	exclude []string
}

// NewFilter validates the patterns. An empty include list selects every file.
func NewFilter(include, exclude []string) (*Filter, error) {
	for _, p := range append(append([]string(nil), include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("walker: invalid pattern %q", p)
		}
	}
	return &Filter{include: include, exclude: exclude}, nil
}

// Match reports whether the slash-separated relPath is a transcript to render.
func (f *Filter) Match(relPath string) bool {
	if len(f.include) > 0 && !matchesAny(relPath, f.include) {
		return false
	}
	return !matchesAny(relPath, f.exclude)
}

// SkipDir reports whether a whole directory can be pruned. Hidden
// directories hold tool state (.git, .chatmark) rather than transcripts.
func (f *Filter) SkipDir(relPath string) bool {
	name := path.Base(relPath)
	if strings.HasPrefix(name, ".") || skippedDirs[name] {
		return true
	}
	for _, p := range f.exclude {
		// "dir/**" matches "dir" itself.
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
	}
	return false
}

func matchesAny(relPath string, patterns []string) bool {
	base := path.Base(relPath)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
		if !strings.Contains(p, "/") {
			if ok, _ := doublestar.Match(p, base); ok {
				return true
			}
		}
	}
	return false
}

// readIgnoreFile returns the globs of an IgnoreFile, skipping blanks and
// # comments. "drafts/" is read as "drafts/**". A missing file yields nil.
func readIgnoreFile(name string) ([]string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "/")
		if strings.HasSuffix(line, "/") {
			line += "**"
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}
