package runner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// matcher matches slash-separated relative paths against a set of glob
// patterns. A pattern without a slash also matches the base name, and a
// leading "**/" also matches at the root.
type matcher struct {
	globs []glob.Glob
}

func newMatcher(patterns []string) (*matcher, error) {
	m := &matcher{}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}

		variants := []string{pattern}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			variants = append(variants, rest)
		}
		if !strings.Contains(pattern, "/") {
			variants = append(variants, "**/"+pattern)
		}

		for _, v := range variants {
			g, err := glob.Compile(v, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
			}
			m.globs = append(m.globs, g)
		}
	}
	return m, nil
}

func (m *matcher) empty() bool {
	return m == nil || len(m.globs) == 0
}

// match reports whether relPath matches. Directories also match patterns
// written for their contents, such as "vendor/**".
func (m *matcher) match(relPath string, isDir bool) bool {
	if m.empty() {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	for _, g := range m.globs {
		if g.Match(relPath) || (isDir && g.Match(relPath+"/")) {
			return true
		}
	}
	return false
}
