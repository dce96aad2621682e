// Package files lists directories for the pickers and describes files for
// the viewers.
package files

import (
	"strings"

	"github.com/gobwas/glob"
)

// Filter is an allow-list of glob patterns matched against base names.
// An empty filter allows every file.
type Filter struct {
	patterns []string
	globs    []glob.Glob
}

// NewFilter compiles the patterns. Bare extensions like "md" are treated
// as "*.md".
func NewFilter(patterns []string) (Filter, error) {
	f := Filter{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.ContainsAny(p, "*?[{.") {
			p = "*." + p
		}
		g, err := glob.Compile(strings.ToLower(p))
		if err != nil {
			return Filter{}, err
		}
		f.patterns = append(f.patterns, p)
		f.globs = append(f.globs, g)
	}
	return f, nil
}

// MustFilter is NewFilter for patterns known to compile.
func MustFilter(patterns ...string) Filter {
	f, err := NewFilter(patterns)
	if err != nil {
		panic(err)
	}
	return f
}

// Allows reports whether a file name passes the filter.
func (f Filter) Allows(name string) bool {
	if len(f.globs) == 0 {
		return true
	}
	name = strings.ToLower(name)
	for _, g := range f.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Patterns returns the normalized patterns.
func (f Filter) Patterns() []string {
	return f.patterns
}
