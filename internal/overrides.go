package internal

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// GlobError reports an override glob that failed to parse. It is fatal to
// the whole run, like a bad pattern.
type GlobError struct {
	Glob string
	Err  error
}

func (e *GlobError) Error() string {
	return fmt.Sprintf("invalid glob %q: %v", e.Glob, e.Err)
}

func (e *GlobError) Unwrap() error { return e.Err }

type overrideGlob struct {
	pattern string
	negate  bool
}

// Overrides is an ordered list of include/exclude globs layered on top of
// the ignore-file filtering. Later globs win over earlier ones. When at
// least one include glob is present, a file must match one to be visited.
type Overrides struct {
	globs       []overrideGlob
	hasIncludes bool
}

// CompileOverrides validates the glob list up front. A "!" prefix marks an
// exclude glob.
func CompileOverrides(patterns []string) (*Overrides, error) {
	o := &Overrides{}
	for _, p := range patterns {
		g := overrideGlob{pattern: p}
		if strings.HasPrefix(p, "!") {
			g.negate = true
			g.pattern = p[1:]
		} else {
			o.hasIncludes = true
		}
		if !doublestar.ValidatePattern(g.pattern) {
			return nil, &GlobError{Glob: p, Err: doublestar.ErrBadPattern}
		}
		o.globs = append(o.globs, g)
	}
	return o, nil
}

// Empty reports whether no globs were supplied.
func (o *Overrides) Empty() bool { return len(o.globs) == 0 }

// Admit decides whether a file at rel (slash-separated, relative to the
// walk root) passes the override layer. Last matching glob wins.
func (o *Overrides) Admit(rel string) bool {
	if o.Empty() {
		return true
	}
	admitted := !o.hasIncludes
	for _, g := range o.globs {
		ok, err := doublestar.Match(g.pattern, rel)
		if err != nil || !ok {
			continue
		}
		admitted = !g.negate
	}
	return admitted
}
