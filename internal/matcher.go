package internal

import (
	"fmt"
	"regexp"
)

// Matcher is the compiled form of the user's search pattern. It is built
// once at startup and is read-only afterwards.
type Matcher struct {
	re   *regexp.Regexp
	expr string
}

// PatternError reports a pattern that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// NewMatcher compiles pattern with the given flags.
//
// wholeWord wraps the pattern as \b(?:P)\b so that each alternative of a
// multi-term pattern gets its own word-boundary anchoring. The wrap is
// textual: a pattern with unbalanced groups keeps whatever precedence the
// wrap produces.
func NewMatcher(pattern string, ignoreCase, wholeWord bool) (*Matcher, error) {
	expr := pattern
	if wholeWord {
		expr = `\b(?:` + expr + `)\b`
	}
	if ignoreCase {
		expr = `(?i)` + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return &Matcher{re: re, expr: expr}, nil
}

// Find returns the byte offsets of the first match in line.
func (m *Matcher) Find(line string) (start, end int, ok bool) {
	loc := m.re.FindStringIndex(line)
	if loc == nil {
		return 0, 0, false
	}
	return loc[0], loc[1], true
}

// FindAll returns the byte offsets of all non-overlapping matches in line,
// left to right. Scanning resumes right after each match's end.
func (m *Matcher) FindAll(line string) [][]int {
	return m.re.FindAllStringIndex(line, -1)
}

func (m *Matcher) String() string { return m.expr }
