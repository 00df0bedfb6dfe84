package internal

import (
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// errBudgetExhausted stops the walk once the match budget is spent. It
// never escapes Run. (sentinel error)
var errBudgetExhausted = errors.New("match budget exhausted")

// Searcher drives one search run: it classifies roots, enumerates
// candidate files through the traversal policy, scans them, and enforces
// the global match budget.
type Searcher struct {
	matcher   *Matcher
	spec      TraversalSpec
	opts      SearchOptions
	overrides *Overrides
	budget    *MatchBudget
	out       io.Writer
	stats     RunStats
}

// NewSearcher validates the glob overrides and assembles a run. A bad glob
// is fatal, reported as *GlobError before anything is scanned.
func NewSearcher(m *Matcher, spec TraversalSpec, opts SearchOptions, out io.Writer) (*Searcher, error) {
	ov, err := CompileOverrides(spec.Globs)
	if err != nil {
		return nil, err
	}
	return &Searcher{
		matcher:   m,
		spec:      spec,
		opts:      opts,
		overrides: ov,
		budget:    NewMatchBudget(opts.MaxCount),
		out:       out,
	}, nil
}

// Run searches the given roots in order and reports whether any file
// anywhere matched. Missing roots and unreadable files are logged and
// skipped; only setup errors are fatal, and those are caught in
// NewSearcher, so Run's error is reserved for traversal breakdowns.
func (s *Searcher) Run(roots []string) (bool, error) {
	s.stats.Start()
	foundAny := false

	for _, root := range roots {
		if s.budget.Exhausted() {
			break
		}
		st, err := os.Stat(root)
		if err != nil {
			logrus.Warnf("%s does not exist", root)
			s.stats.Errors++
			continue
		}

		if !st.IsDir() {
			foundAny = s.scanCandidate(root) || foundAny
			continue
		}
		if !s.spec.Recursive {
			logrus.Warnf("%s is a directory (use -r to search recursively)", root)
			continue
		}

		err = Walk(root, s.spec, s.overrides, func(path string) error {
			if s.scanCandidate(path) {
				foundAny = true
			}
			if s.budget.Exhausted() {
				return errBudgetExhausted
			}
			return nil
		})
		if err != nil && !errors.Is(err, errBudgetExhausted) {
			return foundAny, err
		}
	}

	logrus.Debugf("scanned=%d matched=%d binary-skipped=%d errors=%d in %s",
		s.stats.FilesScanned, s.stats.FilesMatched, s.stats.BinarySkipped, s.stats.Errors, s.stats.Elapsed())
	return foundAny, nil
}

// scanCandidate scans a single file, dispatching archives when enabled.
// I/O failures are confined to the file: logged, counted, treated as no
// match.
func (s *Searcher) scanCandidate(path string) bool {
	if s.opts.Archives && IsArchive(path) {
		found, err := ScanArchive(path, s.matcher, s.opts, s.budget, s.out)
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": path, "err": err}).Warn("cannot search archive")
			s.stats.Errors++
			return false
		}
		s.stats.FilesScanned++
		if found {
			s.stats.FilesMatched++
		}
		return found
	}

	if s.opts.SkipBinary {
		binary, err := IsBinaryFile(path)
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": path, "err": err}).Warn("cannot read file")
			s.stats.Errors++
			return false
		}
		if binary {
			s.stats.BinarySkipped++
			return false
		}
	}

	found, err := ScanFile(path, s.matcher, s.opts, s.budget, s.out)
	if err != nil {
		logrus.WithFields(logrus.Fields{"file": path, "err": err}).Warn("cannot scan file")
		s.stats.Errors++
		return found
	}
	s.stats.FilesScanned++
	if found {
		s.stats.FilesMatched++
	}
	return found
}

// Stats returns the counters accumulated by the last Run.
func (s *Searcher) Stats() RunStats { return s.stats }
