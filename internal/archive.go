package internal

import (
	"bufio"
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
	"github.com/sirupsen/logrus"
)

const maxArchiveEntries = 10000 // zip-bomb protection

var errArchiveEntryLimit = errors.New("archive entry limit reached")

// archiveExt by extension. O(1) map lookup
var archiveExt = map[string]struct{}{
	".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {}, ".xz": {},
	".rar": {}, ".br": {}, ".lz4": {}, ".lz": {}, ".mz": {},
	".sz": {}, ".s2": {}, ".zz": {}, ".zst": {}, ".7z": {},
}

// IsArchive reports whether path looks like a supported archive.
func IsArchive(path string) bool {
	_, ok := archiveExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ScanArchive searches every regular entry of the archive at path with the
// same matcher, sniffing, and budget rules as regular files. Entries are
// scanned one at a time on the calling goroutine; output records render the
// entry as "outer.zip!inner/path".
func ScanArchive(path string, m *Matcher, opts SearchOptions, budget *MatchBudget, out io.Writer) (bool, error) {
	fsys, err := archives.FileSystem(context.Background(), path, nil)
	if err != nil {
		return false, err
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer closer.Close()
	}

	found := false
	count := 0
	err = iofs.WalkDir(fsys, ".", func(inner string, d iofs.DirEntry, err error) error {
		if err != nil {
			logrus.WithFields(logrus.Fields{"archive": path, "entry": inner, "err": err}).Warn("cannot read archive entry")
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if count >= maxArchiveEntries {
			logrus.Warnf("%s skipped: too many entries (>= %d)", path, maxArchiveEntries)
			return errArchiveEntryLimit
		}
		count++

		matched, err := scanArchiveEntry(fsys, path, inner, m, opts, budget, out)
		if err != nil {
			logrus.WithFields(logrus.Fields{"archive": path, "entry": inner, "err": err}).Warn("cannot scan archive entry")
			return nil
		}
		found = found || matched
		if budget.Exhausted() {
			return errBudgetExhausted
		}
		return nil
	})
	if errors.Is(err, errArchiveEntryLimit) || errors.Is(err, errBudgetExhausted) {
		err = nil
	}
	return found, err
}

func scanArchiveEntry(fsys iofs.FS, archivePath, inner string, m *Matcher, opts SearchOptions, budget *MatchBudget, out io.Writer) (bool, error) {
	f, err := fsys.Open(inner)
	if err != nil {
		return false, err
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 64*1024)
	if opts.SkipBinary {
		prefix, err := br.Peek(sniffLen)
		if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
			return false, err
		}
		if hasNUL(prefix) {
			return false, nil
		}
	}
	return scanReader(br, archivePath+"!"+inner, m, opts, budget, out)
}
