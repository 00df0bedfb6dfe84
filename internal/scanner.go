package internal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// ScanFile streams path line by line and emits one output record per
// matching line. It returns whether the file contained at least one match.
// The budget is incremented once per emitted line; when the cap is reached
// the rest of the file is not read.
func ScanFile(path string, m *Matcher, opts SearchOptions, budget *MatchBudget, out io.Writer) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	return scanReader(f, path, m, opts, budget, out)
}

// scanReader is the core line loop, shared by regular files and archive
// entries. display is the path rendered in output records.
func scanReader(r io.Reader, display string, m *Matcher, opts SearchOptions, budget *MatchBudget, out io.Writer) (bool, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	lineNo := 0
	found := false

	for {
		raw, err := br.ReadBytes('\n')
		if len(raw) > 0 {
			lineNo++
			line := decodeLine(raw)
			if start, _, ok := m.Find(line); ok {
				found = true
				emitMatch(out, display, lineNo, column(line, start), line, m, opts)
				if budget.Note() {
					break
				}
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return found, err
		}
	}
	return found, nil
}

// decodeLine strips the trailing newline (and carriage return) and decodes
// the bytes permissively: invalid UTF-8 sequences become U+FFFD instead of
// failing the scan.
func decodeLine(raw []byte) string {
	s := string(raw)
	s = strings.TrimRight(s, "\r\n")
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}
	return s
}

// column converts a byte offset into a 1-based character column. Counting
// decoded characters keeps columns right on lines with multi-byte runes.
func column(line string, byteStart int) int {
	return utf8.RuneCountInString(line[:byteStart]) + 1
}

func emitMatch(out io.Writer, display string, lineNo, col int, line string, m *Matcher, opts SearchOptions) {
	rendered := line
	if opts.Color {
		rendered = Highlight(line, m)
	}
	if opts.LineNumber {
		fmt.Fprintf(out, "%s:%d:%d: %s\n", display, lineNo, col, rendered)
	} else {
		fmt.Fprintf(out, "%s:%d: %s\n", display, col, rendered)
	}
}
