package internal

import (
	"bytes"
	"io"
	"os"
)

// sniffLen is how much of a file prefix is inspected for binary content.
const sniffLen = 1024

// IsBinaryFile reads up to sniffLen bytes from the start of path and
// reports whether the prefix contains a NUL byte. Cheap and approximate:
// non-NUL binary formats pass as text.
func IsBinaryFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, err
	}
	return hasNUL(buf[:n]), nil
}

func hasNUL(b []byte) bool {
	return bytes.IndexByte(b, 0) >= 0
}
