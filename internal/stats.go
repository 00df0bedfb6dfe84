package internal

import "time"

// RunStats counts what a run touched. Plain counters: the scan is
// single-threaded, only one scan mutates them at a time.
type RunStats struct {
	start         time.Time
	FilesScanned  int
	FilesMatched  int
	BinarySkipped int
	Errors        int
}

func (s *RunStats) Start() {
	s.start = time.Now()
}

func (s *RunStats) Elapsed() time.Duration {
	return time.Since(s.start)
}
