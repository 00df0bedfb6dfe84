package internal

// MatchBudget is the single counter shared across every file and root of a
// run. The orchestrator owns it; the line scanner increments it once per
// emitted line. Once the cap is hit nothing else is scanned anywhere.
// Never package-level state: independent runs must not interfere.
type MatchBudget struct {
	limit   int
	emitted int
}

// NewMatchBudget returns a budget capped at limit emitted lines. A negative
// limit disables the cap.
func NewMatchBudget(limit int) *MatchBudget {
	return &MatchBudget{limit: limit}
}

// Note records one emitted line and reports whether the cap is now reached.
func (b *MatchBudget) Note() bool {
	b.emitted++
	return b.Exhausted()
}

// Exhausted reports whether the cap has been reached.
func (b *MatchBudget) Exhausted() bool {
	return b.limit >= 0 && b.emitted >= b.limit
}

// Emitted returns the number of lines emitted so far.
func (b *MatchBudget) Emitted() int { return b.emitted }
