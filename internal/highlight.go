package internal

import (
	"strings"

	"github.com/fatih/color"
)

// matchColor wraps matched spans. Color is forced on so rendering does not
// depend on whether stdout is a terminal; the --no-color flag is the only
// switch.
var matchColor = color.New(color.FgRed)

func init() {
	matchColor.EnableColor()
}

// Highlight returns line with every matched span wrapped in emphasis
// markers. Unmatched spans are copied verbatim, so stripping the markers
// yields the original line exactly.
func Highlight(line string, m *Matcher) string {
	spans := m.FindAll(line)
	if len(spans) == 0 {
		return line
	}
	var sb strings.Builder
	sb.Grow(len(line) + 16)
	last := 0
	for _, sp := range spans {
		sb.WriteString(line[last:sp[0]])
		sb.WriteString(matchColor.Sprint(line[sp[0]:sp[1]]))
		last = sp[1]
	}
	sb.WriteString(line[last:])
	return sb.String()
}
