package ranges

import (
	"strings"

	"github.com/dshills/critic/internal/markup"
)

// Unwrapped is the plain content of an interval.
type Unwrapped struct {
	Text string
	// Front and Back are the ranges only partly inside the interval at its
	// start and end; they are the same range when it contains the whole
	// interval.
	Front *markup.Range
	Back  *markup.Range
}

// UnwrapInRange returns the text of [a, b) with every bracket, metadata
// block and separator removed. Ranges cut by the interval contribute the
// part of their content that lies inside it.
func (c *Collection) UnwrapInRange(text string, a, b int) Unwrapped {
	a = max(a, 0)
	b = min(b, len(text))
	var out Unwrapped
	if a >= b {
		return out
	}

	var sb strings.Builder
	pos := a
	for _, r := range c.Overlapping(a, b) {
		if r.From < a {
			out.Front = r
		}
		if r.To > b {
			out.Back = r
		}
		if r.From > pos {
			sb.WriteString(text[pos:r.From])
		}
		for _, side := range contentSides(r) {
			from, to := r.Part(side)
			from, to = max(from, a), min(to, b)
			if from < to {
				sb.WriteString(text[from:to])
			}
		}
		pos = r.To
	}
	if pos < b {
		sb.WriteString(text[pos:b])
	}
	out.Text = sb.String()
	return out
}

func contentSides(r *markup.Range) []markup.Side {
	if r.Kind == markup.Substitution {
		return []markup.Side{markup.Left, markup.Right}
	}
	return []markup.Side{markup.Whole}
}
