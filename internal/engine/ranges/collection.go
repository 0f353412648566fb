package ranges

import (
	"errors"

	"go.uber.org/zap"

	"github.com/dshills/critic/internal/engine/interval"
	"github.com/dshills/critic/internal/markup"
	"github.com/dshills/critic/internal/markup/parser"
)

// ErrInconsistent is returned by Apply when verification is enabled and the
// collection violates one of its invariants.
var ErrInconsistent = errors.New("range collection inconsistent")

var accessor = interval.Accessor[*markup.Range]{
	Bounds: func(r *markup.Range) (int, int) { return r.From, r.To },
	Shift:  func(r *markup.Range, delta int) { r.Shift(delta) },
}

// Collection is the ordered set of ranges of one document.
type Collection struct {
	index *interval.Tree[*markup.Range]

	// errors holds the offsets of unterminated opening brackets, ascending.
	errors []int
	length int

	parser Parser
	verify bool
	logger *zap.Logger
}

// New creates an empty collection.
func New(opts ...Option) *Collection {
	c := &Collection{
		index:  interval.New(accessor),
		parser: parser.Scanner{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Build replaces the content of the collection with a full parse of text.
func (c *Collection) Build(text string) {
	c.index.Clear()
	c.errors = c.errors[:0]
	c.length = len(text)

	var comments []*markup.Range
	for _, n := range c.parser.ParseRegion(text, 0, len(text)) {
		if n.Type == parser.NodeError {
			c.errors = append(c.errors, n.From)
			continue
		}
		r, ok := n.Range(text)
		if !ok {
			continue
		}
		c.index.Insert(r)
		if r.Kind == markup.Comment {
			comments = append(comments, r)
		}
	}
	c.relinkThreads(comments)
	c.logger.Debug("ranges built",
		zap.Int("ranges", c.index.Len()),
		zap.Int("errors", len(c.errors)))
}

// Len returns the number of ranges.
func (c *Collection) Len() int {
	return c.index.Len()
}

// Ranges returns all ranges sorted by start. The ranges are shared.
func (c *Collection) Ranges() []*markup.Range {
	return c.index.Items()
}

// Errors returns the offsets of opening brackets that have no matching
// close.
func (c *Collection) Errors() []int {
	out := make([]int, len(c.errors))
	copy(out, c.errors)
	return out
}

// At returns the i-th range in document order, or nil.
func (c *Collection) At(i int) *markup.Range {
	r, ok := c.index.Select(i)
	if !ok {
		return nil
	}
	return r
}

// IndexOf returns the position of r in document order, or -1.
func (c *Collection) IndexOf(r *markup.Range) int {
	i := c.index.Rank(r.From)
	if c.At(i) == r {
		return i
	}
	return -1
}

func (c *Collection) search(a, b int, inclusive bool) []*markup.Range {
	var out []*markup.Range
	c.index.Search(a, b, inclusive, func(r *markup.Range) bool {
		out = append(out, r)
		return true
	})
	return out
}

// RangesInInterval returns the ranges intersecting [a, b], including ranges
// that only touch a or b with an endpoint.
func (c *Collection) RangesInInterval(a, b int) []*markup.Range {
	return c.search(a, b, true)
}

// Overlapping returns the ranges sharing at least one position with the
// open interval (a, b). For a == b it returns the range strictly containing
// a, if any.
func (c *Collection) Overlapping(a, b int) []*markup.Range {
	return c.search(a, b, false)
}

// AtCursor returns the range at pos. A range strictly containing pos wins.
// When two ranges meet at pos, preferRight selects the one starting there
// and otherwise the one ending there is returned; preferLeft only matters
// for the fallback when the preferred side has no range. The result is nil
// when no range touches pos.
func (c *Collection) AtCursor(pos int, preferLeft, preferRight bool) *markup.Range {
	var left, right *markup.Range
	for _, r := range c.RangesInInterval(pos, pos) {
		switch {
		case r.Encloses(pos):
			return r
		case r.To == pos:
			left = r
		case r.From == pos:
			right = r
		}
	}
	if preferRight && !preferLeft {
		if right != nil {
			return right
		}
		return left
	}
	if left != nil {
		return left
	}
	return right
}

// RangeAdjacentToCursor returns the range the cursor at pos meets when
// moving in the given direction. A range ending (backwards) or starting
// (forwards) exactly at pos always qualifies. Unless strict is set, a range
// strictly containing pos qualifies next, and with includeTouching a range
// touching pos from the opposite side is the last resort.
func (c *Collection) RangeAdjacentToCursor(pos int, backwards, strict, includeTouching bool) *markup.Range {
	var touching, enclosing, opposite *markup.Range
	for _, r := range c.RangesInInterval(pos, pos) {
		switch {
		case r.Encloses(pos):
			enclosing = r
		case backwards && r.To == pos, !backwards && r.From == pos:
			touching = r
		default:
			opposite = r
		}
	}
	if touching != nil {
		return touching
	}
	if strict {
		return nil
	}
	if enclosing != nil {
		return enclosing
	}
	if includeTouching {
		return opposite
	}
	return nil
}

// AdjacentRange returns the range before (backwards) or after r in document
// order, whatever the gap between them. With skipEmpty set, ranges without
// content are passed over.
func (c *Collection) AdjacentRange(r *markup.Range, backwards, skipEmpty bool) *markup.Range {
	i := c.IndexOf(r)
	if i < 0 {
		return nil
	}
	step := 1
	if backwards {
		step = -1
	}
	for j := i + step; ; j += step {
		o := c.At(j)
		if o == nil || !skipEmpty || !o.IsEmpty() {
			return o
		}
	}
}

// Next returns the first range starting at or after pos.
func (c *Collection) Next(pos int) *markup.Range {
	r, ok := c.index.AtOrAfter(pos)
	if !ok {
		return nil
	}
	return r
}

// Prev returns the last range starting before pos.
func (c *Collection) Prev(pos int) *markup.Range {
	r, ok := c.index.Before(pos)
	if !ok {
		return nil
	}
	return r
}
