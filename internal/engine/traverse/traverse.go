package traverse

import (
	"github.com/dshills/critic/internal/engine/policy"
	"github.com/dshills/critic/internal/engine/ranges"
	"github.com/dshills/critic/internal/markup"
)

// Context is the snapshot of a document a traversal runs against.
type Context struct {
	Text   string
	Ranges *ranges.Collection
	// Policy may be nil, in which case every kind uses the zero policy.
	Policy *policy.Table
}

func (c Context) policy(r *markup.Range) policy.Span {
	return c.Policy.For(r.Kind)
}

func (c Context) movement(r *markup.Range) policy.Movement {
	return c.policy(r).Movement
}

// enclosing returns the range strictly containing pos.
func (c Context) enclosing(pos int) *markup.Range {
	if c.Ranges == nil {
		return nil
	}
	if rs := c.Ranges.Overlapping(pos, pos); len(rs) > 0 {
		return rs[0]
	}
	return nil
}

func (c Context) startingAt(pos int) *markup.Range {
	if c.Ranges == nil {
		return nil
	}
	if r := c.Ranges.Next(pos); r != nil && r.From == pos {
		return r
	}
	return nil
}

func (c Context) endingAt(pos int) *markup.Range {
	if c.Ranges == nil {
		return nil
	}
	if r := c.Ranges.Prev(pos); r != nil && r.To == pos {
		return r
	}
	return nil
}

type unitKind uint8

const (
	unitNone unitKind = iota
	unitChar
	unitToken
	unitRange
)

// unit is the smallest thing the cursor crosses in one direction.
type unit struct {
	kind unitKind
	to   int
	// r owns the token, or is the range crossed as a whole.
	r *markup.Range
}

func (c Context) unit(pos int, backward bool) unit {
	if backward {
		return c.unitBackward(pos)
	}
	return c.unitForward(pos)
}

func (c Context) unitForward(pos int) unit {
	if pos >= len(c.Text) {
		return unit{}
	}
	if r := c.enclosing(pos); r != nil && c.movement(r) != policy.Unchanged {
		if c.movement(r) == policy.SkipEntire {
			return unit{unitRange, r.To, r}
		}
		switch {
		case pos < r.ContentFrom():
			return unit{unitToken, r.ContentFrom(), r}
		case r.Kind == markup.Substitution && r.Middle <= pos && pos < r.Middle+markup.SeparatorWidth:
			return unit{unitToken, r.Middle + markup.SeparatorWidth, r}
		case pos >= r.ContentTo():
			return unit{unitToken, r.To, r}
		}
		limit := r.ContentTo()
		if r.Kind == markup.Substitution && pos < r.Middle {
			limit = r.Middle
		}
		return unit{unitChar, nextGrapheme(c.Text, pos, limit), r}
	}
	if n := c.startingAt(pos); n != nil && c.movement(n) != policy.Unchanged {
		if c.movement(n) == policy.SkipEntire {
			return unit{unitRange, n.To, n}
		}
		return unit{unitToken, n.ContentFrom(), n}
	}
	limit := len(c.Text)
	if c.Ranges != nil {
		if n := c.Ranges.Next(pos + 1); n != nil {
			limit = n.From
		}
	}
	return unit{kind: unitChar, to: nextGrapheme(c.Text, pos, limit)}
}

func (c Context) unitBackward(pos int) unit {
	if pos <= 0 {
		return unit{}
	}
	if r := c.enclosing(pos); r != nil && c.movement(r) != policy.Unchanged {
		if c.movement(r) == policy.SkipEntire {
			return unit{unitRange, r.From, r}
		}
		switch {
		case pos > r.ContentTo():
			return unit{unitToken, r.ContentTo(), r}
		case r.Kind == markup.Substitution && r.Middle < pos && pos <= r.Middle+markup.SeparatorWidth:
			return unit{unitToken, r.Middle, r}
		case pos <= r.ContentFrom():
			return unit{unitToken, r.From, r}
		}
		limit := r.ContentFrom()
		if r.Kind == markup.Substitution && pos > r.Middle {
			limit = r.Middle + markup.SeparatorWidth
		}
		return unit{unitChar, prevGrapheme(c.Text, pos, limit), r}
	}
	if p := c.endingAt(pos); p != nil && c.movement(p) != policy.Unchanged {
		if c.movement(p) == policy.SkipEntire {
			return unit{unitRange, p.From, p}
		}
		return unit{unitToken, p.ContentTo(), p}
	}
	limit := 0
	if c.Ranges != nil {
		if p := c.Ranges.Prev(pos); p != nil {
			if p.To < pos {
				limit = p.To
			} else {
				limit = p.From
			}
		}
	}
	return unit{kind: unitChar, to: prevGrapheme(c.Text, pos, limit)}
}

// Valid reports whether the cursor may rest at pos.
func (c Context) Valid(pos int) bool {
	if pos < 0 || pos > len(c.Text) {
		return false
	}
	r := c.enclosing(pos)
	if r == nil {
		return true
	}
	switch c.movement(r) {
	case policy.Unchanged:
		return true
	case policy.SkipEntire:
		return false
	}
	if r.IsEmpty() || r.InToken(pos) {
		return false
	}
	side, ok := r.InContent(pos)
	return ok && !r.PartIsEmpty(side)
}

// Correct returns pos if it is a valid rest position and otherwise the
// nearest valid position in the given direction. The result is clamped to
// the document.
func (c Context) Correct(pos int, backward bool) int {
	pos = max(0, min(pos, len(c.Text)))
	for !c.Valid(pos) {
		u := c.unit(pos, backward)
		if u.kind == unitNone || u.kind == unitChar {
			break
		}
		pos = u.to
	}
	return pos
}

// Step moves pos by one unit. An invalid pos is only corrected.
func (c Context) Step(pos int, backward bool) int {
	pos = max(0, min(pos, len(c.Text)))
	if !c.Valid(pos) {
		return c.Correct(pos, backward)
	}
	for {
		u := c.unit(pos, backward)
		switch u.kind {
		case unitNone:
			return pos
		case unitChar:
			return c.stayInside(u.to, backward)
		}
		if u.r.IsEmpty() {
			// Empty spans are crossed without cost.
			pos = c.farEdge(u.r, backward)
			continue
		}
		pos = u.to
		if u.kind == unitRange {
			return c.chainSkip(u.r, backward)
		}
		for !c.Valid(pos) {
			next := c.unit(pos, backward)
			if next.kind != unitToken {
				break
			}
			pos = next.to
		}
		return pos
	}
}

func (c Context) farEdge(r *markup.Range, backward bool) int {
	if backward {
		return r.From
	}
	return r.To
}

// stayInside moves a position that landed on the outer edge of a span with
// policy.StayInside to the span's nearest content position.
func (c Context) stayInside(pos int, backward bool) int {
	r := c.startingAt(pos)
	if backward {
		r = c.endingAt(pos)
	}
	if r == nil || r.IsEmpty() {
		return pos
	}
	p := c.policy(r)
	if p.Movement != policy.SkipMetadata || p.Bracket != policy.StayInside {
		return pos
	}
	if backward {
		return lastRest(r)
	}
	return firstRest(r)
}

// firstRest returns the first content position of a non-empty range.
func firstRest(r *markup.Range) int {
	if r.Kind == markup.Substitution && r.PartIsEmpty(markup.Left) {
		return r.Middle + markup.SeparatorWidth
	}
	return r.ContentFrom()
}

// lastRest returns the last content position of a non-empty range.
func lastRest(r *markup.Range) int {
	if r.Kind == markup.Substitution && r.PartIsEmpty(markup.Right) {
		return r.Middle
	}
	return r.ContentTo()
}

// chainSkip continues a whole-span skip across directly adjacent skipped
// spans as long as the characters on both sides of the shared edge belong
// to the same category.
func (c Context) chainSkip(r *markup.Range, backward bool) int {
	for {
		var n *markup.Range
		if backward {
			n = c.endingAt(r.From)
		} else {
			n = c.startingAt(r.To)
		}
		if n == nil || c.movement(n) != policy.SkipEntire {
			break
		}
		if !n.IsEmpty() {
			a, okA := c.edgeCategory(r, !backward)
			b, okB := c.edgeCategory(n, backward)
			if !okA || !okB || a != b {
				break
			}
		}
		r = n
	}
	return c.farEdge(r, backward)
}

// edgeCategory returns the category of the first or last visible content
// character of r.
func (c Context) edgeCategory(r *markup.Range, last bool) (Category, bool) {
	parts := []markup.Side{markup.Whole}
	if r.Kind == markup.Substitution {
		parts = []markup.Side{markup.Left, markup.Right}
		if last {
			parts = []markup.Side{markup.Right, markup.Left}
		}
	}
	for _, side := range parts {
		from, to := r.Part(side)
		if from >= to || to > len(c.Text) {
			continue
		}
		if last {
			return categoryOfCluster(c.Text[prevGrapheme(c.Text, to, from):to]), true
		}
		return categoryOfCluster(c.Text[from:nextGrapheme(c.Text, from, to)]), true
	}
	return Space, false
}
