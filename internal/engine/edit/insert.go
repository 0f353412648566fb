package edit

import (
	"github.com/dshills/critic/internal/engine/cursor"
	"github.com/dshills/critic/internal/engine/policy"
	"github.com/dshills/critic/internal/markup"
)

// Insert inserts s at the cursor. A non-empty selection is replaced.
//
// Text typed inside an Addition, or inside the inserted part of a
// Substitution, extends it. Typed at the end of a Deletion it turns the
// Deletion into a Substitution; anywhere else in deleted text it splits the
// span around a new Addition. Inside a Highlight or Comment the span's edit
// policy applies. Next to a span the merge policy decides whether the text
// joins it; otherwise a new Addition carrying the context metadata is
// created.
func (c Context) Insert(sel cursor.Selection, s string) Result {
	if !sel.IsEmpty() {
		return c.Replace(sel, s)
	}
	if s == "" {
		return c.noop(sel)
	}
	pos := c.snap(sel.Head)
	rg := c.region(pos, pos)
	m, ok := c.insertAt(rg, rg.cut(pos), pos, s)
	if !ok {
		return c.noop(sel)
	}
	return c.finish(rg, m, nil)
}

// insertAt inserts s before piece i, which starts at old offset pos, and
// returns the marker placed after it. It returns false when the edit policy
// drops the text.
func (c Context) insertAt(rg *region, i, pos int, s string) (*piece, bool) {
	np := &piece{text: s, class: added, from: -1}

	if r, side := rg.within(pos); r != nil {
		g := rg.groups[r]
		switch r.Kind {
		case markup.Addition:
			return c.join(rg, i, np, g), true
		case markup.Substitution:
			if pos == r.Middle {
				i = rg.cut(r.Middle + markup.SeparatorWidth)
				return c.join(rg, i, np, g), true
			}
			if side == markup.Right {
				return c.join(rg, i, np, g), true
			}
			return c.place(rg, i, np, c.newGroup(markup.Addition)), true
		case markup.Deletion:
			if pos == r.ContentTo() {
				return c.join(rg, i, np, g), true
			}
			return c.place(rg, i, np, c.newGroup(markup.Addition)), true
		default:
			switch c.policy(r.Kind).Edit {
			case policy.EditDrop:
				return nil, false
			case policy.EditRaw:
				np.class = kept
				return c.place(rg, i, np, g), true
			}
			return c.place(rg, i, np, c.newGroup(markup.Addition)), true
		}
	}

	// Outside of any content: try the span ending here, then the Addition
	// starting here.
	for _, r := range rg.ranges {
		if r.To != pos {
			continue
		}
		switch r.Kind {
		case markup.Addition, markup.Deletion, markup.Substitution:
			if m, ok := c.tryJoin(rg, i, np, rg.groups[r]); ok {
				return m, true
			}
		}
	}
	for _, r := range rg.ranges {
		if r.From == pos && r.Kind == markup.Addition {
			if m, ok := c.tryJoin(rg, i, np, rg.groups[r]); ok {
				return m, true
			}
		}
	}
	return c.place(rg, i, np, c.newGroup(markup.Addition)), true
}

// join adds np to g at i when the merge policy allows it. Otherwise np
// becomes a span of its own, splitting g or placed past it.
func (c Context) join(rg *region, i int, np *piece, g *group) *piece {
	switch act := c.absorb(g); {
	case act.Merges():
		return c.place(rg, i, np, g)
	case act == policy.Outside:
		if end := rg.lastOf(g); end > i {
			i = end
		}
	}
	return c.place(rg, i, np, c.newGroup(markup.Addition))
}

// tryJoin is join for spans np only touches: it never splits.
func (c Context) tryJoin(rg *region, i int, np *piece, g *group) (*piece, bool) {
	if !c.absorb(g).Merges() {
		return nil, false
	}
	return c.place(rg, i, np, g), true
}

// place inserts np into g at i followed by a marker.
func (c Context) place(rg *region, i int, np *piece, g *group) *piece {
	np.group = g
	rg.insertAt(i, np)
	return rg.mark(i+1, g, np.class)
}
