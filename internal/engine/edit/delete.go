package edit

import (
	"github.com/dshills/critic/internal/engine/cursor"
	"github.com/dshills/critic/internal/engine/policy"
	"github.com/dshills/critic/internal/markup"
)

// Delete deletes the selection, or for an empty selection the unit (or word
// group) next to the cursor as found by traversal. Brackets alone never
// make up the deleted extent.
//
// Plain text becomes deleted text, joining an adjacent compatible Deletion.
// Added text is removed. Deleted text stays: deleting it only moves the
// cursor. An empty span next to the cursor is removed first.
func (c Context) Delete(sel cursor.Selection, backward, byGroup bool) Result {
	a, b := sel.Start(), sel.End()
	if sel.IsEmpty() {
		pos := c.snap(sel.Head)
		if r := c.emptyNeighbour(pos, backward); r != nil {
			rg := c.region(r.From, r.To)
			rg.drop(rg.groups[r])
			m := rg.mark(rg.cut(r.From), nil, plain)
			return c.finish(rg, m, nil)
		}
		end := c.extent(pos, backward, byGroup)
		if end == pos {
			return c.noop(sel)
		}
		a, b = min(pos, end), max(pos, end)
	}

	rg := c.region(a, b)
	c.markDeleted(rg, a, b)

	at := b
	if backward {
		at = a
	}
	var g *group
	if r, _ := rg.within(at); r != nil {
		g = rg.groups[r]
	}
	m := rg.mark(rg.cut(at), g, deleted)
	return c.finish(rg, m, nil)
}

// emptyNeighbour returns the empty span holding pos, or else the one
// directly next to pos in the given direction. Comments are never removed
// this way.
func (c Context) emptyNeighbour(pos int, backward bool) *markup.Range {
	if c.Ranges == nil {
		return nil
	}
	r := c.enclosing(pos)
	if r == nil {
		r = c.Ranges.RangeAdjacentToCursor(pos, backward, true, false)
	}
	if r == nil || !r.IsEmpty() || r.Kind == markup.Comment {
		return nil
	}
	return r
}

// extent steps from pos until the covered interval holds content.
func (c Context) extent(pos int, backward, byGroup bool) int {
	t := c.traversal()
	end := pos
	for {
		var next int
		if byGroup {
			next = t.Group(end, backward)
		} else {
			next = t.Step(end, backward)
		}
		if next == end {
			return end
		}
		end = next
		if c.hasContent(min(pos, end), max(pos, end)) {
			return end
		}
	}
}

func (c Context) hasContent(a, b int) bool {
	if c.Ranges == nil {
		return a < b
	}
	return c.Ranges.UnwrapInRange(c.Text, a, b).Text != ""
}

// markDeleted applies a deletion of [a, b) to the pieces and returns the
// pieces that became deleted text.
func (c Context) markDeleted(rg *region, a, b int) []*piece {
	var fresh *group
	var marked []*piece
	for _, p := range rg.covered(a, b) {
		switch p.class {
		case plain:
		case added:
			rg.remove(p)
			continue
		case deleted:
			continue
		case kept:
			switch c.policy(p.group.kind).Edit {
			case policy.EditRaw:
				rg.remove(p)
				continue
			case policy.EditDrop:
				continue
			}
		default:
			continue
		}
		if len(p.text) == 0 {
			continue
		}
		if fresh == nil {
			fresh = c.newGroup(markup.Deletion)
		}
		p.class, p.group = deleted, fresh
		marked = append(marked, p)
	}
	if fresh != nil {
		c.joinDeletions(rg, fresh)
	}
	return marked
}

// joinDeletions moves every run of fresh deleted pieces into an adjacent
// deleted span whose metadata is compatible.
func (c Context) joinDeletions(rg *region, fresh *group) {
	ps := rg.pieces
	for i := 0; i < len(ps); {
		if ps[i].group != fresh {
			i++
			continue
		}
		j := i
		for j < len(ps) && (ps[j].group == fresh || ps[j].class == marker) {
			j++
		}
		var target *group
		if k := rg.prevContent(i); k >= 0 && c.deletionNeighbour(ps[k]) {
			target = ps[k].group
		} else if k := rg.nextContent(j); k >= 0 && c.deletionNeighbour(ps[k]) {
			target = ps[k].group
		}
		if target != nil && c.absorb(target).Merges() {
			for k := i; k < j; k++ {
				if ps[k].group == fresh {
					ps[k].group = target
				}
			}
		}
		i = j
	}
}

func (c Context) deletionNeighbour(p *piece) bool {
	return p.class == deleted && p.group != nil &&
		(p.group.kind == markup.Deletion || p.group.kind == markup.Substitution)
}

// Replace deletes the selection and inserts s after the deleted text. Plain
// text replaced this way becomes a Substitution; replaced added text is
// simply rewritten.
func (c Context) Replace(sel cursor.Selection, s string) Result {
	if sel.IsEmpty() {
		return c.Insert(sel, s)
	}
	if s == "" {
		return c.Delete(sel, false, false)
	}
	a, b := c.snap(sel.Start()), c.snap(sel.End())
	if a == b {
		return c.Insert(cursor.Caret(a), s)
	}
	rg := c.region(a, b)
	marked := c.markDeleted(rg, a, b)

	i := rg.cut(b)
	if len(marked) > 0 {
		last := marked[len(marked)-1]
		if k := rg.prevContent(i); k >= 0 && rg.pieces[k] == last {
			np := &piece{text: s, class: added, from: -1}
			m := c.join(rg, i, np, last.group)
			return c.finish(rg, m, nil)
		}
	}
	m, ok := c.insertAt(rg, i, b, s)
	if !ok {
		m = rg.mark(i, nil, plain)
	}
	return c.finish(rg, m, nil)
}
