package edit

import (
	"github.com/dshills/critic/internal/engine/buffer"
	"github.com/dshills/critic/internal/engine/cursor"
	"github.com/dshills/critic/internal/markup"
)

// ChangeType turns the selected content into a span of kind, or into plain
// text for markup.None. A caret inside a span's content selects the whole
// span. Spans of the same kind cut by the selection are merged with the new
// one; other spans keep the part outside the selection.
func (c Context) ChangeType(sel cursor.Selection, kind markup.Kind) Result {
	a, b := c.clamp(sel.Start()), c.clamp(sel.End())
	var whole *markup.Range
	if a == b {
		r := c.enclosing(a)
		if r == nil {
			return c.noop(sel)
		}
		if _, ok := r.InContent(a); !ok {
			return c.noop(sel)
		}
		whole = r
		a, b = r.From, r.To
	}

	rg := c.region(a, b)
	cov := rg.covered(a, b)
	if len(cov) == 0 {
		return c.noop(sel)
	}

	var target *group
	if kind != markup.None {
		for _, r := range rg.ranges {
			if r.Kind == kind && (r.From < a || r.To > b) {
				target = rg.groups[r]
				break
			}
		}
		if target == nil {
			target = c.newGroup(kind)
			target.fixed = true
			if whole != nil {
				target.orig = whole
				target.fields = whole.Fields()
			}
		}
		for _, r := range rg.ranges {
			g := rg.groups[r]
			if g == target || r.Kind != kind || (r.From >= a && r.To <= b) {
				continue
			}
			for _, p := range rg.pieces {
				if p.group == g {
					p.group = target
				}
			}
		}
	}

	cl := classOf(kind)
	for _, p := range cov {
		p.class, p.group = cl, target
	}

	first, last := -1, -1
	for i, p := range rg.pieces {
		for _, q := range cov {
			if p == q {
				if first < 0 {
					first = i
				}
				last = i
			}
		}
	}
	head := rg.mark(last+1, target, cl)
	anchor := rg.mark(first, target, cl)
	if sel.IsBackward() {
		anchor, head = head, anchor
	}
	return c.finish(rg, anchor, head)
}

// classOf returns the class content takes in a span of kind. The content of
// a new Substitution is its deleted part.
func classOf(kind markup.Kind) class {
	switch kind {
	case markup.None:
		return plain
	case markup.Addition:
		return added
	case markup.Deletion, markup.Substitution:
		return deleted
	}
	return kept
}

// Split divides the span around the cursor into two spans of the same kind
// and places the cursor between them.
func (c Context) Split(sel cursor.Selection) Result {
	pos := c.clamp(sel.Head)
	r := c.enclosing(pos)
	if r == nil {
		return c.noop(sel)
	}
	sp, ok := r.SplitRange(pos)
	if !ok {
		return c.noop(sel)
	}
	return Result{
		Edits:     []buffer.Edit{buffer.NewInsert(pos, sp.Text())},
		Selection: cursor.Caret(pos + len(sp.Left)),
		Delta:     len(sp.Text()),
		region:    buffer.NewRange(pos, pos),
	}
}
