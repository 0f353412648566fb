package edit

import (
	"github.com/dshills/critic/internal/engine/buffer"
	"github.com/dshills/critic/internal/engine/cursor"
	"github.com/dshills/critic/internal/engine/policy"
	"github.com/dshills/critic/internal/engine/ranges"
	"github.com/dshills/critic/internal/engine/traverse"
	"github.com/dshills/critic/internal/markup"
)

// Context is the snapshot of a document an operator works on.
type Context struct {
	Text   string
	Ranges *ranges.Collection
	// Policy may be nil, in which case every kind uses the zero policy.
	Policy *policy.Table
	// Meta is the metadata given to spans created by an edit.
	Meta markup.Fields
}

// Result is the outcome of one operator.
type Result struct {
	// Edits are expressed in the coordinates of Context.Text, sorted and
	// non-overlapping.
	Edits     []buffer.Edit
	Selection cursor.Selection
	// Delta is the change in document length.
	Delta int

	region buffer.Range
}

// IsNoOp reports whether the result leaves the text unchanged.
func (r Result) IsNoOp() bool {
	return len(r.Edits) == 0
}

func (c Context) traversal() traverse.Context {
	return traverse.Context{Text: c.Text, Ranges: c.Ranges, Policy: c.Policy}
}

func (c Context) policy(k markup.Kind) policy.Span {
	return c.Policy.For(k)
}

func (c Context) merge() policy.Merge {
	if c.Policy == nil {
		return policy.Merge{}
	}
	return c.Policy.Merge
}

func (c Context) clamp(pos int) int {
	return max(0, min(pos, len(c.Text)))
}

func (c Context) enclosing(pos int) *markup.Range {
	if c.Ranges == nil {
		return nil
	}
	if rs := c.Ranges.Overlapping(pos, pos); len(rs) > 0 {
		return rs[0]
	}
	return nil
}

// snap moves a position out of a bracket, metadata block, separator or
// hidden span so that text can be inserted there.
func (c Context) snap(pos int) int {
	pos = c.clamp(pos)
	r := c.enclosing(pos)
	if r == nil {
		return pos
	}
	if c.policy(r.Kind).Movement == policy.SkipEntire {
		return r.To
	}
	switch {
	case !r.InToken(pos):
		return pos
	case pos < r.ContentFrom():
		return r.ContentFrom()
	case pos < r.ContentTo():
		return r.Middle + markup.SeparatorWidth
	}
	return r.To
}

func (c Context) region(a, b int) *region {
	var rs []*markup.Range
	if c.Ranges != nil {
		rs = c.Ranges.RangesInInterval(a, b)
	}
	return newRegion(c.Text, rs, a, b)
}

// finish serializes the region and builds the result. anchor and head are
// markers; head may be nil for a caret.
func (c Context) finish(rg *region, anchor, head *piece) Result {
	repl, marks := rg.serialize()
	if head == nil {
		head = anchor
	}
	sel := cursor.NewSelection(rg.from+marks[anchor], rg.from+marks[head])
	res := Result{
		Selection: sel,
		Delta:     len(repl) - (rg.to - rg.from),
		region:    buffer.NewRange(rg.from, rg.to),
	}
	if e, ok := trimmedEdit(c.Text, rg.from, rg.to, repl); ok {
		res.Edits = []buffer.Edit{e}
	}
	return res
}

func (c Context) noop(sel cursor.Selection) Result {
	return Result{Selection: sel, region: sel.Range()}
}

func (c Context) newGroup(kind markup.Kind) *group {
	return &group{kind: kind, fields: c.Meta}
}

// absorb decides whether new content joins g and updates g's metadata when
// the merge policy asks for it.
func (c Context) absorb(g *group) policy.Action {
	act := c.merge().Resolve(g.fields, c.Meta)
	if act == policy.Rewrite {
		g.fields = mergeFields(c.merge(), g.fields, c.Meta)
		g.rewrite = true
	}
	return act
}

// mergeFields returns the metadata of a span after absorbing an edit: fields
// whose policy prefers the new value take the edit's.
func mergeFields(m policy.Merge, old, incoming markup.Fields) markup.Fields {
	out := old
	if m.Author == policy.PreferNew && incoming.Author != "" {
		out.Author = incoming.Author
	}
	if m.Time == policy.PreferNew && incoming.Time != 0 {
		out.Time = incoming.Time
	}
	if m.Label == policy.PreferNew && incoming.Label != "" {
		out.Label = incoming.Label
	}
	return out
}
