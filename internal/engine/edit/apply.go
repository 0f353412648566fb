package edit

import (
	"cmp"
	"slices"

	"github.com/dshills/critic/internal/engine/buffer"
	"github.com/dshills/critic/internal/engine/cursor"
	"github.com/dshills/critic/internal/engine/ranges"
	"github.com/dshills/critic/internal/engine/tracking"
	"github.com/dshills/critic/internal/engine/traverse"
)

// Op is an operator applied to a single selection.
type Op func(c Context, sel cursor.Selection) Result

// Batch is the combined outcome of an operator applied to several
// selections.
type Batch struct {
	// Edits are in the coordinates of Context.Text.
	Edits []buffer.Edit
	// Selections are in the coordinates of the edited text.
	Selections []cursor.Selection
	Delta      int
}

// IsNoOp reports whether the batch leaves the text unchanged.
func (b Batch) IsNoOp() bool {
	return len(b.Edits) == 0
}

// ApplyAll runs op for every selection and combines the results. Identical
// selections collapse into one. When the rewritten regions of two
// selections overlap, the selections are applied one after the other, each
// against the text left by the previous ones.
func (c Context) ApplyAll(sels []cursor.Selection, op Op) Batch {
	sorted := slices.Clone(sels)
	slices.SortStableFunc(sorted, func(a, b cursor.Selection) int {
		return cmp.Or(cmp.Compare(a.Start(), b.Start()), cmp.Compare(a.End(), b.End()), cmp.Compare(a.Head, b.Head))
	})
	sorted = slices.Compact(sorted)

	var out Batch
	var prev buffer.Range
	for i, sel := range sorted {
		res := op(c, sel)
		if i > 0 && (res.region.Start < prev.End || res.region == prev) {
			return c.applyInSequence(sorted, op)
		}
		prev = res.region
		out.Edits = append(out.Edits, res.Edits...)
		out.Selections = append(out.Selections, res.Selection.MoveBy(out.Delta))
		out.Delta += res.Delta
	}
	return out
}

// applyInSequence runs op for each selection against a scratch copy of the
// document that already holds the edits of the selections before it. The
// result is a single edit spanning every change.
func (c Context) applyInSequence(sels []cursor.Selection, op Op) Batch {
	cur := c
	cur.Ranges = ranges.New()
	cur.Ranges.Build(c.Text)

	pending := append([]cursor.Selection(nil), sels...)
	var done []cursor.Selection
	for len(pending) > 0 {
		sel := pending[0]
		pending = pending[1:]
		res := op(cur, sel)
		text, changes, err := buffer.Apply(cur.Text, res.Edits)
		if err != nil {
			done = append(done, sel)
			continue
		}
		for i := range pending {
			pending[i] = cursor.TransformSelection(pending[i], changes)
		}
		for i := range done {
			done[i] = cursor.TransformSelection(done[i], changes)
		}
		done = append(done, res.Selection)
		if len(changes) > 0 {
			// The scratch collection does not verify, and rebuilds itself
			// when the spans do not describe text.
			_ = cur.Ranges.Apply(text, tracking.FromChanges(changes))
			cur.Text = text
		}
	}

	out := Batch{Selections: done, Delta: len(cur.Text) - len(c.Text)}
	if e, ok := trimmedEdit(c.Text, 0, len(c.Text), cur.Text); ok {
		out.Edits = []buffer.Edit{e}
	}
	return out
}

// Move moves a selection the way traverse.Context.Move does.
func (c Context) Move(req traverse.Request) cursor.Selection {
	return c.traversal().Move(req)
}

// Inserter returns an Op inserting s.
func Inserter(s string) Op {
	return func(c Context, sel cursor.Selection) Result { return c.Insert(sel, s) }
}

// Deleter returns an Op deleting in the given direction.
func Deleter(backward, byGroup bool) Op {
	return func(c Context, sel cursor.Selection) Result { return c.Delete(sel, backward, byGroup) }
}
