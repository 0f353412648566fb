package cursor

import "github.com/dshills/critic/internal/engine/buffer"

// Change is an alias for buffer.Change for convenience.
type Change = buffer.Change

// TransformOffset maps an offset through one batch of changes, given in
// ascending order in old coordinates.
//
// Transformation rules:
//   - Changes entirely before offset shift it by their delta
//   - An offset strictly inside a replaced range moves to the end of the
//     new text
//   - An insertion exactly at offset pushes it right unless sticky is set
func TransformOffset(offset ByteOffset, changes []Change, sticky bool) ByteOffset {
	delta := 0
	for _, c := range changes {
		switch {
		case c.Old.End < offset:
			delta += c.Delta()
		case c.Old.Start < offset:
			return c.New.End
		case c.Old.Start == offset && c.Old.End == offset:
			if !sticky {
				delta += c.Delta()
			}
			return offset + delta
		default:
			return offset + delta
		}
	}
	return offset + delta
}

// TransformSelection maps a selection through a batch of changes. The anchor
// sticks to its position on insertions; the head moves with them.
func TransformSelection(sel Selection, changes []Change) Selection {
	return Selection{
		Anchor: TransformOffset(sel.Anchor, changes, !sel.IsEmpty()),
		Head:   TransformOffset(sel.Head, changes, false),
	}
}

// TransformChanges maps every selection of the set through a batch of
// changes.
func (s *Set) TransformChanges(changes []Change) {
	for i, sel := range s.selections {
		s.selections[i] = TransformSelection(sel, changes)
	}
	s.sort()
}

// ChangesFromEdits derives the batch changes of edits that were already
// shifted into sequential application order, each expressed against the text
// produced by the previous one.
func ChangesFromEdits(edits []buffer.Edit) []Change {
	changes := make([]Change, 0, len(edits))
	shift := 0
	for _, e := range edits {
		start := e.Range.Start - shift
		changes = append(changes, Change{
			Old: buffer.NewRange(start, start+e.Range.Len()),
			New: buffer.NewRange(e.Range.Start, e.Range.Start+len(e.NewText)),
		})
		shift += e.Delta()
	}
	return changes
}
