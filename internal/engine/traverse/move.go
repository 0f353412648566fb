package traverse

import "github.com/dshills/critic/internal/engine/cursor"

// Request describes one cursor movement.
type Request struct {
	// Anchor and Head are the selection before the movement.
	Anchor int
	Head   int
	// Target is the head computed by markup-unaware movement.
	Target   int
	Backward bool
	// Group requests word movement; Target is ignored.
	Group bool
	// Extend keeps the anchor instead of collapsing the selection.
	Extend bool
}

// Move computes the selection after a movement. A Target one grapheme away
// from Head is a single step; any other Target is corrected in the
// direction of movement. Without Extend, a plain step from a non-empty
// selection collapses it to the edge in the direction of movement.
func (c Context) Move(req Request) cursor.Selection {
	sel := cursor.NewSelection(req.Anchor, req.Head).Clamp(len(c.Text))

	var head int
	switch {
	case req.Group:
		head = c.Group(sel.Head, req.Backward)
	case c.isStep(sel.Head, req.Target, req.Backward):
		if !req.Extend && !sel.IsEmpty() {
			edge := sel.CollapseTo(req.Backward).Head
			return cursor.Caret(c.Correct(edge, req.Backward))
		}
		head = c.Step(sel.Head, req.Backward)
	default:
		head = c.Correct(req.Target, req.Backward)
	}
	head = max(0, min(head, len(c.Text)))

	if req.Extend {
		return sel.Extend(head)
	}
	return cursor.Caret(head)
}

// isStep reports whether target is the naive one-character move from head.
func (c Context) isStep(head, target int, backward bool) bool {
	if target == head {
		return false
	}
	if backward {
		return target == head-1 || target == prevGrapheme(c.Text, head, 0)
	}
	return target == head+1 || target == nextGrapheme(c.Text, head, len(c.Text))
}
