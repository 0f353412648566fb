package buffer

import "fmt"

// Edit represents a text edit operation: the text in Range is replaced by
// NewText.
type Edit struct {
	Range   Range
	NewText string
}

// NewEdit creates a new Edit.
func NewEdit(start, end ByteOffset, newText string) Edit {
	return Edit{Range: Range{Start: start, End: end}, NewText: newText}
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(offset ByteOffset, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewText: text}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(start, end ByteOffset) Edit {
	return Edit{Range: Range{Start: start, End: end}}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// Delta returns the change in document length caused by this edit.
func (e Edit) Delta() int {
	return len(e.NewText) - e.Range.Len()
}

// Change describes one changed span of a batch: Old is the replaced range in
// the text before the batch, New the inserted range in the text after it.
type Change struct {
	Old Range
	New Range
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	return fmt.Sprintf("%s->%s", c.Old, c.New)
}

// Delta returns the length difference introduced by the change.
func (c Change) Delta() int {
	return c.New.Len() - c.Old.Len()
}
