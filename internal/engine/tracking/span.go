package tracking

import (
	"errors"
	"fmt"

	"github.com/dshills/critic/internal/engine/buffer"
)

// ErrUnordered is returned when spans of one batch are not ascending or
// overlap each other.
var ErrUnordered = errors.New("change spans not ascending")

// Span describes one changed region of a batch.
type Span struct {
	FromA, ToA int // replaced region, old coordinates
	FromB, ToB int // inserted region, new coordinates
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)->[%d:%d)", s.FromA, s.ToA, s.FromB, s.ToB)
}

// Delta returns the length difference introduced by the span.
func (s Span) Delta() int {
	return (s.ToB - s.FromB) - (s.ToA - s.FromA)
}

// IsEmpty reports whether the span neither removes nor inserts text.
func (s Span) IsEmpty() bool {
	return s.FromA == s.ToA && s.FromB == s.ToB
}

// Edit returns the span as an edit against the old text, inserting the
// matching region of newText.
func (s Span) Edit(newText string) buffer.Edit {
	return buffer.NewEdit(s.FromA, s.ToA, newText[s.FromB:s.ToB])
}

// FromChanges converts buffer changes into spans.
func FromChanges(changes []buffer.Change) []Span {
	spans := make([]Span, 0, len(changes))
	for _, c := range changes {
		spans = append(spans, Span{
			FromA: c.Old.Start, ToA: c.Old.End,
			FromB: c.New.Start, ToB: c.New.End,
		})
	}
	return spans
}

// FromEdits converts edits given in sequential application order, each
// against the text produced by the previous one, into spans of a single
// batch. Edits must be ascending.
func FromEdits(edits []buffer.Edit) ([]Span, error) {
	spans := make([]Span, 0, len(edits))
	shift, prevB := 0, 0
	for _, e := range edits {
		if e.IsNoOp() {
			continue
		}
		if e.Range.Start < prevB {
			return nil, fmt.Errorf("%w: edit %s starts before %d", ErrUnordered, e, prevB)
		}
		fromA := e.Range.Start - shift
		spans = append(spans, Span{
			FromA: fromA, ToA: fromA + e.Range.Len(),
			FromB: e.Range.Start, ToB: e.Range.Start + len(e.NewText),
		})
		prevB = e.Range.Start + len(e.NewText)
		shift += e.Delta()
	}
	return spans, nil
}

// Validate checks that spans are ascending and non-overlapping in both
// coordinate spaces and agree on the accumulated shift.
func Validate(spans []Span) error {
	prevA, shift := 0, 0
	for _, s := range spans {
		if s.FromA < prevA || s.ToA < s.FromA || s.ToB < s.FromB {
			return fmt.Errorf("%w: %s", ErrUnordered, s)
		}
		if s.FromB != s.FromA+shift {
			return fmt.Errorf("%w: %s does not follow shift %d", ErrUnordered, s, shift)
		}
		prevA = s.ToA
		shift += s.Delta()
	}
	return nil
}

// MapPos maps an old offset through the spans. Offsets at the start of or
// inside a replaced region map to the end of its replacement when assoc is
// positive and to the start otherwise.
func MapPos(spans []Span, pos int, assoc int) int {
	shift := 0
	for _, s := range spans {
		if s.FromA > pos {
			break
		}
		if s.ToA < pos || (s.ToA == pos && s.FromA < pos) {
			shift += s.Delta()
			continue
		}
		// pos within [FromA, ToA], or at an insertion point
		if assoc > 0 {
			return s.ToB
		}
		return s.FromB
	}
	return pos + shift
}
