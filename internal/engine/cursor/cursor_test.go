package cursor

import (
	"testing"

	"github.com/dshills/critic/internal/engine/buffer"
)

func TestSelectionBounds(t *testing.T) {
	sel := NewSelection(20, 10)

	if sel.Start() != 10 || sel.End() != 20 {
		t.Errorf("expected [10,20], got [%d,%d]", sel.Start(), sel.End())
	}
	if !sel.IsBackward() {
		t.Error("selection should be backward")
	}
	if sel.Len() != 10 {
		t.Errorf("expected length 10, got %d", sel.Len())
	}
	if r := sel.Range(); r != buffer.NewRange(10, 20) {
		t.Errorf("unexpected range %v", r)
	}
}

func TestSelectionCollapseTo(t *testing.T) {
	sel := NewSelection(3, 8)
	if got := sel.CollapseTo(true); got != Caret(3) {
		t.Errorf("backward collapse = %v", got)
	}
	if got := sel.CollapseTo(false); got != Caret(8) {
		t.Errorf("forward collapse = %v", got)
	}
}

func TestSelectionClamp(t *testing.T) {
	got := NewSelection(-4, 99).Clamp(10)
	if got != NewSelection(0, 10) {
		t.Errorf("clamp = %v", got)
	}
}

func TestSetOrderAndPrimary(t *testing.T) {
	s := NewSet(Caret(9), NewSelection(5, 2), Caret(4))

	all := s.All()
	want := []Selection{NewSelection(5, 2), Caret(4), Caret(9)}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("selection %d = %v, want %v", i, all[i], want[i])
		}
	}
	if s.Primary() != Caret(9) {
		t.Errorf("primary = %v", s.Primary())
	}
	if s.Count() != 3 {
		t.Errorf("count = %d", s.Count())
	}
}

func TestSetEmpty(t *testing.T) {
	s := NewSet()
	if s.Count() != 1 || s.Primary() != Caret(0) {
		t.Errorf("empty set should hold a caret at 0, got %v", s.All())
	}
}

func TestTransformOffset(t *testing.T) {
	// "abcdef" with [1,3) replaced by "XYZ" and an insertion of "!" at 5.
	changes := []Change{
		{Old: buffer.NewRange(1, 3), New: buffer.NewRange(1, 4)},
		{Old: buffer.NewRange(5, 5), New: buffer.NewRange(6, 7)},
	}

	tests := []struct {
		name   string
		offset int
		sticky bool
		want   int
	}{
		{"before", 0, false, 0},
		{"at start of replacement", 1, false, 1},
		{"inside replacement", 2, false, 4},
		{"at end of replacement", 3, false, 4},
		{"between", 4, false, 5},
		{"at insertion", 5, false, 7},
		{"at insertion sticky", 5, true, 6},
		{"after all", 6, false, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransformOffset(tt.offset, changes, tt.sticky); got != tt.want {
				t.Errorf("TransformOffset(%d) = %d, want %d", tt.offset, got, tt.want)
			}
		})
	}
}

func TestTransformSelection(t *testing.T) {
	changes := []Change{{Old: buffer.NewRange(2, 2), New: buffer.NewRange(2, 4)}}

	if got := TransformSelection(Caret(2), changes); got != Caret(4) {
		t.Errorf("caret at insertion = %v, want Caret(4)", got)
	}
	if got := TransformSelection(NewSelection(2, 5), changes); got != NewSelection(2, 7) {
		t.Errorf("selection = %v, want Selection(2->7)", got)
	}
}

func TestChangesFromEdits(t *testing.T) {
	// Sequential edits: insert "ab" at 1, then delete [5,6) of the result.
	edits := []buffer.Edit{buffer.NewInsert(1, "ab"), buffer.NewDelete(5, 6)}
	changes := ChangesFromEdits(edits)

	want := []Change{
		{Old: buffer.NewRange(1, 1), New: buffer.NewRange(1, 3)},
		{Old: buffer.NewRange(3, 4), New: buffer.NewRange(5, 5)},
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d = %v, want %v", i, changes[i], want[i])
		}
	}
}

func TestSetTransformChanges(t *testing.T) {
	s := NewSet(Caret(1), Caret(6))
	s.TransformChanges([]Change{{Old: buffer.NewRange(3, 5), New: buffer.NewRange(3, 3)}})

	all := s.All()
	if all[0] != Caret(1) || all[1] != Caret(4) {
		t.Errorf("unexpected selections %v", all)
	}
}
