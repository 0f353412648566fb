package interval

import (
	"testing"

	"pgregory.net/rapid"
)

type span struct {
	start, end int
}

func newTree() *Tree[*span] {
	return New(Accessor[*span]{
		Bounds: func(s *span) (int, int) { return s.start, s.end },
		Shift: func(s *span, d int) {
			s.start += d
			s.end += d
		},
	})
}

func collect(t *Tree[*span], lo, hi int, inclusive bool) []span {
	var out []span
	t.Search(lo, hi, inclusive, func(s *span) bool {
		out = append(out, *s)
		return true
	})
	return out
}

func TestInsertOrdersByStart(t *testing.T) {
	tr := newTree()
	for _, s := range []*span{{20, 26}, {0, 6}, {10, 16}} {
		tr.Insert(s)
	}
	items := tr.Items()
	if len(items) != 3 || tr.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, want := range []int{0, 10, 20} {
		if items[i].start != want {
			t.Errorf("item %d: expected start %d, got %d", i, want, items[i].start)
		}
	}
}

func TestDelete(t *testing.T) {
	tr := newTree()
	a, b := &span{0, 6}, &span{10, 16}
	tr.Insert(a)
	tr.Insert(b)

	if !tr.Delete(a) {
		t.Fatal("expected delete to find item")
	}
	if tr.Delete(a) {
		t.Error("second delete should report missing item")
	}
	if tr.Len() != 1 || tr.Items()[0] != b {
		t.Errorf("unexpected remaining items: %v", tr.Items())
	}
}

func TestSearchInclusiveAndStrict(t *testing.T) {
	tr := newTree()
	tr.Insert(&span{0, 6})
	tr.Insert(&span{6, 12})
	tr.Insert(&span{20, 26})

	if got := collect(tr, 6, 6, true); len(got) != 2 {
		t.Errorf("inclusive point query at shared edge: expected 2, got %v", got)
	}
	if got := collect(tr, 6, 6, false); len(got) != 0 {
		t.Errorf("strict point query at shared edge: expected none, got %v", got)
	}
	if got := collect(tr, 3, 3, false); len(got) != 1 || got[0].start != 0 {
		t.Errorf("strict point query inside: got %v", got)
	}
	if got := collect(tr, 12, 20, false); len(got) != 0 {
		t.Errorf("strict query over gap: got %v", got)
	}
	if got := collect(tr, 12, 20, true); len(got) != 2 {
		t.Errorf("inclusive query over gap: got %v", got)
	}
}

func TestShiftFromIsLazy(t *testing.T) {
	tr := newTree()
	a, b, c := &span{0, 6}, &span{10, 16}, &span{20, 26}
	tr.Insert(a)
	tr.Insert(b)
	tr.Insert(c)

	tr.ShiftFrom(10, 5)
	if a.start != 0 {
		t.Errorf("item before shift point moved to %d", a.start)
	}

	items := tr.Items()
	if items[1].start != 15 || items[2].start != 25 || items[2].end != 31 {
		t.Errorf("unexpected shifted items: %v %v", *items[1], *items[2])
	}
	if got := collect(tr, 30, 30, true); len(got) != 1 || got[0].start != 25 {
		t.Errorf("maxEnd not maintained after shift: %v", got)
	}
}

func TestBeforeAndAtOrAfter(t *testing.T) {
	tr := newTree()
	tr.Insert(&span{0, 6})
	tr.Insert(&span{10, 16})

	if s, ok := tr.Before(10); !ok || s.start != 0 {
		t.Errorf("Before(10) = %v, %v", s, ok)
	}
	if _, ok := tr.Before(0); ok {
		t.Error("Before(0) should find nothing")
	}
	if s, ok := tr.AtOrAfter(7); !ok || s.start != 10 {
		t.Errorf("AtOrAfter(7) = %v, %v", s, ok)
	}
	if _, ok := tr.AtOrAfter(11); ok {
		t.Error("AtOrAfter(11) should find nothing")
	}
}

func TestSearchMatchesLinearScan(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := newTree()
		pos := 0
		n := rapid.IntRange(0, 40).Draw(t, "n")
		for i := 0; i < n; i++ {
			pos += rapid.IntRange(0, 5).Draw(t, "gap")
			s := &span{pos, pos + rapid.IntRange(6, 12).Draw(t, "len")}
			pos = s.end
			tr.Insert(s)
		}
		if rapid.Bool().Draw(t, "shift") && n > 0 {
			at := rapid.IntRange(0, pos).Draw(t, "at")
			d := rapid.IntRange(0, 10).Draw(t, "delta")
			tr.ShiftFrom(at, d)
			pos += d
		}
		lo := rapid.IntRange(0, pos+10).Draw(t, "lo")
		hi := rapid.IntRange(lo, pos+20).Draw(t, "hi")
		inclusive := rapid.Bool().Draw(t, "inclusive")

		var want []span
		for _, s := range tr.Items() {
			if matches(s.start, s.end, lo, hi, inclusive) {
				want = append(want, *s)
			}
		}
		got := collect(tr, lo, hi, inclusive)
		if len(got) != len(want) {
			t.Fatalf("search [%d,%d] inclusive=%v: got %v, want %v", lo, hi, inclusive, got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("item %d: got %v, want %v", i, got[i], want[i])
			}
		}
	})
}

func TestRankAndSelectAfterShift(t *testing.T) {
	tr := newTree()
	spans := []*span{{0, 6}, {10, 16}, {20, 26}, {30, 36}}
	for _, s := range spans {
		tr.Insert(s)
	}
	tr.ShiftFrom(15, 7)

	for i, want := range []int{0, 10, 27, 37} {
		s, ok := tr.Select(i)
		if !ok || s.start != want {
			t.Errorf("Select(%d) = %v, %v; want start %d", i, s, ok, want)
		}
		if got := tr.Rank(want); got != i {
			t.Errorf("Rank(%d) = %d, want %d", want, got, i)
		}
	}
	if _, ok := tr.Select(4); ok {
		t.Error("Select past the end should find nothing")
	}
	if _, ok := tr.Select(-1); ok {
		t.Error("Select(-1) should find nothing")
	}
	if got := tr.Rank(100); got != 4 {
		t.Errorf("Rank(100) = %d, want 4", got)
	}
}
