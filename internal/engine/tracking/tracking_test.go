package tracking

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/critic/internal/engine/buffer"
)

// applySpans rebuilds the new text from the old one and the spans.
func applySpans(oldText, newText string, spans []Span) string {
	var sb strings.Builder
	pos := 0
	for _, s := range spans {
		sb.WriteString(oldText[pos:s.FromA])
		sb.WriteString(newText[s.FromB:s.ToB])
		pos = s.ToA
	}
	sb.WriteString(oldText[pos:])
	return sb.String()
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		old  string
		new  string
		n    int
	}{
		{"identical", "abc", "abc", 0},
		{"insert", "x{++y++}z", "x{++Zy++}z", 1},
		{"delete", "hello world", "hello", 1},
		{"replace word", "the cat sat", "the dog sat", 1},
		{"two regions", "one two three four", "one TWO three FOUR", 2},
		{"multibyte", "héllo", "hállo", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := Diff(tt.old, tt.new)
			if len(spans) != tt.n {
				t.Fatalf("got %d spans %v, want %d", len(spans), spans, tt.n)
			}
			if err := Validate(spans); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if got := applySpans(tt.old, tt.new, spans); got != tt.new {
				t.Errorf("rebuilt %q, want %q", got, tt.new)
			}
		})
	}
}

func TestFromChanges(t *testing.T) {
	text, changes, err := buffer.Apply("abcdef", []buffer.Edit{
		buffer.NewEdit(0, 1, "XX"),
		buffer.NewDelete(2, 4),
	})
	if err != nil {
		t.Fatal(err)
	}
	spans := FromChanges(changes)
	want := []Span{{0, 1, 0, 2}, {2, 4, 3, 3}}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span %d = %v, want %v", i, spans[i], want[i])
		}
	}
	if got := applySpans("abcdef", text, spans); got != text {
		t.Errorf("rebuilt %q, want %q", got, text)
	}
}

func TestFromEdits(t *testing.T) {
	spans, err := FromEdits([]buffer.Edit{
		buffer.NewInsert(1, "ab"),
		buffer.NewDelete(5, 6),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []Span{{1, 1, 1, 3}, {3, 4, 5, 5}}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span %d = %v, want %v", i, spans[i], want[i])
		}
	}

	_, err = FromEdits([]buffer.Edit{buffer.NewInsert(4, "a"), buffer.NewInsert(2, "b")})
	if !errors.Is(err, ErrUnordered) {
		t.Errorf("expected ErrUnordered, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate([]Span{{2, 4, 2, 2}, {1, 1, 1, 2}}); !errors.Is(err, ErrUnordered) {
		t.Errorf("descending spans: expected ErrUnordered, got %v", err)
	}
	if err := Validate([]Span{{2, 4, 2, 2}, {5, 5, 6, 7}}); !errors.Is(err, ErrUnordered) {
		t.Errorf("wrong shift: expected ErrUnordered, got %v", err)
	}
}

func TestMapPos(t *testing.T) {
	// [2,4) replaced by 3 bytes, 1 byte inserted at old 6.
	spans := []Span{{2, 4, 2, 5}, {6, 6, 7, 8}}

	tests := []struct {
		pos, assoc, want int
	}{
		{0, 1, 0},
		{3, 1, 5},
		{3, -1, 2},
		{4, 1, 5},
		{5, 1, 6},
		{6, 1, 8},
		{6, -1, 7},
		{8, 1, 10},
	}
	for _, tt := range tests {
		if got := MapPos(spans, tt.pos, tt.assoc); got != tt.want {
			t.Errorf("MapPos(%d, %d) = %d, want %d", tt.pos, tt.assoc, got, tt.want)
		}
	}
}

func TestSpanDelta(t *testing.T) {
	s := Span{FromA: 2, ToA: 5, FromB: 2, ToB: 3}
	if s.Delta() != -2 {
		t.Errorf("delta = %d", s.Delta())
	}
	if e := s.Edit("abc"); e.Range != buffer.NewRange(2, 5) || e.NewText != "c" {
		t.Errorf("edit = %v", e)
	}
}
