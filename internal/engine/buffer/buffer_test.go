package buffer

import (
	"errors"
	"sync"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.Text() != "" {
		t.Errorf("expected empty text, got %q", b.Text())
	}
}

func TestNewBufferFromString(t *testing.T) {
	text := "x{++y++}z"
	b := NewBufferFromString(text)

	if b.Text() != text {
		t.Errorf("expected %q, got %q", text, b.Text())
	}
	if b.Len() != len(text) {
		t.Errorf("expected length %d, got %d", len(text), b.Len())
	}
}

func TestApplyEdits(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		edits   []Edit
		want    string
		changes []Change
	}{
		{
			name:    "insert",
			text:    "x{++y++}z",
			edits:   []Edit{NewInsert(4, "Z")},
			want:    "x{++Zy++}z",
			changes: []Change{{Old: NewRange(4, 4), New: NewRange(4, 5)}},
		},
		{
			name:    "delete",
			text:    "abcdef",
			edits:   []Edit{NewDelete(1, 3)},
			want:    "adef",
			changes: []Change{{Old: NewRange(1, 3), New: NewRange(1, 1)}},
		},
		{
			name:  "batch in old coordinates",
			text:  "abcdef",
			edits: []Edit{NewEdit(0, 1, "XX"), NewDelete(2, 4), NewInsert(6, "!")},
			want:  "XXbef!",
			changes: []Change{
				{Old: NewRange(0, 1), New: NewRange(0, 2)},
				{Old: NewRange(2, 4), New: NewRange(3, 3)},
				{Old: NewRange(6, 6), New: NewRange(5, 6)},
			},
		},
		{
			name:    "no-op skipped",
			text:    "abc",
			edits:   []Edit{NewInsert(1, "")},
			want:    "abc",
			changes: []Change{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString(tt.text)
			rev := b.RevisionID()

			changes, err := b.ApplyEdits(tt.edits)
			if err != nil {
				t.Fatalf("ApplyEdits: %v", err)
			}
			if b.Text() != tt.want {
				t.Errorf("text = %q, want %q", b.Text(), tt.want)
			}
			if len(changes) != len(tt.changes) {
				t.Fatalf("got %d changes, want %d", len(changes), len(tt.changes))
			}
			for i := range changes {
				if changes[i] != tt.changes[i] {
					t.Errorf("change %d = %v, want %v", i, changes[i], tt.changes[i])
				}
			}
			if len(changes) > 0 && b.RevisionID() == rev {
				t.Error("revision should change after an applied edit")
			}
			if len(changes) == 0 && b.RevisionID() != rev {
				t.Error("revision should not change after a no-op batch")
			}
		})
	}
}

func TestApplyEditsErrors(t *testing.T) {
	tests := []struct {
		name  string
		edits []Edit
		err   error
	}{
		{"out of range", []Edit{NewInsert(10, "x")}, ErrOffsetOutOfRange},
		{"negative", []Edit{NewDelete(-1, 1)}, ErrOffsetOutOfRange},
		{"inverted", []Edit{NewEdit(3, 1, "")}, ErrRangeInvalid},
		{"overlap", []Edit{NewDelete(0, 3), NewDelete(2, 4)}, ErrEditsOverlap},
		{"descending", []Edit{NewInsert(4, "a"), NewInsert(1, "b")}, ErrEditsOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString("abcdef")
			_, err := b.ApplyEdits(tt.edits)
			if !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
			if b.Text() != "abcdef" {
				t.Errorf("failed batch modified text: %q", b.Text())
			}
		})
	}
}

func TestPointAt(t *testing.T) {
	text := "ab\nçd\n"
	tests := []struct {
		offset int
		want   Point
	}{
		{0, Point{0, 0}},
		{2, Point{0, 2}},
		{3, Point{1, 0}},
		{5, Point{1, 1}},
		{7, Point{2, 0}},
		{99, Point{2, 0}},
	}
	for _, tt := range tests {
		if got := PointAt(text, tt.offset); got != tt.want {
			t.Errorf("PointAt(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestRangeOverlaps(t *testing.T) {
	a := NewRange(2, 5)
	if a.Overlaps(NewRange(5, 7)) {
		t.Error("adjacent ranges should not overlap")
	}
	if !a.Overlaps(NewRange(4, 5)) {
		t.Error("expected overlap")
	}
	if NewRange(3, 2).IsValid() {
		t.Error("reversed range reported valid")
	}
}

func TestBufferConcurrentReads(t *testing.T) {
	b := NewBufferFromString("hello")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = b.Text()
			_ = b.Len()
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = b.ApplyEdits([]Edit{NewInsert(5, "!")})
	}()
	wg.Wait()
	if b.Text() != "hello!" {
		t.Errorf("got %q", b.Text())
	}
}
