package buffer

import (
	"errors"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEditsOverlap     = errors.New("edits overlap or are not in ascending order")
)

// Buffer holds the text of a document.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       string
	revisionID RevisionID
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{revisionID: NewRevisionID()}
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string) *Buffer {
	b := NewBuffer()
	b.text = s
	return b
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text)
}

// RevisionID returns the current revision.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// ApplyEdits applies a batch of edits atomically. Edits are given in
// ascending order against the current text and may not overlap; no-op edits
// are skipped. The returned changes describe every applied edit in old and
// new coordinates.
func (b *Buffer) ApplyEdits(edits []Edit) ([]Change, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	text, changes, err := Apply(b.text, edits)
	if err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		b.text = text
		b.revisionID = NewRevisionID()
	}
	return changes, nil
}

// Apply applies a batch of edits to text and returns the result together
// with the changed spans. See Buffer.ApplyEdits for the ordering rules.
func Apply(text string, edits []Edit) (string, []Change, error) {
	prev := 0
	for _, e := range edits {
		if !e.Range.IsValid() {
			return "", nil, ErrRangeInvalid
		}
		if e.Range.Start < 0 || e.Range.End > len(text) {
			return "", nil, ErrOffsetOutOfRange
		}
		if e.Range.Start < prev {
			return "", nil, ErrEditsOverlap
		}
		prev = e.Range.End
	}

	var sb strings.Builder
	changes := make([]Change, 0, len(edits))
	pos, delta := 0, 0
	for _, e := range edits {
		if e.IsNoOp() {
			continue
		}
		sb.WriteString(text[pos:e.Range.Start])
		sb.WriteString(e.NewText)
		pos = e.Range.End
		start := e.Range.Start + delta
		changes = append(changes, Change{
			Old: e.Range,
			New: Range{Start: start, End: start + len(e.NewText)},
		})
		delta += e.Delta()
	}
	sb.WriteString(text[pos:])
	return sb.String(), changes, nil
}
