package buffer

import (
	"fmt"
	"strings"
	"sync/atomic"
	"unicode/utf8"
)

// ByteOffset represents a byte position in the document.
type ByteOffset = int

// Point represents a line and column position.
// Both Line and Column are 0-indexed; Column counts runes.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// PointAt converts an offset into a Point. Offsets past the end of text are
// clamped.
func PointAt(text string, offset ByteOffset) Point {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}
	before := text[:offset]
	line := strings.Count(before, "\n")
	start := strings.LastIndexByte(before, '\n') + 1
	return Point{Line: line, Column: utf8.RuneCountInString(before[start:])}
}

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

// revisionCounter is used to generate unique revision IDs.
var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
