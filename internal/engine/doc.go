// Package engine provides the Session, the request surface a host editor
// drives to edit a document containing suggestion markup.
//
// A Session combines the document buffer, the incrementally maintained
// range collection, the selections and the undo history. Each request runs
// as one transaction: the edit operators compute edits against a snapshot,
// the buffer applies them, the collection is resynchronized from the
// changed spans and the transaction is recorded for undo.
//
// # Basic Usage
//
//	s := engine.New(
//	    engine.WithContent("The quick fox"),
//	    engine.WithAuthor("amy"),
//	)
//	s.SetSelections(engine.Caret(10))
//	s.Insert("brown ") // "The quick {++{"author":"amy"}@@brown ++}fox"
//
//	s.Undo()
//
// # Host Edits
//
// Text changed outside of the requests is reported with Apply when the
// edits are known, or with Sync when only the new text is:
//
//	s.Sync(newText)
//
// # Error Handling
//
//   - ErrReadOnly: write request on a read-only session
//   - ErrNothingToUndo, ErrNothingToRedo: empty history
//   - ErrInconsistent: verification of the collection failed (WithVerify)
//
// Malformed markup is never an error; unterminated brackets are reported by
// Errors.
package engine

import "github.com/dshills/critic/internal/engine/cursor"

// Caret creates an empty selection at offset.
func Caret(offset int) Selection {
	return cursor.Caret(offset)
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head int) Selection {
	return cursor.NewSelection(anchor, head)
}
