package history

import (
	"errors"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds a history created without a limit.
const DefaultMaxEntries = 1000

type entry struct {
	tx        *Transaction
	timestamp time.Time
}

// History manages the undo and redo stacks of a session. It is not safe
// for concurrent use.
type History struct {
	undoStack []*entry
	redoStack []*entry

	maxEntries int
}

// New creates a history keeping at most maxEntries transactions.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push records a transaction and clears the redo stack. Empty transactions
// are ignored.
func (h *History) Push(tx *Transaction) {
	if tx == nil || tx.IsEmpty() {
		return
	}
	h.undoStack = append(h.undoStack, &entry{tx: tx, timestamp: time.Now()})
	h.redoStack = nil
	h.trim()
}

func (h *History) trim() {
	if excess := len(h.undoStack) - h.maxEntries; excess > 0 {
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo passes the inverse of the last transaction to apply. When apply
// fails the transaction stays on the undo stack.
func (h *History) Undo(apply func(*Transaction) error) error {
	if len(h.undoStack) == 0 {
		return ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	if err := apply(e.tx.Invert()); err != nil {
		return err
	}
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, e)
	return nil
}

// Redo passes the last undone transaction to apply.
func (h *History) Redo(apply func(*Transaction) error) error {
	if len(h.redoStack) == 0 {
		return ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	if err := apply(e.tx); err != nil {
		return err
	}
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, e)
	return nil
}

// CanUndo returns true if there are transactions to undo.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if there are transactions to redo.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undoable transactions.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redoable transactions.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// PeekUndo describes the transaction Undo would revert.
func (h *History) PeekUndo() (Info, bool) {
	if len(h.undoStack) == 0 {
		return Info{}, false
	}
	return info(h.undoStack[len(h.undoStack)-1].tx), true
}

// UndoInfo describes the undo stack, most recent first.
func (h *History) UndoInfo() []Info {
	out := make([]Info, 0, len(h.undoStack))
	for i := len(h.undoStack) - 1; i >= 0; i-- {
		out = append(out, info(h.undoStack[i].tx))
	}
	return out
}

func info(tx *Transaction) Info {
	return Info{Name: tx.Name, Edits: len(tx.Edits), Delta: tx.Delta()}
}

// SetMaxEntries changes the bound, dropping the oldest entries if needed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		return
	}
	h.maxEntries = max
	h.trim()
}

// MaxEntries returns the current bound.
func (h *History) MaxEntries() int {
	return h.maxEntries
}
