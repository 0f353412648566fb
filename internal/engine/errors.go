package engine

import (
	"errors"

	"github.com/dshills/critic/internal/engine/buffer"
	"github.com/dshills/critic/internal/engine/history"
	"github.com/dshills/critic/internal/engine/ranges"
)

// Errors returned by session operations.
var (
	// ErrReadOnly indicates a write was attempted on a read-only session.
	ErrReadOnly = errors.New("session is read-only")

	// ErrOffsetOutOfRange indicates an offset outside the document.
	ErrOffsetOutOfRange = buffer.ErrOffsetOutOfRange

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrInconsistent indicates the range collection failed verification.
	ErrInconsistent = ranges.ErrInconsistent
)
