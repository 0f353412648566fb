package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/dshills/critic/internal/engine/policy"
)

// DefaultMaxUndoEntries bounds the undo history.
const DefaultMaxUndoEntries = 1000

// Option configures a Session during creation.
type Option func(*Session)

// WithContent sets the initial document.
func WithContent(content string) Option {
	return func(s *Session) {
		s.initContent = content
	}
}

// WithPolicy sets the movement, edit and merge policies.
func WithPolicy(t policy.Table) Option {
	return func(s *Session) {
		s.policy = t
	}
}

// WithAuthor sets the author recorded in the metadata of new spans.
func WithAuthor(author string) Option {
	return func(s *Session) {
		s.author = author
	}
}

// WithLabel sets the label recorded in the metadata of new spans.
func WithLabel(label string) Option {
	return func(s *Session) {
		s.label = label
	}
}

// WithTimestamps records the time of the edit in new spans.
func WithTimestamps(on bool) Option {
	return func(s *Session) {
		s.timestamps = on
	}
}

// WithClock replaces the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(s *Session) {
		if max > 0 {
			s.maxUndoEntries = max
		}
	}
}

// WithVerify checks the range collection against a full parse after every
// transaction. It is meant for tests and debugging.
func WithVerify(on bool) Option {
	return func(s *Session) {
		s.verify = on
	}
}

// WithReadOnly creates a read-only session.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(s *Session) {
		s.readOnly = true
	}
}
