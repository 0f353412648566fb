package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/critic/internal/engine/buffer"
	"github.com/dshills/critic/internal/engine/cursor"
	"github.com/dshills/critic/internal/engine/edit"
	"github.com/dshills/critic/internal/engine/history"
	"github.com/dshills/critic/internal/engine/policy"
	"github.com/dshills/critic/internal/engine/ranges"
	"github.com/dshills/critic/internal/engine/tracking"
	"github.com/dshills/critic/internal/engine/traverse"
	"github.com/dshills/critic/internal/markup"
)

// Re-export commonly used types for convenience.
type (
	// Selection represents a cursor selection.
	Selection = cursor.Selection

	// Edit represents an edit operation.
	Edit = buffer.Edit

	// Range is a markup span of the document.
	Range = markup.Range

	// Kind identifies the type of a markup span.
	Kind = markup.Kind
)

// Session owns a document with suggestion markup, its range collection,
// selections and undo history. Every request runs as one transaction.
//
// A Session is not safe for concurrent use.
type Session struct {
	id      uuid.UUID
	logger  *zap.Logger
	buf     *buffer.Buffer
	ranges  *ranges.Collection
	cursors *cursor.Set
	history *history.History

	policy     policy.Table
	author     string
	label      string
	timestamps bool
	now        func() time.Time

	maxUndoEntries int
	verify         bool
	readOnly       bool
	initContent    string
}

// New creates a session with the given options.
func New(opts ...Option) *Session {
	s := &Session{
		id:             uuid.New(),
		logger:         zap.NewNop(),
		policy:         policy.Default(),
		now:            time.Now,
		maxUndoEntries: DefaultMaxUndoEntries,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session", s.id.String()))

	s.buf = buffer.NewBufferFromString(s.initContent)
	s.ranges = ranges.New(ranges.WithLogger(s.logger), ranges.WithVerify(s.verify))
	s.ranges.Build(s.initContent)
	s.cursors = cursor.NewSet()
	s.history = history.New(s.maxUndoEntries)
	return s
}

// ID returns the identifier used in the session's log lines.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Text returns the document.
func (s *Session) Text() string {
	return s.buf.Text()
}

// Len returns the document length in bytes.
func (s *Session) Len() int {
	return s.buf.Len()
}

// Ranges returns the spans of the document in order.
func (s *Session) Ranges() []*markup.Range {
	return s.ranges.Ranges()
}

// Errors returns the offsets of unterminated opening brackets.
func (s *Session) Errors() []int {
	return s.ranges.Errors()
}

// RangeAt returns the span at pos, preferring the one on the left when two
// touch there.
func (s *Session) RangeAt(pos int) *markup.Range {
	return s.ranges.AtCursor(pos, true, false)
}

// Thread returns the base and the replies of the comment thread r belongs
// to.
func (s *Session) Thread(r *markup.Range) (*markup.Range, []*markup.Range) {
	return s.ranges.Thread(r)
}

// Point converts a byte offset to a line and column.
func (s *Session) Point(offset int) buffer.Point {
	return buffer.PointAt(s.buf.Text(), offset)
}

// Selections returns every selection in document order.
func (s *Session) Selections() []Selection {
	return s.cursors.All()
}

// Primary returns the primary selection.
func (s *Session) Primary() Selection {
	return s.cursors.Primary()
}

// SetSelections replaces the selections. The first one becomes primary.
func (s *Session) SetSelections(sels ...Selection) {
	s.cursors.Reset(sels)
	s.cursors.Clamp(s.buf.Len())
}

// SetPolicy replaces the policies used by later requests.
func (s *Session) SetPolicy(t policy.Table) {
	s.policy = t
}

// SetAuthor replaces the author and label of later edits.
func (s *Session) SetAuthor(author, label string) {
	s.author, s.label = author, label
}

// CanUndo returns true if there is a transaction to undo.
func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo returns true if there is a transaction to redo.
func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

// UndoHistory describes the undoable transactions, most recent first.
func (s *Session) UndoHistory() []history.Info {
	return s.history.UndoInfo()
}

func (s *Session) meta() markup.Fields {
	f := markup.Fields{Author: s.author, Label: s.label}
	if s.timestamps {
		f.Time = s.now().Unix()
	}
	return f
}

func (s *Session) context() edit.Context {
	return edit.Context{
		Text:   s.buf.Text(),
		Ranges: s.ranges,
		Policy: &s.policy,
		Meta:   s.meta(),
	}
}

// Insert types text at every selection.
func (s *Session) Insert(text string) error {
	return s.run("insert", edit.Inserter(text))
}

// Delete deletes at every selection, by character or by word group.
func (s *Session) Delete(backward, byGroup bool) error {
	return s.run("delete", edit.Deleter(backward, byGroup))
}

// Replace replaces every selection with text.
func (s *Session) Replace(text string) error {
	return s.run("replace", func(c edit.Context, sel cursor.Selection) edit.Result {
		return c.Replace(sel, text)
	})
}

// ChangeType turns the selected content into spans of kind; markup.None
// removes the markup.
func (s *Session) ChangeType(kind markup.Kind) error {
	return s.run("change "+kind.String(), func(c edit.Context, sel cursor.Selection) edit.Result {
		return c.ChangeType(sel, kind)
	})
}

// Split divides the span at every cursor in two.
func (s *Session) Split() error {
	return s.run("split", func(c edit.Context, sel cursor.Selection) edit.Result {
		return c.Split(sel)
	})
}

// MoveCursor moves every selection by one character or word group.
func (s *Session) MoveCursor(backward, group, extend bool) {
	t := s.traversal()
	sels := s.cursors.All()
	for i, sel := range sels {
		target := sel.Head + 1
		if backward {
			target = sel.Head - 1
		}
		sels[i] = t.Move(traverse.Request{
			Anchor: sel.Anchor, Head: sel.Head, Target: target,
			Backward: backward, Group: group, Extend: extend,
		})
	}
	s.cursors.Reset(sels)
}

// MoveTo places the primary cursor at the valid position nearest to pos,
// searching in the given direction.
func (s *Session) MoveTo(pos int, backward, extend bool) {
	sel := s.cursors.Primary()
	s.cursors.Reset([]Selection{s.traversal().Move(traverse.Request{
		Anchor: sel.Anchor, Head: sel.Head, Target: pos,
		Backward: backward, Extend: extend,
	})})
}

func (s *Session) traversal() traverse.Context {
	return traverse.Context{Text: s.buf.Text(), Ranges: s.ranges, Policy: &s.policy}
}

// PlainText returns the selected text with all markup tokens removed.
func (s *Session) PlainText(sel Selection) string {
	sel = sel.Clamp(s.buf.Len())
	return s.ranges.UnwrapInRange(s.buf.Text(), sel.Start(), sel.End()).Text
}

// AcceptAll accepts every suggestion and drops the comments.
func (s *Session) AcceptAll() error {
	return s.resolve("accept all", markup.AcceptAll)
}

// RejectAll rejects every suggestion and drops the comments.
func (s *Session) RejectAll() error {
	return s.resolve("reject all", markup.RejectAll)
}

func (s *Session) resolve(name string, fn func(string, []*markup.Range) string) error {
	if s.readOnly {
		return ErrReadOnly
	}
	return s.sync(name, fn(s.buf.Text(), s.ranges.Ranges()))
}

// Apply applies edits made by the host outside of the session requests.
// Edits are ascending, non-overlapping and in current coordinates.
func (s *Session) Apply(edits []Edit) error {
	if s.readOnly {
		return ErrReadOnly
	}
	return s.commit("apply", edits, nil, true)
}

// Sync replaces the document with text, deriving the changed spans from a
// diff against the current document.
func (s *Session) Sync(text string) error {
	if s.readOnly {
		return ErrReadOnly
	}
	return s.sync("sync", text)
}

func (s *Session) sync(name, text string) error {
	old := s.buf.Text()
	spans := tracking.Diff(old, text)
	edits := make([]Edit, 0, len(spans))
	for _, sp := range spans {
		edits = append(edits, sp.Edit(text))
	}
	return s.commit(name, edits, nil, true)
}

// Undo reverts the last transaction.
func (s *Session) Undo() error {
	if s.readOnly {
		return ErrReadOnly
	}
	return s.history.Undo(s.replay)
}

// Redo reapplies the last undone transaction.
func (s *Session) Redo() error {
	if s.readOnly {
		return ErrReadOnly
	}
	return s.history.Redo(s.replay)
}

func (s *Session) replay(tx *history.Transaction) error {
	return s.commit("replay "+tx.Name, tx.Edits, tx.SelectionsAfter, false)
}

func (s *Session) run(name string, op edit.Op) error {
	if s.readOnly {
		return ErrReadOnly
	}
	b := s.context().ApplyAll(s.cursors.All(), op)
	if b.IsNoOp() {
		s.cursors.Reset(b.Selections)
		return nil
	}
	return s.commit(name, b.Edits, b.Selections, true)
}

// commit applies edits to the buffer, resynchronizes the collection and
// records the transaction. Without sels the selections are mapped through
// the edits.
func (s *Session) commit(name string, edits []Edit, sels []Selection, record bool) error {
	old := s.buf.Text()
	before := s.cursors.All()

	changes, err := s.buf.ApplyEdits(edits)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if len(changes) == 0 {
		return nil
	}
	text := s.buf.Text()
	if err := s.ranges.Apply(text, tracking.FromChanges(changes)); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if sels == nil {
		s.cursors.TransformChanges(changes)
	} else {
		s.cursors.Reset(sels)
	}
	s.cursors.Clamp(len(text))

	if record {
		s.history.Push(history.NewTransaction(name, old, changes, text, before, s.cursors.All()))
	}
	s.logger.Debug("transaction",
		zap.String("op", name),
		zap.Int("edits", len(changes)),
		zap.Int("delta", len(text)-len(old)),
		zap.Int("ranges", s.ranges.Len()))
	return nil
}
