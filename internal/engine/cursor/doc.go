// Package cursor provides the selections that editing requests operate on.
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// When Anchor == Head, the selection represents just a cursor with no
// selected text. Every edit operator returns the selection the host should
// install afterwards.
//
// Multiple selections are held in a Set, kept sorted by start position.
// Unlike an editor's multi-cursor set, overlapping selections are kept: the
// edit layer decides which of them to skip.
//
// After a batch of edits applied by the host, selections are moved with
// TransformChanges.
//
// Thread Safety:
//
// Selection is an immutable value type. Set is not thread-safe.
package cursor
