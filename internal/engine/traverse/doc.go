// Package traverse moves the cursor through text containing markup.
//
// Host editors compute a naive new cursor position that knows nothing
// about markup. Move turns it into the position the user expects given the
// movement and bracket policy of every span kind:
//
//   - with policy.SkipMetadata each bracket (together with its metadata
//     block) and each separator is one step;
//   - with policy.SkipEntire a whole span is one step;
//   - with policy.Unchanged the span is plain text.
//
// Positions strictly inside a bracket, a metadata block, a separator, a
// skipped span or a span without content are never rest positions; Correct
// snaps them to the nearest valid position in the direction of movement.
//
// Every function is pure: the Context is read, never modified.
package traverse
