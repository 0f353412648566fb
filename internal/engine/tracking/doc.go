// Package tracking turns document modifications into change spans.
//
// A change span maps a replaced region of the old text onto the region of
// the new text that replaced it:
//
//	[FromA, ToA) in the old text  ->  [FromB, ToB) in the new text
//
// Spans are what the range collection consumes to resynchronize itself.
// They can be produced from:
//
//   - [FromChanges]: the changes reported by a buffer batch
//   - [FromEdits]: edits expressed in sequential application order
//   - [Diff]: two full texts, when the host only reports the result
//
// Spans of one batch are sorted, non-overlapping, and expressed against the
// text as it was before the batch.
package tracking
