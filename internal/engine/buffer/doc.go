// Package buffer provides the document text of an editing session and the
// edit values exchanged with the host editor.
//
// The buffer package provides:
//
//   - ByteOffset positions and line/column Points
//   - Half-open Ranges and Edits expressed as offset triples
//   - Batched application of edits, reporting the changed spans in both the
//     old and the new coordinates
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("x{++y++}z")
//
//	changes, err := buf.ApplyEdits([]buffer.Edit{
//	    buffer.NewInsert(4, "Z"),
//	})
//	// buf.Text() == "x{++Zy++}z"
//	// changes[0] == Change{Old: [4:4), New: [4:5)}
//
// Edits in one batch are given in ascending order against the text as it was
// before the batch, and may not overlap.
package buffer
