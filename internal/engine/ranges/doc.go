// Package ranges maintains the markup ranges of a document.
//
// A Collection holds every well-formed span of the document sorted by
// start offset, in an interval index and in a flat array kept in sync with
// it. It is built once from a full parse and then repaired after every edit
// by Apply, which reparses only the regions touched by the edit:
//
//	c := ranges.New(ranges.WithVerify(true))
//	c.Build(text)
//
//	// after the host replaced [4,4) with "Z"
//	err := c.Apply(newText, []tracking.Span{{FromA: 4, ToA: 4, FromB: 4, ToB: 5}})
//
// Unterminated opening brackets are not ranges; their positions are kept so
// that a later edit adding the missing close turns them into one.
//
// Comment threads (Range.Base and Range.Replies) are derived from adjacency
// and recomputed for every range an edit may have affected.
//
// A Collection is owned by one session and is not safe for concurrent use.
// Range pointers it returns stay valid until the range is removed by an
// edit; their offsets are kept current.
package ranges
