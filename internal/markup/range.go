package markup

import "fmt"

// Range is one markup span in a document.
//
// From and To are absolute byte offsets, To exclusive. Middle is the offset
// of the separator of a Substitution and -1 for every other kind. MetaFrom
// and MetaTo delimit the metadata block including its "@@" terminator and
// are -1 when the span has no metadata.
type Range struct {
	Kind     Kind
	From     int
	To       int
	Middle   int
	MetaFrom int
	MetaTo   int

	metadata string
	fields   *Fields

	// Base is the range a comment replies to; nil for ranges that are not
	// part of a thread and for the first comment of a free-standing thread.
	Base *Range
	// Replies holds the comments of the thread attached to this range.
	Replies []*Range
}

// New creates a range without metadata.
func New(kind Kind, from, to int) *Range {
	return &Range{Kind: kind, From: from, To: to, Middle: -1, MetaFrom: -1, MetaTo: -1}
}

// NewSubstitution creates a Substitution whose separator starts at middle.
func NewSubstitution(from, middle, to int) *Range {
	r := New(Substitution, from, to)
	r.Middle = middle
	return r
}

// SetMetadata records a metadata block body starting at metaFrom.
func (r *Range) SetMetadata(metaFrom int, raw string) *Range {
	r.MetaFrom = metaFrom
	r.MetaTo = metaFrom + len(raw) + len(MetadataTerminator)
	r.metadata = raw
	r.fields = nil
	return r
}

// String returns a compact description such as "addition[3:12)".
func (r *Range) String() string {
	if r.Kind == Substitution {
		return fmt.Sprintf("%s[%d:%d:%d)", r.Kind, r.From, r.Middle, r.To)
	}
	return fmt.Sprintf("%s[%d:%d)", r.Kind, r.From, r.To)
}

// Len returns the length of the whole span.
func (r *Range) Len() int {
	return r.To - r.From
}

// HasMetadata returns true if the span carries a metadata block.
func (r *Range) HasMetadata() bool {
	return r.MetaFrom >= 0
}

// Metadata returns the raw metadata body without terminator.
func (r *Range) Metadata() string {
	return r.metadata
}

// Fields returns the decoded metadata, decoding it on first use.
func (r *Range) Fields() Fields {
	if r.fields == nil {
		f := DecodeFields(r.metadata)
		r.fields = &f
	}
	return *r.fields
}

// ContentFrom is the offset of the first content character.
func (r *Range) ContentFrom() int {
	if r.MetaTo >= 0 {
		return r.MetaTo
	}
	return r.From + BracketWidth
}

// ContentTo is the offset just past the last content character.
func (r *Range) ContentTo() int {
	return r.To - BracketWidth
}

// Shift moves every offset of the range by delta.
func (r *Range) Shift(delta int) {
	r.From += delta
	r.To += delta
	if r.Middle >= 0 {
		r.Middle += delta
	}
	if r.MetaFrom >= 0 {
		r.MetaFrom += delta
		r.MetaTo += delta
	}
}

// Same reports whether two ranges describe the same span, ignoring thread
// links.
func (r *Range) Same(o *Range) bool {
	return r.Kind == o.Kind && r.From == o.From && r.To == o.To &&
		r.Middle == o.Middle && r.MetaFrom == o.MetaFrom && r.MetaTo == o.MetaTo &&
		r.metadata == o.metadata
}

// Side selects a part of a span's content.
type Side uint8

const (
	// Whole is the entire content; for a Substitution it includes the
	// separator.
	Whole Side = iota
	// Left is the deleted part of a Substitution, the whole content otherwise.
	Left
	// Right is the inserted part of a Substitution, the whole content otherwise.
	Right
)

// Part returns the offsets of a content part.
func (r *Range) Part(side Side) (from, to int) {
	if r.Kind != Substitution || side == Whole {
		return r.ContentFrom(), r.ContentTo()
	}
	if side == Left {
		return r.ContentFrom(), r.Middle
	}
	return r.Middle + SeparatorWidth, r.ContentTo()
}

// PartIsEmpty reports whether a content part has no characters.
func (r *Range) PartIsEmpty(side Side) bool {
	if r.Kind == Substitution && side == Whole {
		return r.PartIsEmpty(Left) && r.PartIsEmpty(Right)
	}
	from, to := r.Part(side)
	return from >= to
}

// IsEmpty reports whether the span has no content at all.
func (r *Range) IsEmpty() bool {
	return r.PartIsEmpty(Whole)
}

func slice(text string, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(text) {
		to = len(text)
	}
	if from >= to {
		return ""
	}
	return text[from:to]
}

// Text returns the characters of a content part.
func (r *Range) Text(text string, side Side) string {
	from, to := r.Part(side)
	return slice(text, from, to)
}

// Unwrap returns the content without brackets, metadata or separator.
func (r *Range) Unwrap(text string) string {
	if r.Kind == Substitution {
		return r.Text(text, Left) + r.Text(text, Right)
	}
	return r.Text(text, Whole)
}

// Accept returns the text that remains when the suggestion is accepted.
func (r *Range) Accept(text string) string {
	switch r.Kind {
	case Addition, Highlight:
		return r.Text(text, Whole)
	case Substitution:
		return r.Text(text, Right)
	}
	return ""
}

// Reject returns the text that remains when the suggestion is rejected.
func (r *Range) Reject(text string) string {
	switch r.Kind {
	case Deletion, Highlight:
		return r.Text(text, Whole)
	case Substitution:
		return r.Text(text, Left)
	}
	return ""
}

// TouchesLeftBracket reports whether pos lies on the opening bracket.
// The inner edge is always included; outer includes From itself and
// withMeta extends the bracket over the metadata block.
func (r *Range) TouchesLeftBracket(pos int, outer, withMeta bool) bool {
	lo := r.From + 1
	if outer {
		lo = r.From
	}
	hi := r.From + BracketWidth
	if withMeta {
		hi = r.ContentFrom()
	}
	return lo <= pos && pos <= hi
}

// TouchesRightBracket reports whether pos lies on the closing bracket.
// The inner edge is always included; outer includes To itself.
func (r *Range) TouchesRightBracket(pos int, outer bool) bool {
	hi := r.To - 1
	if outer {
		hi = r.To
	}
	return r.ContentTo() <= pos && pos <= hi
}

// TouchesSeparator reports whether pos lies inside the separator of a
// Substitution; outer includes both edges.
func (r *Range) TouchesSeparator(pos int, outer bool) bool {
	if r.Kind != Substitution {
		return false
	}
	if outer {
		return r.Middle <= pos && pos <= r.Middle+SeparatorWidth
	}
	return r.Middle < pos && pos < r.Middle+SeparatorWidth
}

// InToken reports whether pos lies strictly inside a bracket, the metadata
// block or the separator, where no cursor may rest.
func (r *Range) InToken(pos int) bool {
	if r.From < pos && pos < r.ContentFrom() {
		return true
	}
	if r.ContentTo() < pos && pos < r.To {
		return true
	}
	return r.TouchesSeparator(pos, false)
}

// Encloses reports whether pos lies strictly between From and To.
func (r *Range) Encloses(pos int) bool {
	return r.From < pos && pos < r.To
}

// EnclosesRange reports whether [a, b] lies within [From, To].
func (r *Range) EnclosesRange(a, b int) bool {
	return r.From <= a && b <= r.To
}

// InContent reports whether pos is a content position, edges included,
// and returns the content part it belongs to.
func (r *Range) InContent(pos int) (Side, bool) {
	if r.Kind == Substitution {
		if lf, lt := r.Part(Left); lf <= pos && pos <= lt {
			return Left, true
		}
		if rf, rt := r.Part(Right); rf <= pos && pos <= rt {
			return Right, true
		}
		return Whole, false
	}
	return Whole, r.ContentFrom() <= pos && pos <= r.ContentTo()
}

// Split holds the fragments that divide a span in two when inserted at Pos.
type Split struct {
	Pos   int
	Left  string
	Right string
}

// Text returns both fragments joined.
func (s Split) Text() string {
	return s.Left + s.Right
}

// SplitRange computes the fragments that divide the span at pos into two
// well-formed spans of the same kind. It returns false when pos is not
// strictly inside a content part.
func (r *Range) SplitRange(pos int) (Split, bool) {
	open := r.Kind.Open()
	if r.HasMetadata() {
		open += r.metadata + MetadataTerminator
	}
	if r.Kind != Substitution {
		if r.ContentFrom() < pos && pos < r.ContentTo() {
			return Split{Pos: pos, Left: r.Kind.Close(), Right: open}, true
		}
		return Split{Pos: pos}, false
	}
	if lf, lt := r.Part(Left); lf < pos && pos < lt {
		return Split{Pos: pos, Left: Separator + r.Kind.Close(), Right: open}, true
	}
	if rf, rt := r.Part(Right); rf < pos && pos < rt {
		return Split{Pos: pos, Left: r.Kind.Close(), Right: open + Separator}, true
	}
	return Split{Pos: pos}, false
}

// Wrap builds a span of kind around content. For a Substitution, content
// is the deleted part and inserted the new part; inserted is ignored for
// every other kind.
func Wrap(kind Kind, fields Fields, content, inserted string) string {
	if !kind.Valid() {
		return content
	}
	s := kind.Open() + fields.Block() + content
	if kind == Substitution {
		s += Separator + inserted
	}
	return s + kind.Close()
}
