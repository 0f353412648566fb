package markup

import "strings"

// Decision selects how Resolve treats a range.
type Decision uint8

const (
	Keep Decision = iota // leave the markup untouched
	Accept
	Reject
	Strip // replace the span with its unwrapped content
)

// Resolve rewrites text by applying decide to every range. Ranges must be
// sorted by From and must not overlap.
func Resolve(text string, ranges []*Range, decide func(*Range) Decision) string {
	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, r := range ranges {
		if r.From < pos || r.To > len(text) {
			continue
		}
		b.WriteString(text[pos:r.From])
		switch decide(r) {
		case Accept:
			b.WriteString(r.Accept(text))
		case Reject:
			b.WriteString(r.Reject(text))
		case Strip:
			b.WriteString(r.Unwrap(text))
		default:
			b.WriteString(text[r.From:r.To])
		}
		pos = r.To
	}
	b.WriteString(text[pos:])
	return b.String()
}

// AcceptAll accepts every suggestion and drops comments.
func AcceptAll(text string, ranges []*Range) string {
	return Resolve(text, ranges, func(*Range) Decision { return Accept })
}

// RejectAll rejects every suggestion and drops comments.
func RejectAll(text string, ranges []*Range) string {
	return Resolve(text, ranges, func(*Range) Decision { return Reject })
}

// StripAll removes every bracket, metadata block and separator.
func StripAll(text string, ranges []*Range) string {
	return Resolve(text, ranges, func(*Range) Decision { return Strip })
}
