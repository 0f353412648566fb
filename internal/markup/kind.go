package markup

import "strings"

// Token widths shared by every kind.
const (
	BracketWidth   = 3
	SeparatorWidth = 2
	// MinRangeLen is the length of an empty span without metadata.
	MinRangeLen = 2 * BracketWidth

	// Separator divides the deleted and inserted parts of a Substitution.
	Separator = "~>"
	// MetadataTerminator ends the metadata block.
	MetadataTerminator = "@@"
)

// Kind identifies the type of a markup span.
type Kind uint8

const (
	// None is the pseudo kind of text without markup. It is never the kind
	// of a Range but can be requested when clearing markup.
	None Kind = iota
	Addition
	Deletion
	Substitution
	Highlight
	Comment
)

// Kinds lists every real span kind in declaration order.
var Kinds = [...]Kind{Addition, Deletion, Substitution, Highlight, Comment}

var kindNames = [...]string{
	None:         "none",
	Addition:     "addition",
	Deletion:     "deletion",
	Substitution: "substitution",
	Highlight:    "highlight",
	Comment:      "comment",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind converts a name produced by String back into a Kind.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return None, false
}

// Valid reports whether k is a real span kind.
func (k Kind) Valid() bool {
	return k >= Addition && k <= Comment
}

// Open returns the opening bracket of the kind.
func (k Kind) Open() string {
	switch k {
	case Addition:
		return "{++"
	case Deletion:
		return "{--"
	case Substitution:
		return "{~~"
	case Highlight:
		return "{=="
	case Comment:
		return "{>>"
	}
	return ""
}

// Close returns the closing bracket of the kind.
func (k Kind) Close() string {
	switch k {
	case Addition:
		return "++}"
	case Deletion:
		return "--}"
	case Substitution:
		return "~~}"
	case Highlight:
		return "==}"
	case Comment:
		return "<<}"
	}
	return ""
}

// KindOfOpen returns the kind whose opening bracket starts s.
func KindOfOpen(s string) (Kind, bool) {
	if len(s) < BracketWidth {
		return None, false
	}
	for _, k := range Kinds {
		if s[:BracketWidth] == k.Open() {
			return k, true
		}
	}
	return None, false
}
