package traverse

import (
	"unicode"
	"unicode/utf8"
)

// Category classifies a character for group movement.
type Category uint8

const (
	Space Category = iota
	Word
	Other
)

func (c Category) String() string {
	switch c {
	case Space:
		return "space"
	case Word:
		return "word"
	}
	return "other"
}

// CategoryOf returns the category of r.
func CategoryOf(r rune) Category {
	switch {
	case unicode.IsSpace(r):
		return Space
	case r == '_', unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r):
		return Word
	}
	return Other
}

// categoryOfCluster categorizes a grapheme cluster by its first rune.
func categoryOfCluster(s string) Category {
	r, _ := utf8.DecodeRuneInString(s)
	return CategoryOf(r)
}
