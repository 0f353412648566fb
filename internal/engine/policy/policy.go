// Package policy defines the per-kind tables that steer cursor movement and
// editing around markup spans.
//
// Tables are plain values supplied by the caller (usually decoded from the
// settings file) and are only ever read by the engine.
package policy

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/dshills/critic/internal/markup"
)

// Movement controls how the cursor passes through a span.
type Movement uint8

const (
	// SkipMetadata treats each bracket, metadata block and separator as a
	// single atomic step.
	SkipMetadata Movement = iota
	// Unchanged moves through the span character by character.
	Unchanged
	// SkipEntire steps over the whole span at once.
	SkipEntire
)

// Bracket controls where the cursor rests at an outer span edge.
type Bracket uint8

const (
	StayOutside Bracket = iota
	StayInside
)

// EditMode controls edits inside Highlight and Comment content.
type EditMode uint8

const (
	// EditSplit splits the span and puts the suggestion between the halves.
	EditSplit EditMode = iota
	// EditRaw edits the span content directly without a suggestion.
	EditRaw
	// EditDrop ignores the edit.
	EditDrop
)

// FieldPolicy decides what happens when an edit would merge into a span
// whose metadata field differs from the edit's.
type FieldPolicy uint8

const (
	// Split keeps the spans apart. It is the fallback for unconfigured fields.
	Split FieldPolicy = iota
	// Skip ignores the field when comparing.
	Skip
	// MoveOutside places the new content after (or before) the span.
	MoveOutside
	// PreferOld merges and keeps the span's value.
	PreferOld
	// PreferNew merges and rewrites the span's metadata with the edit's.
	PreferNew
)

var (
	movementNames = []string{SkipMetadata: "skip-metadata", Unchanged: "unchanged", SkipEntire: "skip-entire"}
	bracketNames  = []string{StayOutside: "stay-outside", StayInside: "stay-inside"}
	editNames     = []string{EditSplit: "split", EditRaw: "raw", EditDrop: "drop"}
	fieldNames    = []string{Split: "split", Skip: "skip", MoveOutside: "move-outside", PreferOld: "prefer-old", PreferNew: "prefer-new"}
)

func (m Movement) String() string    { return name(movementNames, int(m)) }
func (b Bracket) String() string     { return name(bracketNames, int(b)) }
func (e EditMode) String() string    { return name(editNames, int(e)) }
func (f FieldPolicy) String() string { return name(fieldNames, int(f)) }

func name(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return "unknown"
}

func parse(names []string, what, s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", what, s)
}

// ParseMovement parses a Movement name such as "skip-entire".
func ParseMovement(s string) (Movement, error) {
	i, err := parse(movementNames, "movement", s)
	return Movement(i), err
}

// ParseBracket parses a Bracket name such as "stay-inside".
func ParseBracket(s string) (Bracket, error) {
	i, err := parse(bracketNames, "bracket policy", s)
	return Bracket(i), err
}

// ParseEditMode parses an EditMode name such as "raw".
func ParseEditMode(s string) (EditMode, error) {
	i, err := parse(editNames, "edit mode", s)
	return EditMode(i), err
}

// ParseFieldPolicy parses a FieldPolicy name such as "prefer-new".
func ParseFieldPolicy(s string) (FieldPolicy, error) {
	i, err := parse(fieldNames, "merge policy", s)
	return FieldPolicy(i), err
}

// Span is the policy of one kind.
type Span struct {
	Movement Movement
	Bracket  Bracket
	Edit     EditMode
}

// Table holds the policy of every kind plus the metadata merge rules.
type Table struct {
	Kinds [markup.Comment + 1]Span
	Merge Merge
}

// For returns the policy of kind.
func (t *Table) For(kind markup.Kind) Span {
	if t == nil || int(kind) >= len(t.Kinds) {
		return Span{}
	}
	return t.Kinds[kind]
}

// Set replaces the policy of kind.
func (t *Table) Set(kind markup.Kind, s Span) {
	if int(kind) < len(t.Kinds) {
		t.Kinds[kind] = s
	}
}

// Default returns the table used when nothing is configured: atomic
// brackets, cursor kept outside, highlights split by edits, comments edited
// in place, and timestamps refreshed on merge.
func Default() Table {
	var t Table
	for _, k := range markup.Kinds {
		t.Kinds[k] = Span{Movement: SkipMetadata, Bracket: StayOutside}
	}
	t.Kinds[markup.Comment].Edit = EditRaw
	t.Merge = Merge{Time: PreferNew}
	return t
}

// Merge holds one FieldPolicy per metadata field.
type Merge struct {
	Author FieldPolicy
	Time   FieldPolicy
	Label  FieldPolicy
}

// Field returns the policy of a metadata key.
func (m Merge) Field(key string) FieldPolicy {
	switch key {
	case markup.FieldAuthor:
		return m.Author
	case markup.FieldTime:
		return m.Time
	case markup.FieldLabel:
		return m.Label
	}
	return Split
}

// Action is the outcome of comparing span metadata with an edit's.
type Action uint8

const (
	// Absorb merges the edit into the span, leaving its metadata alone.
	Absorb Action = iota
	// Rewrite merges the edit and replaces the span's metadata.
	Rewrite
	// Separate keeps the edit in a span of its own next to (or splitting) the span.
	Separate
	// Outside moves the edit past the span boundary.
	Outside
)

func (a Action) rank() int {
	switch a {
	case Rewrite:
		return 1
	case Separate, Outside:
		return 2
	}
	return 0
}

// Merges reports whether the action absorbs the edit into the span.
func (a Action) Merges() bool {
	return a == Absorb || a == Rewrite
}

func sameValue(key, a, b string) bool {
	if key == markup.FieldAuthor {
		fold := cases.Fold()
		return fold.String(a) == fold.String(b)
	}
	return a == b
}

// Resolve compares existing span metadata with the metadata of an edit and
// returns the strongest action required by the differing fields. A field
// the span leaves unset never keeps the edit apart; under PreferNew the
// edit's value fills it in.
func (m Merge) Resolve(existing, incoming markup.Fields) Action {
	act := Absorb
	for _, key := range markup.FieldKeys {
		old := existing.Value(key)
		if sameValue(key, old, incoming.Value(key)) {
			continue
		}
		var a Action
		switch m.Field(key) {
		case Skip, PreferOld:
			a = Absorb
		case PreferNew:
			a = Rewrite
		case MoveOutside:
			a = Outside
		default:
			a = Separate
		}
		if old == "" && a != Rewrite {
			a = Absorb
		}
		if a.rank() > act.rank() {
			act = a
		}
	}
	return act
}
