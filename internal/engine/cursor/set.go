package cursor

import "sort"

// Set holds the selections of a session sorted by start position.
// The primary selection is tracked separately from the sort order.
type Set struct {
	selections []Selection
	primary    int
}

// NewSet creates a set from selections. An empty input yields a caret at 0.
func NewSet(sels ...Selection) *Set {
	s := &Set{}
	s.Reset(sels)
	return s
}

// Reset replaces all selections. The first given selection becomes primary.
func (s *Set) Reset(sels []Selection) {
	if len(sels) == 0 {
		sels = []Selection{Caret(0)}
	}
	first := sels[0]
	s.selections = make([]Selection, len(sels))
	copy(s.selections, sels)
	s.sort()
	for i, sel := range s.selections {
		if sel == first {
			s.primary = i
			break
		}
	}
}

// Primary returns the primary selection.
func (s *Set) Primary() Selection {
	return s.selections[s.primary]
}

// All returns a copy of all selections in ascending order.
func (s *Set) All() []Selection {
	out := make([]Selection, len(s.selections))
	copy(out, s.selections)
	return out
}

// Count returns the number of selections.
func (s *Set) Count() int {
	return len(s.selections)
}

// Clamp clamps every selection to [0, maxOffset].
func (s *Set) Clamp(maxOffset ByteOffset) {
	for i, sel := range s.selections {
		s.selections[i] = sel.Clamp(maxOffset)
	}
}

func (s *Set) sort() {
	sort.SliceStable(s.selections, func(i, j int) bool {
		return s.selections[i].Start() < s.selections[j].Start()
	})
}
