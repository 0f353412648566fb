package traverse

import (
	"github.com/dshills/critic/internal/engine/policy"
	"github.com/dshills/critic/internal/markup"
)

// Group moves pos over one group of characters of the same category, the
// way word movement works in plain text. Brackets, separators and skipped
// spans are zero-width. A leading run of spaces joins the group that
// follows it.
//
// When the group ends next to crossed tokens, several positions are
// equivalent; the bracket policy of the first token's range picks one.
func (c Context) Group(pos int, backward bool) int {
	pos = c.Correct(pos, backward)

	var (
		cat     Category
		started bool
		first   *markup.Range
		cands   []int
	)
	for {
		u := c.unit(pos, backward)
		if u.kind == unitNone {
			break
		}
		if u.kind == unitChar {
			from, to := pos, u.to
			if backward {
				from, to = to, from
			}
			next := categoryOfCluster(c.Text[from:to])
			if started {
				if cat == Space {
					cat = next
				}
				if next != cat {
					break
				}
			} else {
				cat, started = next, true
			}
			pos = u.to
			first, cands = nil, cands[:0]
			continue
		}
		if first == nil {
			first = u.r
			cands = append(cands, pos)
		}
		pos = u.to
		if c.Valid(pos) {
			cands = append(cands, pos)
		}
	}
	if !started || first == nil || len(cands) == 0 {
		return c.stayInside(pos, backward)
	}
	return c.pickEquivalent(first, cands)
}

// pickEquivalent chooses among positions separated only by zero-width
// units. A range that keeps the cursor inside wins a candidate within its
// content; otherwise the first candidate outside of it is taken.
func (c Context) pickEquivalent(r *markup.Range, cands []int) int {
	p := c.policy(r)
	if p.Movement == policy.SkipMetadata && p.Bracket == policy.StayInside {
		for _, pos := range cands {
			if r.Encloses(pos) {
				return pos
			}
		}
	}
	for _, pos := range cands {
		if !r.Encloses(pos) {
			return pos
		}
	}
	return cands[len(cands)-1]
}
