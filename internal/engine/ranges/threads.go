package ranges

import (
	"sort"

	"github.com/dshills/critic/internal/markup"
)

// relinkThreads recomputes the threads of the given ranges.
//
// A thread is a maximal run of directly adjacent comments. When the run
// directly follows a non-comment range, that range is the base and every
// comment of the run replies to it. Otherwise the first comment is the head
// and the others reply to it.
func (c *Collection) relinkThreads(cands []*markup.Range) {
	if len(cands) == 0 {
		return
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].From < cands[j].From })

	done := make(map[*markup.Range]bool)
	for _, r := range cands {
		i := c.IndexOf(r)
		if i < 0 {
			continue
		}
		if r.Kind != markup.Comment {
			if !c.adjacentComment(i + 1) {
				r.Replies = nil
				continue
			}
			i++
		}
		for c.adjacentComment(i) && c.At(i-1).Kind == markup.Comment {
			i--
		}
		if done[c.At(i)] {
			continue
		}
		done[c.At(i)] = true
		c.linkRun(i)
	}
}

// adjacentComment reports whether the i-th range is a comment starting
// where its predecessor ends.
func (c *Collection) adjacentComment(i int) bool {
	r, prev := c.At(i), c.At(i-1)
	return r != nil && prev != nil &&
		r.Kind == markup.Comment &&
		prev.To == r.From
}

// linkRun links the run of comments headed by the i-th range.
func (c *Collection) linkRun(i int) {
	run := []*markup.Range{c.At(i)}
	for j := i + 1; c.adjacentComment(j); j++ {
		run = append(run, c.At(j))
	}
	for _, m := range run {
		m.Base = nil
		m.Replies = nil
	}

	if base := c.At(i - 1); base != nil && base.To == run[0].From {
		base.Replies = append([]*markup.Range(nil), run...)
		for _, m := range run {
			m.Base = base
		}
		return
	}
	head := run[0]
	head.Replies = append([]*markup.Range(nil), run[1:]...)
	for _, m := range run[1:] {
		m.Base = head
	}
}

// Thread returns the base of the thread r belongs to and its comments in
// document order. For a range that is not part of a thread it returns r
// and nil.
func (c *Collection) Thread(r *markup.Range) (*markup.Range, []*markup.Range) {
	base := r
	if r.Base != nil {
		base = r.Base
	}
	if base.Kind == markup.Comment {
		return base, append([]*markup.Range{base}, base.Replies...)
	}
	if len(base.Replies) == 0 {
		return base, nil
	}
	return base, append([]*markup.Range(nil), base.Replies...)
}
