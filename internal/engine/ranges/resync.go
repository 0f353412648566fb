package ranges

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/critic/internal/engine/tracking"
	"github.com/dshills/critic/internal/markup"
	"github.com/dshills/critic/internal/markup/parser"
)

// region is a part of the new text that has to be reparsed.
type region struct {
	start, end int
	span       tracking.Span
}

// resync carries the bookkeeping of one Apply call.
type resync struct {
	removed map[*markup.Range]bool
	threads map[*markup.Range]bool
	fresh   int
}

// Apply repairs the collection after the document was changed to text by
// the given spans, which are sorted, non-overlapping and expressed in the
// coordinates of the previous text.
//
// Ranges overlapping a changed span are removed, survivors are shifted, and
// only the regions around the spans are reparsed. Spans that do not
// describe text fall back to a full rebuild.
func (c *Collection) Apply(text string, spans []tracking.Span) error {
	delta := 0
	for _, s := range spans {
		delta += s.Delta()
	}
	if err := tracking.Validate(spans); err != nil || c.length+delta != len(text) {
		c.logger.Warn("change spans do not describe the text, rebuilding",
			zap.Error(err),
			zap.Int("expected", c.length+delta),
			zap.Int("length", len(text)))
		c.Build(text)
		return c.verifyAgainst(text)
	}
	if len(spans) == 0 {
		return nil
	}

	rs := &resync{
		removed: make(map[*markup.Range]bool),
		threads: make(map[*markup.Range]bool),
	}
	regions := c.removeChanged(spans, rs)
	c.shiftErrors(spans, regions)
	for i := len(spans) - 1; i >= 0; i-- {
		c.index.ShiftFrom(spans[i].ToA, spans[i].Delta())
	}
	c.length = len(text)

	c.widenRegions(text, regions)
	sort.SliceStable(regions, func(i, j int) bool { return regions[i].start < regions[j].start })

	reparsed := 0
	prevStop := 0
	for i, reg := range regions {
		if i > 0 && reg.end <= prevStop {
			continue
		}
		start := max(reg.start, prevStop)
		end := max(reg.end, start)
		stop := c.reparse(text, start, end, rs)
		reparsed += stop - start
		prevStop = stop
	}

	var cands []*markup.Range
	for r := range rs.threads {
		if !rs.removed[r] {
			cands = append(cands, r)
		}
	}
	c.relinkThreads(cands)

	c.logger.Debug("ranges resynchronized",
		zap.Int("spans", len(spans)),
		zap.Int("removed", len(rs.removed)),
		zap.Int("inserted", rs.fresh),
		zap.Int("reparsed", reparsed),
		zap.Int("ranges", c.index.Len()))

	return c.verifyAgainst(text)
}

// removeChanged deletes the ranges overlapping each span and returns the
// initial reparse region of every span in new coordinates.
func (c *Collection) removeChanged(spans []tracking.Span, rs *resync) []region {
	regions := make([]region, len(spans))
	for i, s := range spans {
		reg := region{start: s.FromB, end: s.ToB, span: s}

		var hits []*markup.Range
		c.index.Search(s.FromA, s.ToA, false, func(r *markup.Range) bool {
			hits = append(hits, r)
			return true
		})
		for _, r := range hits {
			reg.start = min(reg.start, tracking.MapPos(spans, r.From, -1))
			reg.end = max(reg.end, tracking.MapPos(spans, r.To, 1))
			if rs.removed[r] {
				continue
			}
			c.index.Delete(r)
			rs.removed[r] = true
			markThread(rs.threads, r)
		}

		// Neighbours touching the span may gain or lose adjacency.
		c.index.Search(s.FromA, s.ToA, true, func(r *markup.Range) bool {
			if r.Kind == markup.Comment || len(r.Replies) > 0 {
				markThread(rs.threads, r)
			}
			return true
		})
		regions[i] = reg
	}
	return regions
}

// markThread records r and every range of the thread it belongs to.
func markThread(set map[*markup.Range]bool, r *markup.Range) {
	set[r] = true
	for _, rep := range r.Replies {
		set[rep] = true
	}
	if r.Base != nil {
		set[r.Base] = true
		for _, rep := range r.Base.Replies {
			set[rep] = true
		}
	}
}

// shiftErrors moves the unterminated brackets to new coordinates. Brackets
// touched by a span are dropped and their span's region is widened to
// rediscover them.
func (c *Collection) shiftErrors(spans []tracking.Span, regions []region) {
	kept := c.errors[:0]
	for _, e := range c.errors {
		hit := -1
		for i, s := range spans {
			if s.FromA > e+markup.BracketWidth {
				break
			}
			if (s.FromA < s.ToA && s.FromA < e+markup.BracketWidth && s.ToA > e) ||
				(s.FromA == s.ToA && e < s.FromA && s.FromA < e+markup.BracketWidth) {
				hit = i
				break
			}
		}
		if hit >= 0 {
			regions[hit].start = min(regions[hit].start, tracking.MapPos(spans, e, -1))
			continue
		}
		kept = append(kept, tracking.MapPos(spans, e, 1))
	}
	c.errors = kept
}

// widenRegions extends every region to the left so that it covers openers
// formed across the start of the span, and unterminated brackets the span
// may have closed.
func (c *Collection) widenRegions(text string, regions []region) {
	for i := range regions {
		reg := &regions[i]
		lo := max(reg.span.FromB-(markup.BracketWidth-1), 0)
		if p, ok := c.index.Before(reg.span.FromB); ok {
			lo = max(lo, p.To)
		}
		reg.start = min(reg.start, lo)

		for _, e := range c.errors {
			if e >= reg.start {
				break
			}
			if mayResolve(text, e, reg.span) {
				reg.start = e
				break
			}
		}
	}
}

// mayResolve reports whether a span could have completed the unterminated
// bracket at e.
func mayResolve(text string, e int, s tracking.Span) bool {
	kind, ok := markup.KindOfOpen(text[e:])
	if !ok {
		return true
	}
	if kind == markup.Substitution {
		return true
	}
	lo := max(s.FromB-(markup.BracketWidth-1), 0)
	hi := min(s.ToB+markup.BracketWidth-1, len(text))
	return strings.Contains(text[lo:hi], kind.Close())
}

// reparse parses [start, end) of the new text, which must start outside of
// any span, inserts the ranges found and evicts the survivors they overlap.
// It returns the position where parsing stopped.
func (c *Collection) reparse(text string, start, end int, rs *resync) int {
	var errs []int
	pos, stop := start, start
	for {
		stop = max(pos, end)
		for _, n := range c.parser.ParseRegion(text, pos, end) {
			stop = max(stop, n.To)
			if n.Type == parser.NodeError {
				errs = append(errs, n.From)
				continue
			}
			r, ok := n.Range(text)
			if !ok {
				continue
			}
			end = max(end, c.adopt(r, rs))
		}
		if end <= stop {
			break
		}
		pos = stop
	}
	c.replaceErrors(start, stop, errs)
	return stop
}

// adopt inserts a freshly parsed range. A survivor identical to it is kept
// instead; survivors it overlaps are evicted. It returns the furthest end
// of an evicted range.
func (c *Collection) adopt(r *markup.Range, rs *resync) int {
	var clash []*markup.Range
	c.index.Search(r.From, r.To, false, func(o *markup.Range) bool {
		clash = append(clash, o)
		return true
	})
	if len(clash) == 1 && clash[0].Same(r) {
		return 0
	}
	end := 0
	for _, o := range clash {
		c.index.Delete(o)
		rs.removed[o] = true
		markThread(rs.threads, o)
		end = max(end, o.To)
	}
	c.index.Insert(r)
	rs.fresh++
	if r.Kind == markup.Comment {
		rs.threads[r] = true
	} else if next, ok := c.index.AtOrAfter(r.To); ok && next.From == r.To && next.Kind == markup.Comment {
		rs.threads[r] = true
	}
	return end
}

// replaceErrors swaps the recorded brackets in [from, to) for errs.
func (c *Collection) replaceErrors(from, to int, errs []int) {
	lo := sort.SearchInts(c.errors, from)
	hi := sort.SearchInts(c.errors, to)
	out := make([]int, 0, len(c.errors)-(hi-lo)+len(errs))
	out = append(out, c.errors[:lo]...)
	out = append(out, errs...)
	out = append(out, c.errors[hi:]...)
	c.errors = out
}
