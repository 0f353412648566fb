package ranges

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/dshills/critic/internal/markup"
	"github.com/dshills/critic/internal/markup/parser"
)

// Verify checks the invariants of the collection against text: ranges are
// sorted, do not overlap, are long enough to hold their brackets, carry a
// separator inside a Substitution, are found by the index, and equal the
// ranges of a full parse.
func (c *Collection) Verify(text string) error {
	all := c.Ranges()
	if len(all) != c.index.Len() {
		return fmt.Errorf("%w: walk yields %d ranges, index counts %d", ErrInconsistent, len(all), c.index.Len())
	}
	if c.length != len(text) {
		return fmt.Errorf("%w: collection length %d, text %d", ErrInconsistent, c.length, len(text))
	}

	prevTo := 0
	for i, r := range all {
		if r.From < prevTo {
			return fmt.Errorf("%w: %s overlaps its predecessor", ErrInconsistent, r)
		}
		if r.Len() < markup.MinRangeLen || r.To > len(text) {
			return fmt.Errorf("%w: %s out of bounds", ErrInconsistent, r)
		}
		if r.Kind == markup.Substitution &&
			(r.Middle < r.ContentFrom() || r.Middle+markup.SeparatorWidth > r.ContentTo()) {
			return fmt.Errorf("%w: %s separator misplaced", ErrInconsistent, r)
		}
		found := false
		c.index.Search(r.From, r.From, true, func(o *markup.Range) bool {
			found = o == r
			return !found
		})
		if !found {
			return fmt.Errorf("%w: %s (#%d) not reachable in index", ErrInconsistent, r, i)
		}
		if c.IndexOf(r) != i {
			return fmt.Errorf("%w: %s (#%d) ranked %d", ErrInconsistent, r, i, c.IndexOf(r))
		}
		prevTo = r.To
	}
	if !sort.IntsAreSorted(c.errors) {
		return fmt.Errorf("%w: bracket errors unsorted", ErrInconsistent)
	}

	var want []*markup.Range
	var wantErrs []int
	for _, n := range c.parser.ParseRegion(text, 0, len(text)) {
		if n.Type == parser.NodeError {
			wantErrs = append(wantErrs, n.From)
			continue
		}
		if r, ok := n.Range(text); ok {
			want = append(want, r)
		}
	}
	if len(want) != len(all) {
		return fmt.Errorf("%w: %d ranges, full parse has %d", ErrInconsistent, len(all), len(want))
	}
	for i := range want {
		if !want[i].Same(all[i]) {
			return fmt.Errorf("%w: range %s, full parse has %s", ErrInconsistent, all[i], want[i])
		}
	}
	if len(wantErrs) != len(c.errors) {
		return fmt.Errorf("%w: %d bracket errors, full parse has %d", ErrInconsistent, len(c.errors), len(wantErrs))
	}
	for i := range wantErrs {
		if wantErrs[i] != c.errors[i] {
			return fmt.Errorf("%w: bracket error at %d, full parse has %d", ErrInconsistent, c.errors[i], wantErrs[i])
		}
	}
	return nil
}

func (c *Collection) verifyAgainst(text string) error {
	if !c.verify {
		return nil
	}
	if err := c.Verify(text); err != nil {
		c.logger.Error("range collection verification failed", zap.Error(err))
		return err
	}
	return nil
}
