package tracking

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff computes the change spans that turn oldText into newText.
//
// Adjacent deletions and insertions are joined into a single span, so a
// replaced word yields one span rather than a delete and an insert.
func Diff(oldText, newText string) []Span {
	if oldText == newText {
		return nil
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, true)

	var spans []Span
	var open *Span
	a, b := 0, 0
	for _, d := range diffs {
		n := len(d.Text)
		if d.Type == diffmatchpatch.DiffEqual {
			if open != nil {
				spans = append(spans, *open)
				open = nil
			}
			a += n
			b += n
			continue
		}
		if open == nil {
			open = &Span{FromA: a, ToA: a, FromB: b, ToB: b}
		}
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			a += n
			open.ToA = a
		case diffmatchpatch.DiffInsert:
			b += n
			open.ToB = b
		}
	}
	if open != nil {
		spans = append(spans, *open)
	}
	return spans
}
