package edit

import "github.com/dshills/critic/internal/markup"

// class is the role of a piece of content.
type class uint8

const (
	plain class = iota
	added
	deleted
	// kept is the content of a Highlight or Comment.
	kept
	// marker is a zero-width piece recording a cursor position.
	marker
)

// group is a span of the rebuilt region.
type group struct {
	kind   markup.Kind
	orig   *markup.Range
	fields markup.Fields
	// rewrite replaces the metadata of an existing range with fields.
	rewrite bool
	// fixed keeps kind regardless of the classes of the content.
	fixed bool
}

func (g *group) metadataBlock() string {
	if g.orig != nil && !g.rewrite {
		if g.orig.HasMetadata() {
			return g.orig.Metadata() + markup.MetadataTerminator
		}
		return ""
	}
	return g.fields.Block()
}

type piece struct {
	text  string
	class class
	group *group
	// from is the offset of the piece in the old text, -1 for new content.
	from int
	// side is the content side a marker prefers between the deleted and
	// added part of a Substitution.
	side class
}

func (p *piece) to() int {
	return p.from + len(p.text)
}

// region is the part of the document an operator rewrites.
type region struct {
	text   string
	from   int
	to     int
	ranges []*markup.Range
	pieces []*piece
	groups map[*markup.Range]*group
}

func newRegion(text string, rs []*markup.Range, a, b int) *region {
	rg := &region{
		text:   text,
		from:   a,
		to:     b,
		ranges: rs,
		groups: make(map[*markup.Range]*group, len(rs)),
	}
	if len(rs) > 0 {
		rg.from = min(a, rs[0].From)
		rg.to = max(b, rs[len(rs)-1].To)
	}

	pos := rg.from
	for _, r := range rs {
		if r.From > pos {
			rg.add(pos, r.From, plain, nil)
		}
		g := &group{kind: r.Kind, orig: r, fields: r.Fields()}
		rg.groups[r] = g
		switch r.Kind {
		case markup.Addition:
			rg.add(r.ContentFrom(), r.ContentTo(), added, g)
		case markup.Deletion:
			rg.add(r.ContentFrom(), r.ContentTo(), deleted, g)
		case markup.Substitution:
			lf, lt := r.Part(markup.Left)
			rf, rt := r.Part(markup.Right)
			if lf < lt {
				rg.add(lf, lt, deleted, g)
			}
			if rf < rt || lf == lt {
				rg.add(rf, rt, added, g)
			}
		default:
			rg.add(r.ContentFrom(), r.ContentTo(), kept, g)
		}
		pos = r.To
	}
	if pos < rg.to {
		rg.add(pos, rg.to, plain, nil)
	}
	rg.split(a)
	rg.split(b)
	return rg
}

func (rg *region) add(from, to int, cl class, g *group) {
	rg.pieces = append(rg.pieces, &piece{text: rg.text[from:to], class: cl, group: g, from: from})
}

// split divides the piece strictly containing pos.
func (rg *region) split(pos int) {
	for i, p := range rg.pieces {
		if p.from < 0 || pos <= p.from || pos >= p.to() {
			continue
		}
		tail := &piece{text: p.text[pos-p.from:], class: p.class, group: p.group, from: pos}
		p.text = p.text[:pos-p.from]
		rg.insertAt(i+1, tail)
		return
	}
}

func (rg *region) insertAt(i int, p *piece) {
	rg.pieces = append(rg.pieces, nil)
	copy(rg.pieces[i+1:], rg.pieces[i:])
	rg.pieces[i] = p
}

func (rg *region) remove(p *piece) {
	for i, q := range rg.pieces {
		if q == p {
			rg.pieces = append(rg.pieces[:i], rg.pieces[i+1:]...)
			return
		}
	}
}

// drop removes every piece of g.
func (rg *region) drop(g *group) {
	rest := rg.pieces[:0]
	for _, p := range rg.pieces {
		if p.group != g {
			rest = append(rest, p)
		}
	}
	rg.pieces = rest
}

// cut returns the index of the first old piece at or after pos.
func (rg *region) cut(pos int) int {
	for i, p := range rg.pieces {
		if p.from >= pos {
			return i
		}
	}
	return len(rg.pieces)
}

// covered returns the old pieces inside [a, b). Empty pieces count only
// when strictly inside.
func (rg *region) covered(a, b int) []*piece {
	var out []*piece
	for _, p := range rg.pieces {
		if p.from < 0 || p.class == marker {
			continue
		}
		if len(p.text) > 0 && a <= p.from && p.to() <= b {
			out = append(out, p)
		} else if len(p.text) == 0 && a < p.from && p.from < b {
			out = append(out, p)
		}
	}
	return out
}

// within returns the range whose content holds pos, edges included.
func (rg *region) within(pos int) (*markup.Range, markup.Side) {
	for _, r := range rg.ranges {
		if side, ok := r.InContent(pos); ok {
			return r, side
		}
	}
	return nil, markup.Whole
}

// prevContent returns the index of the last non-marker piece before i.
func (rg *region) prevContent(i int) int {
	for j := i - 1; j >= 0; j-- {
		if rg.pieces[j].class != marker {
			return j
		}
	}
	return -1
}

// nextContent returns the index of the first non-marker piece at or after i.
func (rg *region) nextContent(i int) int {
	for j := i; j < len(rg.pieces); j++ {
		if rg.pieces[j].class != marker {
			return j
		}
	}
	return -1
}

// lastOf returns the index just past the last piece of g, or -1.
func (rg *region) lastOf(g *group) int {
	for j := len(rg.pieces) - 1; j >= 0; j-- {
		if rg.pieces[j].group == g {
			return j + 1
		}
	}
	return -1
}

// mark inserts a cursor marker at i.
func (rg *region) mark(i int, g *group, side class) *piece {
	m := &piece{class: marker, group: g, from: -1, side: side}
	rg.insertAt(i, m)
	return m
}
