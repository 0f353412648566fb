package edit

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/critic/internal/engine/buffer"
	"github.com/dshills/critic/internal/markup"
)

// serialize rebuilds the markup of the region and returns its new text and
// the offset of every marker relative to the region start.
func (rg *region) serialize() (string, map[*piece]int) {
	var out strings.Builder
	marks := make(map[*piece]int)
	ps := rg.pieces

	for i := 0; i < len(ps); {
		p := ps[i]
		if p.group == nil {
			if p.class == marker {
				marks[p] = out.Len()
			} else {
				out.WriteString(p.text)
			}
			i++
			continue
		}
		j := rg.runEnd(i)
		writeRun(&out, ps[i:j], marks)
		i = j
	}
	return out.String(), marks
}

// runEnd returns the end of the run of pieces starting at i that form a
// single span.
func (rg *region) runEnd(i int) int {
	ps := rg.pieces
	g := ps[i].group
	last := ps[i].class
	j := i + 1
	for j < len(ps) {
		p := ps[j]
		if p.class == marker && p.group == nil {
			k := j
			for k < len(ps) && ps[k].class == marker && ps[k].group == nil {
				k++
			}
			if k < len(ps) && ps[k].group == g && ordered(last, ps[k].class) {
				j = k
				continue
			}
			break
		}
		if p.group != g || !ordered(last, p.class) {
			break
		}
		if p.class != marker {
			last = p.class
		}
		j++
	}
	return j
}

// ordered reports whether next may follow prev inside one span: the deleted
// part of a Substitution always comes first.
func ordered(prev, next class) bool {
	return !(prev == added && next == deleted)
}

func runKind(g *group, hasDel, hasAdd bool) markup.Kind {
	switch {
	case g.fixed, g.kind == markup.Highlight, g.kind == markup.Comment:
		return g.kind
	case hasDel && hasAdd, g.kind == markup.Substitution:
		return markup.Substitution
	case hasDel:
		return markup.Deletion
	case hasAdd:
		return markup.Addition
	}
	return g.kind
}

func writeRun(out *strings.Builder, run []*piece, marks map[*piece]int) {
	g := run[0].group
	var del, add strings.Builder
	type pending struct {
		m      *piece
		stream class
		off    int
	}
	var ms []pending
	var hasDel, hasAdd, untouched bool
	for _, p := range run {
		if p.from >= 0 && p.text == "" && p.class != marker {
			untouched = true
		}
		switch p.class {
		case deleted:
			del.WriteString(p.text)
			hasDel = true
		case marker:
			ms = append(ms, pending{m: p})
		case added:
			add.WriteString(p.text)
			hasAdd = true
		default:
			add.WriteString(p.text)
		}
	}
	kind := runKind(g, hasDel, hasAdd)

	base := out.Len()
	if del.Len()+add.Len() == 0 && kind != markup.Comment && !untouched {
		for _, pm := range ms {
			marks[pm.m] = base
		}
		return
	}

	// Place markers in the deleted or added stream.
	dn, an := 0, 0
	mi := 0
	for idx, p := range run {
		switch p.class {
		case deleted:
			dn += len(p.text)
		case marker:
			stream := added
			if kind == markup.Substitution {
				switch {
				case an > 0:
					stream = added
				case hasDeletedAfter(run[idx+1:]):
					stream = deleted
				case p.side == deleted:
					stream = deleted
				}
			} else if kind == markup.Deletion {
				stream = deleted
			}
			ms[mi].stream = stream
			if stream == deleted {
				ms[mi].off = dn
			} else {
				ms[mi].off = an
			}
			mi++
		default:
			an += len(p.text)
		}
	}

	open := kind.Open() + g.metadataBlock()
	content := base + len(open)
	out.WriteString(open)
	switch kind {
	case markup.Substitution:
		out.WriteString(del.String())
		out.WriteString(markup.Separator)
		out.WriteString(add.String())
		for _, pm := range ms {
			if pm.stream == deleted {
				marks[pm.m] = content + pm.off
			} else {
				marks[pm.m] = content + del.Len() + markup.SeparatorWidth + pm.off
			}
		}
	default:
		out.WriteString(del.String())
		out.WriteString(add.String())
		for _, pm := range ms {
			marks[pm.m] = content + pm.off
		}
	}
	out.WriteString(kind.Close())
}

func hasDeletedAfter(run []*piece) bool {
	for _, p := range run {
		if p.class == deleted {
			return true
		}
	}
	return false
}

// trimmedEdit returns the edit replacing text[from:to) with repl, shrunk to
// the bytes that actually change. Cuts stay on rune boundaries.
func trimmedEdit(text string, from, to int, repl string) (buffer.Edit, bool) {
	old := text[from:to]
	if old == repl {
		return buffer.Edit{}, false
	}
	p := 0
	for p < len(old) && p < len(repl) && old[p] == repl[p] {
		p++
	}
	for p > 0 && (!runeStart(old, p) || !runeStart(repl, p)) {
		p--
	}
	s := 0
	for s < len(old)-p && s < len(repl)-p && old[len(old)-1-s] == repl[len(repl)-1-s] {
		s++
	}
	for s > 0 && (!runeStart(old, len(old)-s) || !runeStart(repl, len(repl)-s)) {
		s--
	}
	return buffer.NewEdit(from+p, to-s, repl[p:len(repl)-s]), true
}

func runeStart(s string, i int) bool {
	return i >= len(s) || utf8.RuneStart(s[i])
}
