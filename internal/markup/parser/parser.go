// Package parser turns suggestion markup into a flat syntax tree.
//
// The grammar has no nesting: outside of a span the scanner looks for an
// opening bracket and, once inside, only for the matching metadata
// terminator, separator and closing bracket. Positions outside of any span
// are therefore safe restart points, which is what allows the range
// collection to reparse a small region after an edit.
//
// An opening bracket without a matching close (or a Substitution without a
// separator) produces an Error node covering the bracket; scanning resumes
// right after it and the bracket is treated as plain text.
package parser

import (
	"strings"

	"github.com/dshills/critic/internal/markup"
)

// NodeType names a syntax node.
type NodeType uint8

const (
	NodeAddition NodeType = iota + 1
	NodeDeletion
	NodeSubstitution
	NodeHighlight
	NodeComment
	NodeSeparator
	NodeMetadata
	NodeError
)

var nodeNames = map[NodeType]string{
	NodeAddition:     "Addition",
	NodeDeletion:     "Deletion",
	NodeSubstitution: "Substitution",
	NodeHighlight:    "Highlight",
	NodeComment:      "Comment",
	NodeSeparator:    "Separator",
	NodeMetadata:     "Metadata",
	NodeError:        "Error",
}

func (t NodeType) String() string {
	if s, ok := nodeNames[t]; ok {
		return s
	}
	return "Unknown"
}

// Kind returns the span kind of a span node, markup.None otherwise.
func (t NodeType) Kind() markup.Kind {
	if t >= NodeAddition && t <= NodeComment {
		return markup.Kind(t)
	}
	return markup.None
}

func nodeTypeOf(k markup.Kind) NodeType {
	return NodeType(k)
}

// Node is a syntax node covering [From, To).
type Node struct {
	Type     NodeType
	From     int
	To       int
	Children []Node
}

// Child returns the first child of the given type.
func (n Node) Child(t NodeType) (Node, bool) {
	for _, c := range n.Children {
		if c.Type == t {
			return c, true
		}
	}
	return Node{}, false
}

// Range converts a span node into a markup range. Error and child nodes
// yield false.
func (n Node) Range(text string) (*markup.Range, bool) {
	kind := n.Type.Kind()
	if kind == markup.None {
		return nil, false
	}
	r := markup.New(kind, n.From, n.To)
	if sep, ok := n.Child(NodeSeparator); ok {
		r.Middle = sep.From
	}
	if meta, ok := n.Child(NodeMetadata); ok {
		r.SetMetadata(meta.From, text[meta.From:meta.To-len(markup.MetadataTerminator)])
	}
	return r, true
}

// Tree is the result of parsing a whole document.
type Tree struct {
	Nodes []Node
}

// Ranges returns the ranges of all span nodes, skipping errors.
func (t *Tree) Ranges(text string) []*markup.Range {
	out := make([]*markup.Range, 0, len(t.Nodes))
	for _, n := range t.Nodes {
		if r, ok := n.Range(text); ok {
			out = append(out, r)
		}
	}
	return out
}

// Errors returns the Error nodes of the tree.
func (t *Tree) Errors() []Node {
	var out []Node
	for _, n := range t.Nodes {
		if n.Type == NodeError {
			out = append(out, n)
		}
	}
	return out
}

// Parse parses the whole text.
func Parse(text string) *Tree {
	return &Tree{Nodes: ParseRegion(text, 0, len(text))}
}

// Scanner implements the region parser used by the range collection.
type Scanner struct{}

// ParseRegion implements ranges.Parser.
func (Scanner) ParseRegion(text string, from, to int) []Node {
	return ParseRegion(text, from, to)
}

// ParseRegion scans text starting at from, which must lie outside of any
// span, and stops at the first position outside of a span at or after to.
// Spans starting before to are always scanned to completion.
func ParseRegion(text string, from, to int) []Node {
	var nodes []Node
	pos := from
	if pos < 0 {
		pos = 0
	}
	for pos < len(text) && pos < to {
		i := strings.IndexByte(text[pos:], '{')
		if i < 0 {
			break
		}
		start := pos + i
		if start >= to {
			break
		}
		kind, ok := markup.KindOfOpen(text[start:])
		if !ok {
			pos = start + 1
			continue
		}
		n, ok := scanSpan(text, start, kind)
		if !ok {
			nodes = append(nodes, Node{Type: NodeError, From: start, To: start + markup.BracketWidth})
			pos = start + markup.BracketWidth
			continue
		}
		nodes = append(nodes, n)
		pos = n.To
	}
	return nodes
}

func scanSpan(text string, start int, kind markup.Kind) (Node, bool) {
	n := Node{Type: nodeTypeOf(kind), From: start}
	cs := start + markup.BracketWidth
	closeTok := kind.Close()

	// Metadata ends before the first closing token, so a span never depends
	// on text past its own close.
	if cs < len(text) && text[cs] == '{' {
		limit := len(text)
		if c := strings.Index(text[cs:], closeTok); c >= 0 {
			limit = cs + c
		}
		if j := strings.Index(text[cs:limit], "}"+markup.MetadataTerminator); j >= 0 {
			raw := text[cs : cs+j+1]
			if markup.ValidMetadata(raw) {
				end := cs + j + 1 + len(markup.MetadataTerminator)
				n.Children = append(n.Children, Node{Type: NodeMetadata, From: cs, To: end})
				cs = end
			}
		}
	}

	searchFrom := cs
	if kind == markup.Substitution {
		sep := strings.Index(text[cs:], markup.Separator)
		if sep < 0 {
			return Node{}, false
		}
		if first := strings.Index(text[cs:], closeTok); first >= 0 && first < sep {
			return Node{}, false
		}
		sepAt := cs + sep
		n.Children = append(n.Children, Node{Type: NodeSeparator, From: sepAt, To: sepAt + markup.SeparatorWidth})
		searchFrom = sepAt + markup.SeparatorWidth
	}

	c := strings.Index(text[searchFrom:], closeTok)
	if c < 0 {
		return Node{}, false
	}
	n.To = searchFrom + c + markup.BracketWidth
	return n, true
}
