// Package interval provides an interval index over non-overlapping items.
//
// The index is a treap ordered by item start and augmented with the maximum
// end of every subtree. Shifting all items at or after a position is done by
// splitting the treap and tagging the right half with a pending delta, so it
// costs O(log n) no matter how many items move. Pending deltas are pushed
// down, and applied to the items themselves, whenever a query or update
// passes through a node.
//
// Tree is not safe for concurrent use.
package interval

import "math/rand/v2"

// Accessor tells the tree how to read and move its items.
type Accessor[T any] struct {
	// Bounds returns the half-open interval [start, end) of an item.
	Bounds func(T) (start, end int)
	// Shift moves an item by delta.
	Shift func(T, int)
}

type node[T comparable] struct {
	item        T
	prio        uint64
	left, right *node[T]
	maxEnd      int
	size        int
	lazy        int
}

// Tree is an interval treap.
type Tree[T comparable] struct {
	root *node[T]
	acc  Accessor[T]
	rng  *rand.Rand
}

// New creates an empty tree.
func New[T comparable](acc Accessor[T]) *Tree[T] {
	return &Tree[T]{
		acc: acc,
		rng: rand.New(rand.NewPCG(0x9e3779b97f4a7c15, 0xbf58476d1ce4e5b9)),
	}
}

// Len returns the number of items.
func (t *Tree[T]) Len() int {
	return size(t.root)
}

// Clear removes every item.
func (t *Tree[T]) Clear() {
	t.root = nil
}

func size[T comparable](n *node[T]) int {
	if n == nil {
		return 0
	}
	return n.size
}

func (t *Tree[T]) start(n *node[T]) int {
	s, _ := t.acc.Bounds(n.item)
	return s
}

func (t *Tree[T]) apply(n *node[T], delta int) {
	if n == nil || delta == 0 {
		return
	}
	t.acc.Shift(n.item, delta)
	n.maxEnd += delta
	n.lazy += delta
}

func (t *Tree[T]) push(n *node[T]) {
	if n == nil || n.lazy == 0 {
		return
	}
	t.apply(n.left, n.lazy)
	t.apply(n.right, n.lazy)
	n.lazy = 0
}

func (t *Tree[T]) update(n *node[T]) {
	_, end := t.acc.Bounds(n.item)
	n.maxEnd = end
	n.size = 1
	if n.left != nil {
		n.maxEnd = max(n.maxEnd, n.left.maxEnd)
		n.size += n.left.size
	}
	if n.right != nil {
		n.maxEnd = max(n.maxEnd, n.right.maxEnd)
		n.size += n.right.size
	}
}

// split divides n into items starting before k and items starting at or
// after k.
func (t *Tree[T]) split(n *node[T], k int) (l, r *node[T]) {
	if n == nil {
		return nil, nil
	}
	t.push(n)
	if t.start(n) < k {
		n.right, r = t.split(n.right, k)
		t.update(n)
		return n, r
	}
	l, n.left = t.split(n.left, k)
	t.update(n)
	return l, n
}

// merge joins two treaps where every start in a precedes every start in b.
func (t *Tree[T]) merge(a, b *node[T]) *node[T] {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.prio > b.prio {
		t.push(a)
		a.right = t.merge(a.right, b)
		t.update(a)
		return a
	}
	t.push(b)
	b.left = t.merge(a, b.left)
	t.update(b)
	return b
}

// Insert adds an item.
func (t *Tree[T]) Insert(item T) {
	n := &node[T]{item: item, prio: t.rng.Uint64()}
	t.update(n)
	s, _ := t.acc.Bounds(item)
	l, r := t.split(t.root, s)
	t.root = t.merge(t.merge(l, n), r)
}

// Delete removes an item and reports whether it was present.
func (t *Tree[T]) Delete(item T) bool {
	s, _ := t.acc.Bounds(item)
	l, r := t.split(t.root, s)
	m, r := t.split(r, s+1)
	found := false
	m = t.remove(m, item, &found)
	t.root = t.merge(t.merge(l, m), r)
	return found
}

func (t *Tree[T]) remove(n *node[T], item T, found *bool) *node[T] {
	if n == nil {
		return nil
	}
	t.push(n)
	if n.item == item {
		*found = true
		return t.merge(n.left, n.right)
	}
	n.left = t.remove(n.left, item, found)
	if !*found {
		n.right = t.remove(n.right, item, found)
	}
	t.update(n)
	return n
}

// ShiftFrom moves every item starting at or after pos by delta. The caller
// must keep the items ordered: a negative delta may not move an item before
// the end of its predecessor.
func (t *Tree[T]) ShiftFrom(pos, delta int) {
	if delta == 0 {
		return
	}
	l, r := t.split(t.root, pos)
	t.apply(r, delta)
	t.root = t.merge(l, r)
}

// Search calls fn for every item intersecting [lo, hi] in start order until
// fn returns false. With inclusive set, items touching lo or hi with an
// endpoint match as well; otherwise only items overlapping the open
// interval do, except that an empty query (lo == hi) matches items
// strictly containing lo.
func (t *Tree[T]) Search(lo, hi int, inclusive bool, fn func(T) bool) {
	t.search(t.root, lo, hi, inclusive, fn)
}

func (t *Tree[T]) search(n *node[T], lo, hi int, inclusive bool, fn func(T) bool) bool {
	if n == nil {
		return true
	}
	t.push(n)
	if n.maxEnd < lo || (!inclusive && n.maxEnd <= lo) {
		return true
	}
	if !t.search(n.left, lo, hi, inclusive, fn) {
		return false
	}
	s, e := t.acc.Bounds(n.item)
	if s > hi || (!inclusive && s >= hi) {
		return false
	}
	if matches(s, e, lo, hi, inclusive) && !fn(n.item) {
		return false
	}
	return t.search(n.right, lo, hi, inclusive, fn)
}

func matches(s, e, lo, hi int, inclusive bool) bool {
	if inclusive {
		return s <= hi && e >= lo
	}
	if lo == hi {
		return s < lo && lo < e
	}
	return s < hi && e > lo
}

// Before returns the item with the greatest start strictly less than pos.
func (t *Tree[T]) Before(pos int) (T, bool) {
	var best T
	found := false
	for n := t.root; n != nil; {
		t.push(n)
		if t.start(n) < pos {
			best, found = n.item, true
			n = n.right
		} else {
			n = n.left
		}
	}
	return best, found
}

// AtOrAfter returns the item with the smallest start at or after pos.
func (t *Tree[T]) AtOrAfter(pos int) (T, bool) {
	var best T
	found := false
	for n := t.root; n != nil; {
		t.push(n)
		if t.start(n) >= pos {
			best, found = n.item, true
			n = n.left
		} else {
			n = n.right
		}
	}
	return best, found
}

// Rank returns the number of items starting before pos.
func (t *Tree[T]) Rank(pos int) int {
	k := 0
	for n := t.root; n != nil; {
		t.push(n)
		if t.start(n) < pos {
			k += size(n.left) + 1
			n = n.right
		} else {
			n = n.left
		}
	}
	return k
}

// Select returns the i-th item in start order.
func (t *Tree[T]) Select(i int) (T, bool) {
	var zero T
	if i < 0 || i >= t.Len() {
		return zero, false
	}
	n := t.root
	for {
		t.push(n)
		switch l := size(n.left); {
		case i < l:
			n = n.left
		case i == l:
			return n.item, true
		default:
			i -= l + 1
			n = n.right
		}
	}
}

// Walk visits every item in start order, applying pending shifts, until fn
// returns false.
func (t *Tree[T]) Walk(fn func(T) bool) {
	t.walk(t.root, fn)
}

func (t *Tree[T]) walk(n *node[T], fn func(T) bool) bool {
	if n == nil {
		return true
	}
	t.push(n)
	return t.walk(n.left, fn) && fn(n.item) && t.walk(n.right, fn)
}

// Items returns all items in start order.
func (t *Tree[T]) Items() []T {
	out := make([]T, 0, t.Len())
	t.Walk(func(item T) bool {
		out = append(out, item)
		return true
	})
	return out
}
