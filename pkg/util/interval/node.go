// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

// cowToken identifies the edit that owns a node. A node may only be mutated
// by the edit whose token it carries; every other edit clones it first. A
// committed snapshot's nodes keep the token of the edit that produced them,
// and since no later edit reuses that token they are never written again.
type cowToken struct {
	// seq only serves to give the token a non-zero size, so that distinct
	// tokens have distinct addresses.
	seq uint64
}

// node is a tree node. The slot arrays are parallel:
//   - ids[i] names the slot: a user interval at leaf level, a synthetic node
//     id otherwise.
//   - starts[i] and ends[i] are the boundary keys of the slot, relative to
//     the origin of this node. For an internal slot they are the smallest
//     start and the largest end found in the child's subtree.
//   - children[i] (internal) or data[i] (leaf) is the payload.
//
// Slots are ordered by start, ties in insertion order. A child's keys are
// normalized: its first start is zero, so its origin is the parent's origin
// plus the parent's starts[i].
type node[D any] struct {
	owner    *cowToken
	leaf     bool
	ids      []nodeID
	starts   []int64
	ends     []int64
	children []*node[D]
	data     []D
}

func newLeaf[D any](owner *cowToken) *node[D] {
	return &node[D]{owner: owner, leaf: true}
}

func newInternal[D any](owner *cowToken) *node[D] {
	return &node[D]{owner: owner}
}

func (n *node[D]) len() int { return len(n.ids) }

// mutableFor returns n if it is owned by tok, and an owned copy otherwise.
func (n *node[D]) mutableFor(tok *cowToken) *node[D] {
	if n.owner == tok {
		return n
	}
	return n.clone(tok)
}

func (n *node[D]) clone(tok *cowToken) *node[D] {
	c := &node[D]{
		owner:  tok,
		leaf:   n.leaf,
		ids:    append(make([]nodeID, 0, len(n.ids)+1), n.ids...),
		starts: append(make([]int64, 0, len(n.starts)+1), n.starts...),
		ends:   append(make([]int64, 0, len(n.ends)+1), n.ends...),
	}
	if n.leaf {
		c.data = append(make([]D, 0, len(n.data)+1), n.data...)
	} else {
		c.children = append(make([]*node[D], 0, len(n.children)+1), n.children...)
	}
	return c
}

// maxEnd returns the largest end key of n. n must not be empty.
func (n *node[D]) maxEnd() int64 {
	m := n.ends[0]
	for _, e := range n.ends[1:] {
		if e > m {
			m = e
		}
	}
	return m
}

// normalize re-bases the keys of n so that its first start is zero and
// returns the delta that was removed.
func (n *node[D]) normalize() int64 {
	if n.len() == 0 {
		return 0
	}
	d := n.starts[0]
	if d != 0 {
		n.shift(-d)
	}
	return d
}

// shift adds d to every key of n.
func (n *node[D]) shift(d int64) {
	for i := range n.starts {
		n.starts[i] += d
		n.ends[i] += d
	}
}

// searchAfter returns the index of the first slot whose start is greater
// than key, i.e. the position at which an entry with start key goes after
// all entries with an equal start.
func (n *node[D]) searchAfter(key int64) int {
	i, j := 0, n.len()
	for i < j {
		h := int(uint(i+j) >> 1)
		if n.starts[h] <= key {
			i = h + 1
		} else {
			j = h
		}
	}
	return i
}

// route returns the slot of an internal node responsible for key: the last
// slot whose start is <= key, or the first slot if there is none.
func (n *node[D]) route(key int64) int {
	if i := n.searchAfter(key); i > 0 {
		return i - 1
	}
	return 0
}

func (n *node[D]) indexOf(id nodeID) int {
	for i := range n.ids {
		if n.ids[i] == id {
			return i
		}
	}
	return -1
}

func (n *node[D]) insertEntry(i int, id nodeID, start, end int64, d D) {
	n.insertSlot(i, id, start, end)
	var zero D
	n.data = append(n.data, zero)
	copy(n.data[i+1:], n.data[i:])
	n.data[i] = d
}

func (n *node[D]) insertChild(i int, id nodeID, start, end int64, c *node[D]) {
	n.insertSlot(i, id, start, end)
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
}

func (n *node[D]) insertSlot(i int, id nodeID, start, end int64) {
	n.ids = append(n.ids, nodeID{})
	copy(n.ids[i+1:], n.ids[i:])
	n.ids[i] = id
	n.starts = append(n.starts, 0)
	copy(n.starts[i+1:], n.starts[i:])
	n.starts[i] = start
	n.ends = append(n.ends, 0)
	copy(n.ends[i+1:], n.ends[i:])
	n.ends[i] = end
}

func (n *node[D]) removeAt(i int) {
	n.ids = append(n.ids[:i], n.ids[i+1:]...)
	n.starts = append(n.starts[:i], n.starts[i+1:]...)
	n.ends = append(n.ends[:i], n.ends[i+1:]...)
	if n.leaf {
		var zero D
		copy(n.data[i:], n.data[i+1:])
		n.data[len(n.data)-1] = zero
		n.data = n.data[:len(n.data)-1]
	} else {
		copy(n.children[i:], n.children[i+1:])
		n.children[len(n.children)-1] = nil
		n.children = n.children[:len(n.children)-1]
	}
}

// moveSlot copies slot j of src into slot i of n, shifting its keys by d.
func (n *node[D]) moveSlot(i int, src *node[D], j int, d int64) {
	n.ids[i] = src.ids[j]
	n.starts[i] = src.starts[j] + d
	n.ends[i] = src.ends[j] + d
	if n.leaf {
		n.data[i] = src.data[j]
	} else {
		n.children[i] = src.children[j]
	}
}

// truncate keeps the first k slots.
func (n *node[D]) truncate(k int) {
	n.ids = n.ids[:k]
	n.starts = n.starts[:k]
	n.ends = n.ends[:k]
	if n.leaf {
		var zero D
		for i := k; i < len(n.data); i++ {
			n.data[i] = zero
		}
		n.data = n.data[:k]
	} else {
		for i := k; i < len(n.children); i++ {
			n.children[i] = nil
		}
		n.children = n.children[:k]
	}
}

// appendFrom appends all slots of src to n, shifting their keys by d.
func (n *node[D]) appendFrom(src *node[D], d int64) {
	n.ids = append(n.ids, src.ids...)
	for i := range src.starts {
		n.starts = append(n.starts, src.starts[i]+d)
		n.ends = append(n.ends, src.ends[i]+d)
	}
	if n.leaf {
		n.data = append(n.data, src.data...)
	} else {
		n.children = append(n.children, src.children...)
	}
}

// splitOff moves the slots from index i onwards into a new node owned by
// tok and returns it. Keys are not re-based.
func (n *node[D]) splitOff(i int, tok *cowToken) *node[D] {
	right := &node[D]{owner: tok, leaf: n.leaf}
	right.ids = append(make([]nodeID, 0, n.len()-i+1), n.ids[i:]...)
	right.starts = append(make([]int64, 0, n.len()-i+1), n.starts[i:]...)
	right.ends = append(make([]int64, 0, n.len()-i+1), n.ends[i:]...)
	if n.leaf {
		right.data = append(make([]D, 0, n.len()-i+1), n.data[i:]...)
	} else {
		right.children = append(make([]*node[D], 0, n.len()-i+1), n.children[i:]...)
	}
	n.truncate(i)
	return right
}
