// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

// Iterator yields intervals one at a time. Next advances to the next
// interval and returns false once the iterator is exhausted; Cur returns the
// interval Next advanced to. An iterator cannot be rewound.
type Iterator[D any] interface {
	Next() bool
	Cur() Interval[D]
}

// Collect drains it into a slice.
func Collect[D any](it Iterator[D]) []Interval[D] {
	var res []Interval[D]
	for it.Next() {
		res = append(res, it.Cur())
	}
	return res
}

// Query returns the intervals intersecting [from, to], inclusive on both
// ends regardless of boundary kinds, in ascending order of their start and
// then of insertion.
func (s *Store[D]) Query(from, to int64) Iterator[D] {
	return s.query(from, to, false)
}

// QueryReversed returns the intervals of Query(from, to) in reverse order.
func (s *Store[D]) QueryReversed(from, to int64) Iterator[D] {
	return s.query(from, to, true)
}

// All returns every interval in the store, ordered as by Query.
func (s *Store[D]) All() Iterator[D] {
	return s.Query(0, MaxCoordinate)
}

// Ascend calls fn for every interval in order until fn returns false.
func (s *Store[D]) Ascend(fn func(Interval[D]) bool) {
	for it := s.All(); it.Next(); {
		if !fn(it.Cur()) {
			return
		}
	}
}

func (s *Store[D]) query(from, to int64, reverse bool) Iterator[D] {
	from = max(from, 0)
	to = min(to, MaxCoordinate)
	if from > to {
		return &mergeIter[D]{}
	}
	qs, qe := pointKey(from), pointKey(to)
	return newMergeIter[D](reverse,
		newTreeIter(s.open, qs, qe, reverse),
		newTreeIter(s.closed, qs, qe, reverse))
}

type iterFrame[D any] struct {
	n      *node[D]
	pos    int
	origin int64
}

// treeIter walks one tree depth first, yielding the leaf entries whose keys
// satisfy start <= qe and end >= qs. Subtrees whose extent cannot satisfy
// that are skipped: in a forward walk the slots of a node are abandoned at
// the first start past qe; in a reverse walk they are entered at the last
// start not past it.
type treeIter[D any] struct {
	stack   []iterFrame[D]
	qs, qe  int64
	reverse bool
	cur     Interval[D]
}

func newTreeIter[D any](root *node[D], qs, qe int64, reverse bool) *treeIter[D] {
	it := &treeIter[D]{qs: qs, qe: qe, reverse: reverse}
	it.push(root, 0)
	return it
}

func (it *treeIter[D]) push(n *node[D], origin int64) {
	f := iterFrame[D]{n: n, origin: origin}
	if it.reverse {
		f.pos = n.searchAfter(it.qe-origin) - 1
	}
	it.stack = append(it.stack, f)
}

func (it *treeIter[D]) Next() bool {
	for len(it.stack) > 0 {
		f := &it.stack[len(it.stack)-1]
		i := f.pos
		if it.reverse {
			if i < 0 {
				it.stack = it.stack[:len(it.stack)-1]
				continue
			}
			f.pos--
		} else {
			if i >= f.n.len() || f.origin+f.n.starts[i] > it.qe {
				it.stack = it.stack[:len(it.stack)-1]
				continue
			}
			f.pos++
		}
		n, origin := f.n, f.origin
		if origin+n.ends[i] < it.qs {
			continue
		}
		if n.leaf {
			it.cur = makeInterval(n.ids[i], origin+n.starts[i], origin+n.ends[i], n.data[i])
			return true
		}
		it.push(n.children[i], origin+n.starts[i])
	}
	return false
}

func (it *treeIter[D]) Cur() Interval[D] { return it.cur }

// mergeIter interleaves sorted iterators by start key. Forward, ties go to
// the earlier input; in reverse, to the later one, so that a reversed merge
// of reversed inputs is the exact reverse of the forward merge.
type mergeIter[D any] struct {
	its     []Iterator[D]
	heads   []Interval[D]
	ok      []bool
	reverse bool
	started bool
	last    int
	cur     Interval[D]
}

func newMergeIter[D any](reverse bool, its ...Iterator[D]) *mergeIter[D] {
	return &mergeIter[D]{
		its:     its,
		heads:   make([]Interval[D], len(its)),
		ok:      make([]bool, len(its)),
		reverse: reverse,
	}
}

func (m *mergeIter[D]) advance(i int) {
	if m.ok[i] = m.its[i].Next(); m.ok[i] {
		m.heads[i] = m.its[i].Cur()
	}
}

func (m *mergeIter[D]) Next() bool {
	if !m.started {
		m.started = true
		for i := range m.its {
			m.advance(i)
		}
	} else if len(m.its) > 0 {
		m.advance(m.last)
	}
	best := -1
	for i := range m.its {
		if !m.ok[i] {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		k, bk := m.heads[i].startKey(), m.heads[best].startKey()
		if (!m.reverse && k < bk) || (m.reverse && k >= bk) {
			best = i
		}
	}
	if best < 0 {
		return false
	}
	m.last = best
	m.cur = m.heads[best]
	return true
}

func (m *mergeIter[D]) Cur() Interval[D] { return m.cur }
