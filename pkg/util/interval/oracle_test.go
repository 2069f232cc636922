// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/biogo/store/llrb"
	"github.com/stretchr/testify/require"
)

// oracleKey orders intervals by start key and then by insertion sequence,
// which is the order a store must report them in.
type oracleKey struct {
	start int64
	seq   int
	iv    Interval[string]
}

var _ llrb.Comparable = oracleKey{}

// Compare implements the llrb.Comparable interface.
func (a oracleKey) Compare(b llrb.Comparable) int {
	o := b.(oracleKey)
	switch {
	case a.start < o.start:
		return -1
	case a.start > o.start:
		return 1
	case a.seq < o.seq:
		return -1
	case a.seq > o.seq:
		return 1
	}
	return 0
}

// oracle is a reference model of a store that only sees inserts and
// removals, kept in a left-leaning red-black tree.
type oracle struct {
	tree llrb.Tree
	keys map[int64]oracleKey
	seq  int
}

func newOracle() *oracle {
	return &oracle{keys: make(map[int64]oracleKey)}
}

func (o *oracle) insert(iv Interval[string]) {
	k := oracleKey{start: iv.startKey(), seq: o.seq, iv: iv}
	o.seq++
	o.tree.Insert(k)
	o.keys[iv.ID] = k
}

func (o *oracle) remove(id int64) {
	if k, ok := o.keys[id]; ok {
		o.tree.Delete(k)
		delete(o.keys, id)
	}
}

// query returns the intervals intersecting [from, to] in store order.
func (o *oracle) query(from, to int64) []Interval[string] {
	res := []Interval[string]{}
	lo := oracleKey{start: math.MinInt64, seq: -1}
	hi := oracleKey{start: pointKey(to) + 1, seq: -1}
	o.tree.DoRange(func(c llrb.Comparable) bool {
		k := c.(oracleKey)
		if k.iv.endKey() >= pointKey(from) {
			res = append(res, k.iv)
		}
		return false
	}, lo, hi)
	return res
}

func TestQueryMatchesOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, maxChildren := range []int{4, 5, 16} {
		s := New[string](WithMaxChildren(maxChildren))
		o := newOracle()
		var live []int64
		for step := 0; step < 800; step++ {
			if len(live) > 0 && rng.Intn(4) == 0 {
				i := rng.Intn(len(live))
				id := live[i]
				live = append(live[:i], live[i+1:]...)
				var err error
				s, err = s.Remove(id)
				require.NoError(t, err)
				o.remove(id)
				continue
			}
			from := rng.Int63n(300)
			iv := mkIv(int64(step+1), from, from+rng.Int63n(20), rng.Intn(2) == 0, rng.Intn(2) == 0)
			var err error
			s, err = s.Insert(iv)
			require.NoError(t, err)
			o.insert(iv)
			live = append(live, iv.ID)
		}
		requireValid(t, s)
		require.Equal(t, o.tree.Len(), s.Len())

		for i := 0; i < 200; i++ {
			from := rng.Int63n(330)
			to := from + rng.Int63n(40)
			want := o.query(from, to)
			require.Equal(t, ids(want), ids(Collect(s.Query(from, to))), "query [%d, %d]", from, to)
			slices.Reverse(want)
			require.Equal(t, ids(want), ids(Collect(s.QueryReversed(from, to))), "reversed query [%d, %d]", from, to)
		}
	}
}
