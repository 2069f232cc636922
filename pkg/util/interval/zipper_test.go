// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func leafStarts[D any](z *zipper[D]) []int64 {
	f := z.top()
	res := make([]int64, f.n.len())
	for i := range res {
		res[i] = f.origin + f.n.starts[i]
	}
	return res
}

func TestZipperCousins(t *testing.T) {
	s := New[string](WithMaxChildren(4))
	b := s.NewBatch()
	for i := int64(1); i <= 30; i++ {
		require.NoError(t, b.Add(mkIv(i, i, i, false, false)))
	}
	s, err := b.Commit()
	require.NoError(t, err)
	requireValid(t, s)

	z := newZipper[string](nil, s.open, openRootID)
	for !z.top().n.leaf {
		z.downLeft()
	}
	require.False(t, z.hasLeftCousin())
	require.False(t, z.left())
	depth := z.depth()
	require.Greater(t, depth, 2)

	var starts []int64
	starts = append(starts, leafStarts(z)...)
	for z.skipRight() {
		require.Equal(t, depth, z.depth())
		starts = append(starts, leafStarts(z)...)
	}
	require.False(t, z.hasRightCousin())
	want := make([]int64, 30)
	for i := range want {
		want[i] = pointKey(int64(i + 1))
	}
	require.Equal(t, want, starts)

	// Walk back.
	var back []int64
	back = append(leafStarts(z), back...)
	for z.skipLeft() {
		back = append(leafStarts(z), back...)
	}
	require.Equal(t, want, back)
}

func TestZipperSeekCopiesOnWrite(t *testing.T) {
	s := New[string](WithMaxChildren(4))
	b := s.NewBatch()
	for i := int64(1); i <= 30; i++ {
		require.NoError(t, b.Add(mkIv(i, 2*i, 2*i+1, false, false)))
	}
	s, err := b.Commit()
	require.NoError(t, err)

	ec := s.newEditContext()
	z := ec.zipper(openRootID)
	z.seek(pointKey(1), 0)
	require.True(t, z.top().n.leaf)
	require.True(t, z.top().covers(pointKey(1)))
	require.NoError(t, z.insert(userNodeID(100), pointKey(1), pointKey(1), "x"))
	ec.finish(z)
	root := ec.open
	require.NotSame(t, s.open, root)
	require.Equal(t, len(s.open.children), len(root.children))

	// Only the nodes on the path to the modified leaf were copied.
	shared := 0
	for i := range root.children {
		if root.children[i] == s.open.children[i] {
			shared++
		}
	}
	require.Equal(t, len(root.children)-1, shared)

	s2 := ec.commit("insert")
	requireValid(t, s2)
	requireValid(t, s)
	require.Equal(t, 31, s2.Len())
	require.Equal(t, 30, s.Len())
}
