// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// bruteQuery returns the intervals of all that intersect [from, to], in the
// order in which they appear in all.
func bruteQuery(all []Interval[string], from, to int64) []Interval[string] {
	var res []Interval[string]
	for _, iv := range all {
		if iv.From <= to && iv.To >= from {
			res = append(res, iv)
		}
	}
	return res
}

func TestQueryMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for _, maxChildren := range []int{4, 7, 32} {
		s, err := FromIntervals(randomIntervals(rng, 600, 1000), WithMaxChildren(maxChildren))
		require.NoError(t, err)
		all := Collect(s.All())
		require.True(t, slices.IsSortedFunc(all, func(a, b Interval[string]) int {
			return int(a.startKey() - b.startKey())
		}))
		for i := 0; i < 200; i++ {
			from := rng.Int63n(1100)
			to := from + rng.Int63n(100)
			want := bruteQuery(all, from, to)
			got := Collect(s.Query(from, to))
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("query [%d, %d] mismatch (-want +got):\n%s", from, to, diff)
			}
			rev := Collect(s.QueryReversed(from, to))
			slices.Reverse(rev)
			if diff := cmp.Diff(want, rev, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("reversed query [%d, %d] mismatch (-want +got):\n%s", from, to, diff)
			}
		}
	}
}

func TestQueryInclusiveBounds(t *testing.T) {
	s := mustInsert(t, New[string](),
		mkIv(1, 0, 3, false, false),
		mkIv(2, 3, 5, false, false),
		mkIv(3, 5, 5, true, true),
		mkIv(4, 6, 9, true, false),
	)
	for _, tc := range []struct {
		from, to int64
		want     []int64
	}{
		{0, 0, []int64{1}},
		{3, 3, []int64{1, 2}},
		{5, 5, []int64{2, 3}},
		{4, 6, []int64{2, 3, 4}},
		{10, 20, nil},
		{-5, 100, []int64{1, 2, 3, 4}},
		{6, 2, nil},
	} {
		got := ids(Collect(s.Query(tc.from, tc.to)))
		if len(tc.want) == 0 {
			require.Empty(t, got)
			continue
		}
		require.Equal(t, tc.want, got, "[%d, %d]", tc.from, tc.to)
	}
}

func TestQueryEmptyStore(t *testing.T) {
	s := New[string]()
	require.False(t, s.All().Next())
	require.False(t, s.QueryReversed(0, 10).Next())
}

func TestAscendStops(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s, err := FromIntervals(randomIntervals(rng, 50, 100))
	require.NoError(t, err)
	var seen []Interval[string]
	s.Ascend(func(iv Interval[string]) bool {
		seen = append(seen, iv)
		return len(seen) < 10
	})
	require.Equal(t, Collect(s.All())[:10], seen)
}

func TestSum(t *testing.T) {
	s1 := mustInsert(t, New[string](),
		mkIv(1, 0, 4, false, false),
		mkIv(2, 5, 6, true, false),
	)
	s2 := mustInsert(t, New[string](),
		mkIv(1, 0, 2, false, false),
		mkIv(3, 3, 9, false, false),
		mkIv(4, 5, 5, true, true),
	)
	src := Sum[string](s1, s2)
	got := strs(Collect(src.Query(0, 10)))
	require.Equal(t, []string{"1:(0,4)", "1:(0,2)", "3:(3,9)", "2:[5,6)", "4:[5,5]"}, got)

	rev := strs(Collect(src.QueryReversed(0, 10)))
	slices.Reverse(rev)
	require.Equal(t, got, rev)

	require.Equal(t, []string{"3:(3,9)"}, strs(Collect(src.Query(7, 7))))
	require.False(t, Sum[string]().Query(0, 10).Next())

	// Sums compose.
	nested := Sum[string](Sum[string](s1), s2)
	require.Equal(t, got, strs(Collect(nested.Query(0, 10))))
}
