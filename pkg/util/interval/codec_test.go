// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestBoundaryKeys(t *testing.T) {
	for _, tc := range []struct {
		x          int64
		closed     bool
		start, end int64
	}{
		{0, false, 0, 0},
		{0, true, -1, 1},
		{5, false, 10, 10},
		{5, true, 9, 11},
		{MaxCoordinate, true, 2*MaxCoordinate - 1, 2*MaxCoordinate + 1},
	} {
		require.Equal(t, tc.start, encodeStart(tc.x, tc.closed))
		require.Equal(t, tc.end, encodeEnd(tc.x, tc.closed))
		x, closed := decodeStart(tc.start)
		require.Equal(t, tc.x, x)
		require.Equal(t, tc.closed, closed)
		x, closed = decodeEnd(tc.end)
		require.Equal(t, tc.x, x)
		require.Equal(t, tc.closed, closed)
	}
}

func TestBoundaryKeyOrder(t *testing.T) {
	// A closed start sorts before an open one at the same offset, and both
	// sort after any boundary at a smaller offset.
	require.Less(t, encodeStart(4, false), encodeStart(5, true))
	require.Less(t, encodeStart(5, true), encodeStart(5, false))
	require.Less(t, encodeEnd(5, false), encodeEnd(5, true))
	require.Less(t, encodeEnd(5, true), encodeEnd(6, false))

	// Insertion at 5 moves starts at key >= 10 and ends at key > 10.
	p := pointKey(5)
	require.False(t, encodeStart(5, true) >= p)
	require.True(t, encodeStart(5, false) >= p)
	require.False(t, encodeEnd(5, false) > p)
	require.True(t, encodeEnd(5, true) > p)
}

func TestCollapseCoord(t *testing.T) {
	for _, tc := range []struct {
		x, want int64
	}{
		{0, 0}, {2, 2}, {3, 2}, {4, 2}, {5, 2}, {6, 3}, {10, 7},
	} {
		require.Equal(t, tc.want, collapseCoord(tc.x, 2, 3), "x=%d", tc.x)
	}
	require.Equal(t, encodeStart(2, true), collapseStart(encodeStart(4, true), 2, 3))
	require.Equal(t, encodeEnd(7, true), collapseEnd(encodeEnd(10, true), 2, 3))
}

func TestCheckCoordinate(t *testing.T) {
	require.NoError(t, checkCoordinate(0))
	require.NoError(t, checkCoordinate(MaxCoordinate))
	require.True(t, errors.Is(checkCoordinate(-1), ErrInvalidRange))
	require.True(t, errors.Is(checkCoordinate(MaxCoordinate+1), ErrCoordinateOverflow))
}

func TestNodeIDFormat(t *testing.T) {
	require.Equal(t, "i7", userNodeID(7).String())
	require.Equal(t, "n3", nodeID{kind: syntheticID, n: 3}.String())
	require.Equal(t, "root(open)", openRootID.String())
	require.Equal(t, "root(closed)", closedRootID.String())
	require.True(t, userNodeID(100).less(nodeID{kind: syntheticID, n: 1}))
	require.True(t, nodeID{kind: syntheticID, n: 100}.less(openRootID))
}
