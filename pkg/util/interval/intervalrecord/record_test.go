// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package intervalrecord

import (
	"testing"

	"github.com/cockroachdb/anchors/pkg/util/interval"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	recs := []Record[string]{
		{ID: 2, From: 5, To: 8, Data: "b"},
		{ID: 1, From: 2, To: 5, ClosedLeft: true, Data: "a"},
		{ID: 3, From: 5, To: 5, ClosedLeft: true, ClosedRight: true},
	}
	s, err := ToStore(recs, interval.WithMaxChildren(4))
	require.NoError(t, err)
	require.NoError(t, s.Verify())

	flat := FromStore(s)
	require.Equal(t, []Record[string]{recs[1], recs[2], recs[0]}, flat)

	out, err := Marshal(flat)
	require.NoError(t, err)
	back, err := Unmarshal[string](out)
	require.NoError(t, err)
	require.Equal(t, flat, back)
}

func TestUnmarshal(t *testing.T) {
	recs, err := Unmarshal[string]([]byte(`
- id: 1
  from: 2
  to: 5
  closed_left: true
  data: a
- {id: 2, from: 5, to: 8}
`))
	require.NoError(t, err)
	require.Equal(t, []Record[string]{
		{ID: 1, From: 2, To: 5, ClosedLeft: true, Data: "a"},
		{ID: 2, From: 5, To: 8},
	}, recs)

	_, err = Unmarshal[string]([]byte(`- {id: 1, from: 2, to: 5, greedy: true}`))
	require.Error(t, err)
}

func TestMarshalEmpty(t *testing.T) {
	out, err := Marshal[string](nil)
	require.NoError(t, err)
	require.Equal(t, "[]\n", string(out))
	recs, err := Unmarshal[string](out)
	require.NoError(t, err)
	require.Empty(t, recs)
}

func TestToStoreRejectsBadRecords(t *testing.T) {
	_, err := ToStore([]Record[string]{{ID: 1, From: 4, To: 2}})
	require.True(t, errors.Is(err, interval.ErrInvalidRange), "%v", err)
	_, err = ToStore([]Record[string]{{ID: 1, From: 1, To: 2}, {ID: 1, From: 3, To: 4}})
	require.True(t, errors.Is(err, interval.ErrDuplicateID), "%v", err)
}
