// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	s := New[string](WithMaxChildren(4), WithMetrics(m), WithDropEmpty(true))
	b := s.NewBatch()
	for i := int64(1); i <= 20; i++ {
		require.NoError(t, b.Add(mkIv(i, i, i+1, false, false)))
	}
	s, err := b.Commit()
	require.NoError(t, err)
	require.Equal(t, 1.0, testutil.ToFloat64(m.Edits.WithLabelValues("batch")))
	require.Greater(t, testutil.ToFloat64(m.Splits), 0.0)
	require.Greater(t, testutil.ToFloat64(m.Grows), 0.0)

	// Deleting [3, 19) empties intervals 3 through 18.
	s, err = s.Collapse(3, 16)
	require.NoError(t, err)
	requireValid(t, s)
	require.Equal(t, 1.0, testutil.ToFloat64(m.Edits.WithLabelValues("collapse")))
	require.Equal(t, 16.0, testutil.ToFloat64(m.Dropped))
	require.Equal(t, 4, s.Len())
	require.Greater(t, testutil.ToFloat64(m.Merges)+testutil.ToFloat64(m.Shrinks), 0.0)

	// A second registration collides.
	require.Error(t, m.Register(reg))

	// Stores without metrics record nothing.
	var nilMetrics *Metrics
	nilMetrics.record("insert", editStats{splits: 1})
}
