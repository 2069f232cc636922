// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

// Source is anything that answers range queries with ordered intervals.
type Source[D any] interface {
	Query(from, to int64) Iterator[D]
	QueryReversed(from, to int64) Iterator[D]
}

var _ Source[struct{}] = (*Store[struct{}])(nil)

type sum[D any] []Source[D]

// Sum composes sources into one. Its queries merge the results of all
// sources by start; intervals with equal starts are yielded in source order
// (reverse source order for QueryReversed). Ids are not deduplicated.
func Sum[D any](sources ...Source[D]) Source[D] {
	return sum[D](sources)
}

func (s sum[D]) Query(from, to int64) Iterator[D] {
	its := make([]Iterator[D], len(s))
	for i, src := range s {
		its[i] = src.Query(from, to)
	}
	return newMergeIter(false, its...)
}

func (s sum[D]) QueryReversed(from, to int64) Iterator[D] {
	its := make([]Iterator[D], len(s))
	for i, src := range s {
		its[i] = src.QueryReversed(from, to)
	}
	return newMergeIter(true, its...)
}
