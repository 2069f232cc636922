// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package intervalrecord converts interval stores to and from flat lists of
// records, and encodes those lists as YAML.
package intervalrecord

import (
	"github.com/cockroachdb/anchors/pkg/util/interval"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v2"
)

// Record is the flat form of an interval.
type Record[D any] struct {
	ID          int64 `yaml:"id"`
	From        int64 `yaml:"from"`
	To          int64 `yaml:"to"`
	ClosedLeft  bool  `yaml:"closed_left,omitempty"`
	ClosedRight bool  `yaml:"closed_right,omitempty"`
	Data        D     `yaml:"data,omitempty"`
}

// FromInterval returns the record of iv.
func FromInterval[D any](iv interval.Interval[D]) Record[D] {
	return Record[D]{
		ID:          iv.ID,
		From:        iv.From,
		To:          iv.To,
		ClosedLeft:  iv.ClosedLeft,
		ClosedRight: iv.ClosedRight,
		Data:        iv.Data,
	}
}

// Interval returns the interval described by r.
func (r Record[D]) Interval() interval.Interval[D] {
	return interval.Interval[D]{
		ID:          r.ID,
		From:        r.From,
		To:          r.To,
		ClosedLeft:  r.ClosedLeft,
		ClosedRight: r.ClosedRight,
		Data:        r.Data,
	}
}

// FromStore flattens s into records ordered by From.
func FromStore[D any](s *interval.Store[D]) []Record[D] {
	recs := make([]Record[D], 0, s.Len())
	s.Ascend(func(iv interval.Interval[D]) bool {
		recs = append(recs, FromInterval(iv))
		return true
	})
	return recs
}

// ToStore bulk-loads recs, in any order, into a new store.
func ToStore[D any](recs []Record[D], opts ...interval.Option) (*interval.Store[D], error) {
	ivs := make([]interval.Interval[D], len(recs))
	for i, r := range recs {
		ivs[i] = r.Interval()
	}
	s, err := interval.FromIntervals(ivs, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "loading records")
	}
	return s, nil
}

// Marshal encodes recs as a YAML list.
func Marshal[D any](recs []Record[D]) ([]byte, error) {
	if recs == nil {
		recs = []Record[D]{}
	}
	out, err := yaml.Marshal(recs)
	if err != nil {
		return nil, errors.Wrap(err, "encoding records")
	}
	return out, nil
}

// Unmarshal decodes a YAML list of records. Unknown fields are rejected.
func Unmarshal[D any](data []byte) ([]Record[D], error) {
	var recs []Record[D]
	if err := yaml.UnmarshalStrict(data, &recs); err != nil {
		return nil, errors.Wrap(err, "decoding records")
	}
	return recs, nil
}
