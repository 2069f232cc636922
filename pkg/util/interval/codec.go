// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// MaxCoordinate is the largest user offset a store accepts. Offsets are
// doubled by the boundary encoding, so the limit keeps every key within an
// int64.
const MaxCoordinate = math.MaxInt64/2 - 1

// Boundary keys.
//
// A user offset x is mapped onto the key 2x. A closed (greedy) left boundary
// sits one unit before it (2x-1) and a closed right boundary one unit after
// it (2x+1). With this encoding, a text insertion at offset o (key 2o) moves
// exactly the starts with key >= 2o and the ends with key > 2o, and a query
// for [from, to] matches exactly the intervals with start <= 2*to and
// end >= 2*from. Greedy and non-greedy boundaries never need separate cases.

func encodeStart(x int64, closed bool) int64 {
	if closed {
		return 2*x - 1
	}
	return 2 * x
}

func encodeEnd(x int64, closed bool) int64 {
	if closed {
		return 2*x + 1
	}
	return 2 * x
}

func decodeStart(k int64) (x int64, closed bool) {
	return (k + 1) >> 1, k&1 != 0
}

func decodeEnd(k int64) (x int64, closed bool) {
	return k >> 1, k&1 != 0
}

// pointKey is the key of a bare user offset, as used by queries and edits.
func pointKey(x int64) int64 {
	return 2 * x
}

// collapseCoord maps a user offset through the deletion of
// [offset, offset+length).
func collapseCoord(x, offset, length int64) int64 {
	switch {
	case x <= offset:
		return x
	case x >= offset+length:
		return x - length
	default:
		return offset
	}
}

func collapseStart(k, offset, length int64) int64 {
	x, closed := decodeStart(k)
	return encodeStart(collapseCoord(x, offset, length), closed)
}

func collapseEnd(k, offset, length int64) int64 {
	x, closed := decodeEnd(k)
	return encodeEnd(collapseCoord(x, offset, length), closed)
}

// checkCoordinate returns an error if x cannot be encoded.
func checkCoordinate(x int64) error {
	if x < 0 {
		return errors.Wrapf(ErrInvalidRange, "negative offset %d", redact.Safe(x))
	}
	if x > MaxCoordinate {
		return errors.Wrapf(ErrCoordinateOverflow, "offset %d exceeds %d",
			redact.Safe(x), redact.Safe(int64(MaxCoordinate)))
	}
	return nil
}
