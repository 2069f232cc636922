// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

import "github.com/cockroachdb/errors"

// Precondition failures. Edits that fail with one of these errors (possibly
// wrapped, test with errors.Is) leave the receiver untouched and produce no
// snapshot.
var (
	// ErrInvalidRange is returned for negative offsets or lengths and for
	// intervals with From > To.
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidID is returned for interval ids that are not positive.
	ErrInvalidID = errors.New("invalid interval id")
	// ErrDuplicateID is returned when inserting an id that is already present.
	ErrDuplicateID = errors.New("duplicate interval id")
	// ErrUnsortedBatch is returned when a batch receives an interval whose
	// From is smaller than that of the previous one.
	ErrUnsortedBatch = errors.New("batch not sorted by from")
	// ErrCoordinateOverflow is returned when an offset exceeds MaxCoordinate,
	// or an edit would push one past it.
	ErrCoordinateOverflow = errors.New("coordinate overflow")
	// ErrBatchCommitted is returned when a batch is used after Commit.
	ErrBatchCommitted = errors.New("batch already committed")
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid interval store configuration")
)

// ErrInsertRetriesExhausted marks the assertion failure returned when an
// insert cannot find a consistent position in the tree. It indicates a bug,
// never a property of the input.
var ErrInsertRetriesExhausted = errors.New("insert retries exhausted")
