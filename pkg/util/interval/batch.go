// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Batch accumulates intervals, ordered by From, into a single edit. The
// zippers of both trees stay where the previous interval was inserted, so
// loading sorted input only ascends as far as needed to reach the next
// position.
//
// A Batch is not safe for concurrent use.
type Batch[D any] struct {
	ec        *editContext[D]
	zippers   map[nodeID]*zipper[D]
	last      int64
	err       error
	committed bool
}

// NewBatch starts a batch on top of s. s is not affected.
func (s *Store[D]) NewBatch() *Batch[D] {
	return &Batch[D]{
		ec:      s.newEditContext(),
		zippers: map[nodeID]*zipper[D]{},
		last:    -1,
	}
}

// Add adds iv to the batch. A precondition failure leaves the batch as it
// was; an internal error poisons it and is returned again by Commit.
func (b *Batch[D]) Add(iv Interval[D]) error {
	if b.committed {
		return ErrBatchCommitted
	}
	if b.err != nil {
		return b.err
	}
	if err := iv.validate(); err != nil {
		return err
	}
	if iv.From < b.last {
		return errors.Wrapf(ErrUnsortedBatch, "interval %s after from %d", iv, redact.Safe(b.last))
	}
	if b.ec.parents.has(userNodeID(iv.ID)) {
		return errors.Wrapf(ErrDuplicateID, "id %d", redact.Safe(iv.ID))
	}
	rootID := treeRootID(iv.ClosedLeft)
	z, ok := b.zippers[rootID]
	if !ok {
		z = b.ec.zipper(rootID)
		b.zippers[rootID] = z
	}
	if err := z.insert(userNodeID(iv.ID), iv.startKey(), iv.endKey(), iv.Data); err != nil {
		b.err = err
		return err
	}
	b.last = iv.From
	return nil
}

// Len returns the number of intervals in the store the batch would commit.
func (b *Batch[D]) Len() int { return b.ec.count }

// Commit finalizes the batch into a new store. A batch can only be
// committed once.
func (b *Batch[D]) Commit() (*Store[D], error) {
	if b.committed {
		return nil, ErrBatchCommitted
	}
	b.committed = true
	if b.err != nil {
		return nil, b.err
	}
	for _, rootID := range []nodeID{openRootID, closedRootID} {
		if z, ok := b.zippers[rootID]; ok {
			b.ec.finish(z)
		}
	}
	return b.ec.commit("batch"), nil
}
