// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

import (
	"context"

	"github.com/cockroachdb/anchors/pkg/util/log"
	"github.com/cockroachdb/logtags"
)

// editStats counts the structural work done by one edit.
type editStats struct {
	splits, merges, grows, shrinks, dropped int
}

// editContext is the scratch state of a single edit. It owns the
// copy-on-write token of every node the edit creates, the synthetic id
// allocator, and the clone of the parent index the edit mutates. Every
// zipper of the edit shares it. It is discarded after commit.
type editContext[D any] struct {
	ctx     context.Context
	cfg     *config
	tok     *cowToken
	parents *parentIndex

	open, closed  *node[D]
	nextSynthetic int64
	count         int
	stats         editStats
}

func (s *Store[D]) newEditContext() *editContext[D] {
	return &editContext[D]{
		ctx:           s.cfg.ambient.AnnotateCtx(context.Background()),
		cfg:           s.cfg,
		tok:           &cowToken{},
		parents:       s.parents.clone(),
		open:          s.open,
		closed:        s.closed,
		nextSynthetic: s.nextSynthetic,
		count:         s.count,
	}
}

func (ec *editContext[D]) newSyntheticID() nodeID {
	ec.nextSynthetic++
	return nodeID{kind: syntheticID, n: ec.nextSynthetic}
}

func (ec *editContext[D]) rootFor(rootID nodeID) **node[D] {
	if rootID == closedRootID {
		return &ec.closed
	}
	return &ec.open
}

func treeRootID(closedLeft bool) nodeID {
	if closedLeft {
		return closedRootID
	}
	return openRootID
}

func treeName(rootID nodeID) string {
	if rootID == closedRootID {
		return "closed"
	}
	return "open"
}

// zipper opens a cursor on the current root of the given tree.
func (ec *editContext[D]) zipper(rootID nodeID) *zipper[D] {
	return newZipper(ec, *ec.rootFor(rootID), rootID)
}

// finish finalizes z and installs the resulting root.
func (ec *editContext[D]) finish(z *zipper[D]) {
	*ec.rootFor(z.rootID()) = z.root()
}

// commit produces the snapshot resulting from the edit.
func (ec *editContext[D]) commit(op string) *Store[D] {
	ec.cfg.metrics.record(op, ec.stats)
	if log.V(2) {
		ctx := logtags.AddTag(ec.ctx, "op", op)
		log.VEventf(ctx, 2, "committed %d intervals: %d splits, %d merges, %d grows, %d shrinks, %d dropped",
			ec.count, ec.stats.splits, ec.stats.merges, ec.stats.grows, ec.stats.shrinks, ec.stats.dropped)
	}
	return &Store[D]{
		cfg:           ec.cfg,
		open:          ec.open,
		closed:        ec.closed,
		parents:       ec.parents,
		nextSynthetic: ec.nextSynthetic,
		count:         ec.count,
	}
}
