// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

import (
	"context"
	"math"
	"time"

	"github.com/cockroachdb/anchors/pkg/util/log"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
)

// frame is one level of a zipper's path.
type frame[D any] struct {
	n  *node[D]
	id nodeID
	// pos is the slot of n in the parent frame's node.
	pos int
	// origin is the absolute key that n's keys are relative to.
	origin int64
	// lo and hi are the absolute routing bounds of n: keys in [lo, hi) are
	// routed to n by its ancestors.
	lo, hi int64
	// changed is set once n has been replaced by a copy owned by the edit.
	changed bool
}

func (f *frame[D]) covers(key int64) bool {
	return f.lo <= key && key < f.hi
}

// zipper is a cursor over one tree of a store. Modifications go through
// mutable, which copies the node at the cursor unless the edit already owns
// it. Moving up installs a modified node into its (then also modified)
// parent, so only the nodes on edited paths are ever copied and everything
// else stays shared with the snapshot the edit started from.
//
// The children of a modified node are rebalanced exactly once, when the
// cursor leaves that node.
type zipper[D any] struct {
	ec    *editContext[D]
	ctx   context.Context
	stack []*frame[D]
}

var insertRetryEvery = log.Every(10 * time.Second)

func newZipper[D any](ec *editContext[D], root *node[D], rootID nodeID) *zipper[D] {
	z := &zipper[D]{ec: ec}
	z.ctx = context.Background()
	if ec != nil {
		z.ctx = ec.ctx
	}
	z.ctx = logtags.AddTag(z.ctx, "tree", treeName(rootID))
	z.stack = append(z.stack, &frame[D]{
		n:  root,
		id: rootID,
		lo: math.MinInt64,
		hi: math.MaxInt64,
	})
	return z
}

func (z *zipper[D]) top() *frame[D] { return z.stack[len(z.stack)-1] }

func (z *zipper[D]) depth() int { return len(z.stack) }

func (z *zipper[D]) rootID() nodeID { return z.stack[0].id }

// mutable returns the node at the cursor, copying it first if it is not
// owned by the edit.
func (z *zipper[D]) mutable() *node[D] {
	f := z.top()
	f.n = f.n.mutableFor(z.ec.tok)
	f.changed = true
	return f.n
}

// downAt moves the cursor to the child in slot i.
func (z *zipper[D]) downAt(i int) {
	p := z.top()
	if p.n.leaf {
		panic(errors.AssertionFailedf("descending into leaf %s", p.id))
	}
	f := &frame[D]{
		n:      p.n.children[i],
		id:     p.n.ids[i],
		pos:    i,
		origin: p.origin + p.n.starts[i],
		lo:     p.lo,
		hi:     p.hi,
	}
	if i > 0 {
		f.lo = f.origin
	}
	if i+1 < p.n.len() {
		f.hi = p.origin + p.n.starts[i+1]
	}
	z.stack = append(z.stack, f)
}

func (z *zipper[D]) downLeft() { z.downAt(0) }

func (z *zipper[D]) downRight() { z.downAt(z.top().n.len() - 1) }

// up moves the cursor to the parent. If the node being left was modified,
// its children are rebalanced and it replaces the old child in a copy of
// the parent, whose slot keys are refreshed from the new extent.
func (z *zipper[D]) up() {
	c := z.stack[len(z.stack)-1]
	z.stack = z.stack[:len(z.stack)-1]
	if !c.changed {
		return
	}
	z.ec.rebalanceChildren(z.ctx, c.n, c.id)
	p := z.top()
	pn := z.mutable()
	pn.children[c.pos] = c.n
	if c.n.len() == 0 {
		// Left for the parent's rebalance to remove.
		return
	}
	d := c.n.normalize()
	pn.starts[c.pos] = c.origin - p.origin + d
	pn.ends[c.pos] = pn.starts[c.pos] + c.n.maxEnd()
}

// right moves the cursor to the next sibling, if any.
func (z *zipper[D]) right() bool {
	if len(z.stack) == 1 {
		return false
	}
	f := z.top()
	if f.pos+1 >= z.stack[len(z.stack)-2].n.len() {
		return false
	}
	z.up()
	z.downAt(f.pos + 1)
	return true
}

// left moves the cursor to the previous sibling, if any.
func (z *zipper[D]) left() bool {
	if len(z.stack) == 1 || z.top().pos == 0 {
		return false
	}
	pos := z.top().pos
	z.up()
	z.downAt(pos - 1)
	return true
}

// hasRightCousin returns whether skipRight would succeed.
func (z *zipper[D]) hasRightCousin() bool {
	for i := len(z.stack) - 1; i > 0; i-- {
		if z.stack[i].pos+1 < z.stack[i-1].n.len() {
			return true
		}
	}
	return false
}

// hasLeftCousin returns whether skipLeft would succeed.
func (z *zipper[D]) hasLeftCousin() bool {
	for i := len(z.stack) - 1; i > 0; i-- {
		if z.stack[i].pos > 0 {
			return true
		}
	}
	return false
}

// skipRight moves the cursor to the next node at the same depth, going
// through the nearest ancestor that has a right sibling on the path.
func (z *zipper[D]) skipRight() bool {
	if !z.hasRightCousin() {
		return false
	}
	depth := len(z.stack)
	for !z.right() {
		z.up()
	}
	for len(z.stack) < depth {
		z.downLeft()
	}
	return true
}

// skipLeft is the mirror image of skipRight.
func (z *zipper[D]) skipLeft() bool {
	if !z.hasLeftCousin() {
		return false
	}
	depth := len(z.stack)
	for !z.left() {
		z.up()
	}
	for len(z.stack) < depth {
		z.downRight()
	}
	return true
}

// seek moves the cursor to the leaf responsible for key. It ascends until
// the current node covers key, then extra more levels, and descends from
// there.
func (z *zipper[D]) seek(key int64, extra int) {
	for len(z.stack) > 1 && !z.top().covers(key) {
		z.up()
	}
	for ; extra > 0 && len(z.stack) > 1; extra-- {
		z.up()
	}
	for f := z.top(); !f.n.leaf; f = z.top() {
		z.downAt(f.n.route(key - f.origin))
	}
}

// insert adds a leaf entry after all entries whose start is at most start.
// If the located leaf turns out not to cover start, the search is repeated
// from a higher ancestor, up to maxInsertRetries times.
func (z *zipper[D]) insert(id nodeID, start, end int64, d D) error {
	for attempt := 0; ; attempt++ {
		z.seek(start, attempt)
		f := z.top()
		stale := !f.covers(start)
		if fn := z.ec.cfg.knobs.InsertPositionStale; fn != nil && fn(attempt) {
			stale = true
		}
		if !stale {
			if attempt > 0 && insertRetryEvery.ShouldLog() {
				log.Warningf(z.ctx, "insert of %s succeeded after %d retries", id, redact.Safe(attempt))
			}
			n := z.mutable()
			rs := start - f.origin
			n.insertEntry(n.searchAfter(rs), id, rs, end-f.origin, d)
			z.ec.parents.set(id, f.id)
			z.ec.count++
			return nil
		}
		if attempt >= maxInsertRetries {
			err := errors.Mark(
				errors.AssertionFailedf("no position for %s at key %d after %d attempts",
					id, redact.Safe(start), redact.Safe(attempt+1)),
				ErrInsertRetriesExhausted)
			log.Errorf(z.ctx, "%v", err)
			return err
		}
	}
}

// root ascends to the root, finalizing every modified node on the way, and
// then grows or shrinks the root as needed. It returns the new root. The
// zipper must not be used afterwards.
func (z *zipper[D]) root() *node[D] {
	for len(z.stack) > 1 {
		z.up()
	}
	f := z.stack[0]
	if !f.changed {
		return f.n
	}
	z.ec.rebalanceChildren(z.ctx, f.n, f.id)
	n := z.ec.growTree(z.ctx, f.n, f.id)
	n = z.ec.shrinkTree(z.ctx, n, f.id)
	f.n, f.changed = n, false
	return n
}
