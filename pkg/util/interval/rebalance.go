// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

import (
	"context"

	"github.com/cockroachdb/anchors/pkg/util/log"
	"github.com/cockroachdb/redact"
)

// rebalanceChildren brings every child of n within the branching bounds:
// empty children are removed, overfull ones split and underfull ones merged
// into a sibling. n must be owned by the edit and nid must be its id.
//
// An underfull only child cannot be fixed here. It is fixed when n itself,
// then also underfull, is merged into a sibling (which rebalances the merged
// node) or becomes the root and is collapsed by shrinkTree.
func (ec *editContext[D]) rebalanceChildren(ctx context.Context, n *node[D], nid nodeID) {
	if n.leaf {
		return
	}
	for i := 0; i < n.len(); {
		if n.children[i].len() == 0 {
			log.VEventf(ctx, 3, "removing empty node %s from %s", n.ids[i], nid)
			ec.parents.remove(n.ids[i])
			n.removeAt(i)
			continue
		}
		i++
	}
	for i := 0; i < n.len(); {
		switch c := n.children[i]; {
		case c.len() > ec.cfg.MaxChildren:
			i += ec.splitNode(n, nid, i)
		case c.len() < ec.cfg.minChildren() && n.len() > 1:
			i = ec.mergeChildren(ctx, n, nid, i)
		default:
			i++
		}
	}
}

// splitNode halves the child in slot i of n until every part fits. The
// left part keeps the child's id; every other part gets a synthetic id and
// its entries are re-parented. It returns the number of slots the child now
// occupies.
func (ec *editContext[D]) splitNode(n *node[D], nid nodeID, i int) int {
	c := n.children[i]
	if c.len() <= ec.cfg.MaxChildren {
		return 1
	}
	c = c.mutableFor(ec.tok)
	n.children[i] = c
	right := c.splitOff(c.len()/2, ec.tok)
	rid := ec.newSyntheticID()
	for _, id := range right.ids {
		ec.parents.set(id, rid)
	}
	d := right.normalize()
	n.ends[i] = n.starts[i] + c.maxEnd()
	rs := n.starts[i] + d
	n.insertChild(i+1, rid, rs, rs+right.maxEnd(), right)
	ec.parents.set(rid, nid)
	ec.stats.splits++
	k := ec.splitNode(n, nid, i+1)
	return ec.splitNode(n, nid, i) + k
}

// mergeChildren merges the child in slot i of n with its left sibling (or
// its right sibling if it has none), rebalances the merged node, and splits
// it again if it overflows. It returns the slot to continue from.
func (ec *editContext[D]) mergeChildren(ctx context.Context, n *node[D], nid nodeID, i int) int {
	l, r := i-1, i
	if i == 0 {
		l, r = 0, 1
	}
	left := n.children[l].mutableFor(ec.tok)
	right := n.children[r]
	lid, rid := n.ids[l], n.ids[r]
	for _, id := range right.ids {
		ec.parents.set(id, lid)
	}
	ec.parents.remove(rid)
	left.appendFrom(right, n.starts[r]-n.starts[l])
	n.children[l] = left
	n.removeAt(r)
	ec.stats.merges++
	log.VEventf(ctx, 3, "merged %s into %s (%d slots)", rid, lid, redact.Safe(left.len()))

	ec.rebalanceChildren(ctx, left, lid)
	n.starts[l] += left.normalize()
	n.ends[l] = n.starts[l] + left.maxEnd()
	ec.splitNode(n, nid, l)
	return l
}

// growTree adds levels above root until it fits. root must be owned by the
// edit.
func (ec *editContext[D]) growTree(ctx context.Context, root *node[D], rootID nodeID) *node[D] {
	for root.len() > ec.cfg.MaxChildren {
		cid := ec.newSyntheticID()
		for _, id := range root.ids {
			ec.parents.set(id, cid)
		}
		d := root.normalize()
		nr := newInternal[D](ec.tok)
		nr.insertChild(0, cid, d, d+root.maxEnd(), root)
		ec.parents.set(cid, rootID)
		ec.splitNode(nr, rootID, 0)
		root = nr
		ec.stats.grows++
		log.VEventf(ctx, 2, "grew %s to %d children", rootID, redact.Safe(root.len()))
	}
	return root
}

// shrinkTree removes levels from the top while the root is an internal node
// with a single child. An internal root left without children becomes an
// empty leaf.
func (ec *editContext[D]) shrinkTree(ctx context.Context, root *node[D], rootID nodeID) *node[D] {
	for !root.leaf && root.len() == 1 {
		c := root.children[0].mutableFor(ec.tok)
		c.shift(root.starts[0])
		ec.parents.remove(root.ids[0])
		for _, id := range c.ids {
			ec.parents.set(id, rootID)
		}
		root = c
		ec.stats.shrinks++
		log.VEventf(ctx, 2, "shrank %s to %d slots", rootID, redact.Safe(root.len()))
	}
	if !root.leaf && root.len() == 0 {
		root = newLeaf[D](ec.tok)
	}
	return root
}
