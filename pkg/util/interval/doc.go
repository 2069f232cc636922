// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package interval implements a persistent store of anchors: intervals over
// the offsets of a text buffer that follow the text as it is edited.
//
// A Store is an immutable snapshot. Insert, Remove, Update, Expand (text
// insertion), Collapse (text deletion) and Replace return new snapshots that
// share every unmodified node with the snapshot they were derived from, so
// any number of versions can coexist and be queried concurrently.
//
// Each interval boundary is either closed (greedy) or open. Text inserted
// exactly at a greedy boundary becomes part of the interval; text inserted
// at an open boundary does not. Both kinds are folded into a single integer
// key per boundary:
//
//	start(x) = 2x-1 (closed) | 2x (open)
//	end(x)   = 2x+1 (closed) | 2x (open)
//
// so that an insertion at offset o moves exactly the starts >= 2o and the
// ends > 2o, and no comparison ever needs to look at boundary kinds.
//
// Intervals are kept in two B-trees, one per left boundary kind. Nodes hold
// the keys of their slots relative to their own origin, together with the
// extent of each child, which lets an edit shift a whole subtree by touching
// a single slot. A parent index maps every id to the node holding it and
// resolves ids to paths without parent pointers in the (shared) nodes.
//
// Edits go through a zipper, a cursor that copies nodes on the way down only
// when it modifies them and installs the copies on the way back up,
// rebalancing them as it leaves them.
package interval
