// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/btree"
)

// parentIndexDegree is the degree of the btree backing a parentIndex.
const parentIndexDegree = 16

// maxTreeDepth bounds parent chains. A chain longer than this can only be a
// cycle.
const maxTreeDepth = 64

type parentEntry struct {
	child, parent nodeID
}

func parentEntryLess(a, b parentEntry) bool { return a.child.less(b.child) }

// parentIndex maps every id in a store (user intervals and synthetic nodes)
// to the id of the node holding it. Nodes carry no back pointers, so this is
// what resolves an id to its path from the root.
//
// A snapshot's index is never modified. Edits clone it and mutate the clone;
// the btree shares structure between the two lazily.
type parentIndex struct {
	// mu serializes clone, which updates the copy-on-write state of the
	// source tree. Concurrent edits of one snapshot would otherwise race.
	mu   sync.Mutex
	tree *btree.BTreeG[parentEntry]
}

func newParentIndex() *parentIndex {
	return &parentIndex{tree: btree.NewG[parentEntry](parentIndexDegree, parentEntryLess)}
}

func (pi *parentIndex) clone() *parentIndex {
	pi.mu.Lock()
	defer pi.mu.Unlock()
	return &parentIndex{tree: pi.tree.Clone()}
}

func (pi *parentIndex) get(child nodeID) (nodeID, bool) {
	e, ok := pi.tree.Get(parentEntry{child: child})
	return e.parent, ok
}

func (pi *parentIndex) has(child nodeID) bool {
	return pi.tree.Has(parentEntry{child: child})
}

func (pi *parentIndex) set(child, parent nodeID) {
	pi.tree.ReplaceOrInsert(parentEntry{child: child, parent: parent})
}

func (pi *parentIndex) remove(child nodeID) {
	pi.tree.Delete(parentEntry{child: child})
}

func (pi *parentIndex) len() int { return pi.tree.Len() }

func (pi *parentIndex) ascend(fn func(child, parent nodeID) bool) {
	pi.tree.Ascend(func(e parentEntry) bool { return fn(e.child, e.parent) })
}

// path returns id followed by its ancestors up to and including the root
// sentinel. It returns nil if id is not in the index.
func (pi *parentIndex) path(id nodeID) ([]nodeID, error) {
	if !pi.has(id) {
		return nil, nil
	}
	path := []nodeID{id}
	for cur := id; !cur.isRoot(); {
		p, ok := pi.get(cur)
		if !ok {
			return nil, errors.AssertionFailedf("parent chain of %s is broken at %s", id, cur)
		}
		path = append(path, p)
		if len(path) > maxTreeDepth {
			return nil, errors.AssertionFailedf("parent chain of %s exceeds %d levels", id, maxTreeDepth)
		}
		cur = p
	}
	return path, nil
}
