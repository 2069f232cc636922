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

// Verify checks the structural invariants of the store and returns an
// assertion failure describing the first violation found. It walks every
// node, so it is meant for tests and offline checks.
func (s *Store[D]) Verify() error {
	v := verifier[D]{s: s}
	for _, t := range []struct {
		id   nodeID
		root *node[D]
	}{{openRootID, s.open}, {closedRootID, s.closed}} {
		if err := v.tree(t.id, t.root); err != nil {
			return err
		}
	}
	if v.users != s.count {
		return errors.AssertionFailedf("store counts %d intervals, trees hold %d",
			redact.Safe(s.count), redact.Safe(v.users))
	}
	if n := s.parents.len(); n != v.slots {
		return errors.AssertionFailedf("parent index holds %d entries, trees hold %d ids",
			redact.Safe(n), redact.Safe(v.slots))
	}
	var err error
	s.parents.ascend(func(child, parent nodeID) bool {
		if child.kind == syntheticID && child.n > s.nextSynthetic {
			err = errors.AssertionFailedf("%s is beyond the synthetic id counter %d",
				child, redact.Safe(s.nextSynthetic))
		}
		return err == nil
	})
	return err
}

type verifier[D any] struct {
	s            *Store[D]
	users, slots int
	rootID       nodeID
	leafDepth    int
	lastStart    int64
	leaves       []*node[D]
}

func (v *verifier[D]) tree(rootID nodeID, root *node[D]) error {
	v.rootID = rootID
	v.leafDepth = -1
	v.lastStart = math.MinInt64
	v.leaves = v.leaves[:0]
	if !root.leaf && root.len() == 0 {
		return errors.AssertionFailedf("%s is an empty internal node", rootID)
	}
	if _, err := v.node(rootID, root, 0, 0); err != nil {
		return err
	}
	return v.cousins(rootID, root)
}

// node checks the subtree rooted at n and returns its maximum end key.
func (v *verifier[D]) node(id nodeID, n *node[D], origin int64, depth int) (int64, error) {
	cfg := v.s.cfg
	if n.len() > cfg.MaxChildren {
		return 0, errors.AssertionFailedf("%s has %d slots, more than %d",
			id, redact.Safe(n.len()), redact.Safe(cfg.MaxChildren))
	}
	if !id.isRoot() && n.len() < cfg.minChildren() {
		return 0, errors.AssertionFailedf("%s has %d slots, fewer than %d",
			id, redact.Safe(n.len()), redact.Safe(cfg.minChildren()))
	}
	if !id.isRoot() && n.starts[0] != 0 {
		return 0, errors.AssertionFailedf("%s is not normalized: first start %d",
			id, redact.Safe(n.starts[0]))
	}
	if n.leaf {
		if v.leafDepth < 0 {
			v.leafDepth = depth
		} else if v.leafDepth != depth {
			return 0, errors.AssertionFailedf("leaf %s at depth %d, expected %d",
				id, redact.Safe(depth), redact.Safe(v.leafDepth))
		}
		v.leaves = append(v.leaves, n)
	}
	maxEnd := int64(math.MinInt64)
	for i := 0; i < n.len(); i++ {
		cid := n.ids[i]
		start, end := origin+n.starts[i], origin+n.ends[i]
		if i > 0 && n.starts[i] < n.starts[i-1] {
			return 0, errors.AssertionFailedf("%s: slot %d of %s starts before its predecessor",
				cid, redact.Safe(i), id)
		}
		if p, ok := v.s.parents.get(cid); !ok || p != id {
			return 0, errors.AssertionFailedf("%s is held by %s but indexed under %s (found: %t)",
				cid, id, p, redact.Safe(ok))
		}
		v.slots++
		if n.leaf {
			if !cid.isUser() {
				return 0, errors.AssertionFailedf("leaf %s holds non-interval id %s", id, cid)
			}
			v.users++
			if start < v.lastStart {
				return 0, errors.AssertionFailedf("%s is out of order", cid)
			}
			v.lastStart = start
			closed := start&1 != 0
			if want := v.rootID == closedRootID; closed != want {
				return 0, errors.AssertionFailedf("%s with closed left boundary %t is in the wrong tree",
					cid, redact.Safe(closed))
			}
			from, _ := decodeStart(start)
			to, _ := decodeEnd(end)
			if from < 0 || from > to || to > MaxCoordinate {
				return 0, errors.AssertionFailedf("%s has invalid range [%d, %d]",
					cid, redact.Safe(from), redact.Safe(to))
			}
		} else {
			if cid.kind != syntheticID {
				return 0, errors.AssertionFailedf("internal node %s holds non-node id %s", id, cid)
			}
			childEnd, err := v.node(cid, n.children[i], start, depth+1)
			if err != nil {
				return 0, err
			}
			if childEnd != end {
				return 0, errors.AssertionFailedf("%s records end %d for %s, subtree ends at %d",
					id, redact.Safe(end), cid, redact.Safe(childEnd))
			}
		}
		maxEnd = max(maxEnd, end)
	}
	return maxEnd, nil
}

// cousins checks that stepping from leaf to leaf with a zipper visits the
// same leaves as the depth-first walk, in both directions.
func (v *verifier[D]) cousins(rootID nodeID, root *node[D]) error {
	walk := func(first func(*zipper[D]), step func(*zipper[D]) bool) []*node[D] {
		z := newZipper[D](nil, root, rootID)
		for !z.top().n.leaf {
			first(z)
		}
		leaves := []*node[D]{z.top().n}
		for step(z) {
			leaves = append(leaves, z.top().n)
		}
		return leaves
	}
	fwd := walk((*zipper[D]).downLeft, (*zipper[D]).skipRight)
	rev := walk((*zipper[D]).downRight, (*zipper[D]).skipLeft)
	if len(fwd) != len(v.leaves) || len(rev) != len(v.leaves) {
		return errors.AssertionFailedf("%s: leaf walks visit %d and %d leaves, tree has %d",
			rootID, redact.Safe(len(fwd)), redact.Safe(len(rev)), redact.Safe(len(v.leaves)))
	}
	for i, n := range v.leaves {
		if fwd[i] != n || rev[len(rev)-1-i] != n {
			return errors.AssertionFailedf("%s: leaf walks diverge at leaf %d", rootID, redact.Safe(i))
		}
	}
	return nil
}
