// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

import (
	"github.com/cockroachdb/anchors/pkg/util/log"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Expand returns the store resulting from the insertion of length units of
// text at offset. Boundaries after offset move right by length. A boundary
// exactly at offset moves if it is an open left boundary or a closed right
// boundary, so greedy intervals absorb the text and non-greedy ones let it
// in front of or behind them.
func (s *Store[D]) Expand(offset, length int64) (*Store[D], error) {
	if err := s.checkEdit(offset, length, length); err != nil {
		return nil, err
	}
	if length == 0 {
		return s, nil
	}
	ec := s.newEditContext()
	ec.expand(offset, length)
	return ec.commit("expand"), nil
}

// Collapse returns the store resulting from the deletion of the text in
// [offset, offset+length). Boundaries inside the range move to offset and
// boundaries after it move left by length. Intervals ending at or before
// offset are untouched. With DropEmpty, intervals that the deletion reduces
// to zero width are removed.
func (s *Store[D]) Collapse(offset, length int64) (*Store[D], error) {
	if err := s.checkEdit(offset, length, 0); err != nil {
		return nil, err
	}
	if length == 0 {
		return s, nil
	}
	ec := s.newEditContext()
	ec.collapse(offset, length)
	return ec.commit("collapse"), nil
}

// Replace returns the store resulting from replacing the oldLen units of
// text at offset with newLen units: a deletion followed by an insertion, in
// one edit.
func (s *Store[D]) Replace(offset, oldLen, newLen int64) (*Store[D], error) {
	if err := s.checkEdit(offset, oldLen, 0); err != nil {
		return nil, err
	}
	if err := s.checkEdit(offset, newLen, newLen); err != nil {
		return nil, err
	}
	if oldLen == 0 && newLen == 0 {
		return s, nil
	}
	ec := s.newEditContext()
	if oldLen > 0 {
		ec.collapse(offset, oldLen)
	}
	if newLen > 0 {
		ec.expand(offset, newLen)
	}
	return ec.commit("replace"), nil
}

// checkEdit validates the arguments of an edit that may move boundaries
// right by up to grow.
func (s *Store[D]) checkEdit(offset, length, grow int64) error {
	if length < 0 {
		return errors.Wrapf(ErrInvalidRange, "negative length %d", redact.Safe(length))
	}
	if err := checkCoordinate(offset); err != nil {
		return err
	}
	if err := checkCoordinate(length); err != nil {
		return err
	}
	if m := s.maxTo(); m >= offset && m > MaxCoordinate-grow {
		return errors.Wrapf(ErrCoordinateOverflow,
			"expanding by %d at %d would move offset %d past %d",
			redact.Safe(grow), redact.Safe(offset), redact.Safe(m), redact.Safe(int64(MaxCoordinate)))
	}
	return nil
}

func (ec *editContext[D]) expand(offset, length int64) {
	for _, rootID := range []nodeID{openRootID, closedRootID} {
		if (*ec.rootFor(rootID)).len() == 0 {
			continue
		}
		z := ec.zipper(rootID)
		expandNode(z, pointKey(offset), 2*length)
		ec.finish(z)
	}
}

// expandNode pushes an insertion at key p through the node at the cursor:
// slots starting at or after p shift by delta, slots ending after p grow by
// delta, others are untouched. Shifting an internal slot only touches the
// slot itself since the child's keys are relative. An internal slot ending
// exactly at p is still descended into, as it may hold open points at p.
func expandNode[D any](z *zipper[D], p, delta int64) {
	f := z.top()
	for i := 0; i < f.n.len(); i++ {
		s, e := f.origin+f.n.starts[i], f.origin+f.n.ends[i]
		switch {
		case s >= p:
			n := z.mutable()
			n.starts[i] += delta
			n.ends[i] += delta
		case e < p, e == p && f.n.leaf:
		case f.n.leaf:
			n := z.mutable()
			n.ends[i] += delta
		default:
			z.downAt(i)
			expandNode(z, p, delta)
			z.up()
		}
	}
}

func (ec *editContext[D]) collapse(offset, length int64) {
	for _, rootID := range []nodeID{openRootID, closedRootID} {
		if (*ec.rootFor(rootID)).len() == 0 {
			continue
		}
		z := ec.zipper(rootID)
		ec.collapseNode(z, offset, length)
		ec.finish(z)
	}
}

// collapseNode pushes the deletion of [offset, offset+length) through the
// node at the cursor. Slots are classified by the user offsets of their
// extent: ending at or before offset, untouched; starting at or after the
// deleted range, shifted; otherwise leaf entries are remapped (or dropped)
// and children are recursed into. The children of modified nodes are
// rebalanced as the cursor moves up.
func (ec *editContext[D]) collapseNode(z *zipper[D], offset, length int64) {
	f := z.top()
	for i := 0; i < f.n.len(); {
		s, e := f.origin+f.n.starts[i], f.origin+f.n.ends[i]
		xs, _ := decodeStart(s)
		xe, _ := decodeEnd(e)
		switch {
		case xe <= offset:
		case xs >= offset+length:
			n := z.mutable()
			n.starts[i] -= 2 * length
			n.ends[i] -= 2 * length
		case f.n.leaf:
			ns, ne := collapseStart(s, offset, length), collapseEnd(e, offset, length)
			n := z.mutable()
			from, _ := decodeStart(ns)
			if to, _ := decodeEnd(ne); ec.cfg.DropEmpty && from == to {
				log.VEventf(z.ctx, 3, "dropping %s collapsed to %d", n.ids[i], redact.Safe(from))
				ec.parents.remove(n.ids[i])
				n.removeAt(i)
				ec.count--
				ec.stats.dropped++
				continue
			}
			n.starts[i] = ns - f.origin
			n.ends[i] = ne - f.origin
		default:
			z.downAt(i)
			ec.collapseNode(z, offset, length)
			z.up()
		}
		i++
	}
}
