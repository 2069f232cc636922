// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

import (
	"slices"

	"github.com/cockroachdb/anchors/pkg/util/log"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Interval is an anchor: a range [From, To] of user offsets with an id and
// a payload. A closed boundary is greedy: text inserted exactly at it
// becomes part of the interval.
type Interval[D any] struct {
	ID          int64
	From, To    int64
	ClosedLeft  bool
	ClosedRight bool
	Data        D
}

// SafeFormat implements redact.SafeFormatter. The payload is not printed.
func (iv Interval[D]) SafeFormat(w redact.SafePrinter, _ rune) {
	l, r := '(', ')'
	if iv.ClosedLeft {
		l = '['
	}
	if iv.ClosedRight {
		r = ']'
	}
	w.Printf("%d:%c%d,%d%c",
		redact.Safe(iv.ID), redact.SafeRune(l), redact.Safe(iv.From), redact.Safe(iv.To), redact.SafeRune(r))
}

func (iv Interval[D]) String() string { return redact.StringWithoutMarkers(iv) }

func (iv Interval[D]) startKey() int64 { return encodeStart(iv.From, iv.ClosedLeft) }

func (iv Interval[D]) endKey() int64 { return encodeEnd(iv.To, iv.ClosedRight) }

func (iv Interval[D]) validate() error {
	if iv.ID <= 0 {
		return errors.Wrapf(ErrInvalidID, "id %d", redact.Safe(iv.ID))
	}
	if err := checkCoordinate(iv.From); err != nil {
		return errors.Wrapf(err, "interval %s", iv)
	}
	if err := checkCoordinate(iv.To); err != nil {
		return errors.Wrapf(err, "interval %s", iv)
	}
	if iv.From > iv.To {
		return errors.Wrapf(ErrInvalidRange, "interval %s ends before it starts", iv)
	}
	return nil
}

func makeInterval[D any](id nodeID, start, end int64, d D) Interval[D] {
	from, cl := decodeStart(start)
	to, cr := decodeEnd(end)
	return Interval[D]{ID: id.n, From: from, To: to, ClosedLeft: cl, ClosedRight: cr, Data: d}
}

// Store is an immutable snapshot of a set of intervals. Every edit returns a
// new snapshot that shares all unmodified structure with the receiver; the
// receiver stays valid and unchanged. Snapshots may be read concurrently.
//
// Intervals live in one of two trees according to their left boundary, so
// that within a tree the order by start key and insertion order always
// agree, however text is inserted or deleted.
type Store[D any] struct {
	cfg           *config
	open, closed  *node[D]
	parents       *parentIndex
	nextSynthetic int64
	count         int
}

// New returns an empty store. It panics if the options produce an invalid
// configuration.
func New[D any](opts ...Option) *Store[D] {
	cfg := &config{Config: DefaultConfig()}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	tok := &cowToken{}
	return &Store[D]{
		cfg:     cfg,
		open:    newLeaf[D](tok),
		closed:  newLeaf[D](tok),
		parents: newParentIndex(),
	}
}

// FromIntervals bulk-loads ivs, in any order, into a new store. Intervals
// with equal From keep their relative order.
func FromIntervals[D any](ivs []Interval[D], opts ...Option) (*Store[D], error) {
	sorted := slices.Clone(ivs)
	slices.SortStableFunc(sorted, func(a, b Interval[D]) int {
		switch {
		case a.From < b.From:
			return -1
		case a.From > b.From:
			return 1
		}
		return 0
	})
	b := New[D](opts...).NewBatch()
	for _, iv := range sorted {
		if err := b.Add(iv); err != nil {
			return nil, err
		}
	}
	return b.Commit()
}

// Len returns the number of intervals in the store.
func (s *Store[D]) Len() int { return s.count }

// Config returns the tunables of the store.
func (s *Store[D]) Config() Config { return s.cfg.Config }

// Insert returns a store that additionally holds iv.
func (s *Store[D]) Insert(iv Interval[D]) (*Store[D], error) {
	if err := iv.validate(); err != nil {
		return nil, err
	}
	if s.parents.has(userNodeID(iv.ID)) {
		return nil, errors.Wrapf(ErrDuplicateID, "id %d", redact.Safe(iv.ID))
	}
	ec := s.newEditContext()
	if err := ec.insert(iv); err != nil {
		return nil, err
	}
	return ec.commit("insert"), nil
}

// Update returns a store in which the interval with iv.ID is replaced by iv.
// If there is no such interval, iv is inserted.
func (s *Store[D]) Update(iv Interval[D]) (*Store[D], error) {
	if err := iv.validate(); err != nil {
		return nil, err
	}
	ec := s.newEditContext()
	if err := ec.remove([]nodeID{userNodeID(iv.ID)}); err != nil {
		return nil, err
	}
	if err := ec.insert(iv); err != nil {
		return nil, err
	}
	return ec.commit("update"), nil
}

// Remove returns a store without the intervals with the given ids. Unknown
// ids are ignored.
func (s *Store[D]) Remove(ids ...int64) (*Store[D], error) {
	targets := make([]nodeID, 0, len(ids))
	for _, id := range ids {
		if nid := userNodeID(id); s.parents.has(nid) {
			targets = append(targets, nid)
		}
	}
	if len(targets) == 0 {
		return s, nil
	}
	ec := s.newEditContext()
	if err := ec.remove(targets); err != nil {
		return nil, err
	}
	return ec.commit("remove"), nil
}

func (ec *editContext[D]) insert(iv Interval[D]) error {
	z := ec.zipper(treeRootID(iv.ClosedLeft))
	if err := z.insert(userNodeID(iv.ID), iv.startKey(), iv.endKey(), iv.Data); err != nil {
		return err
	}
	ec.finish(z)
	return nil
}

// remove deletes the given ids. For each tree, the set of nodes on the paths
// from the targets to the root is computed from the parent index and only
// those nodes are visited; each of them is rebalanced once on the way back
// up.
func (ec *editContext[D]) remove(targets []nodeID) error {
	doomed := make(map[nodeID]struct{}, len(targets))
	touched := map[nodeID]map[nodeID]struct{}{}
	for _, id := range targets {
		path, err := ec.parents.path(id)
		if err != nil {
			log.Errorf(ec.ctx, "%v", err)
			return err
		}
		if path == nil {
			continue
		}
		doomed[id] = struct{}{}
		rootID := path[len(path)-1]
		t := touched[rootID]
		if t == nil {
			t = map[nodeID]struct{}{}
			touched[rootID] = t
		}
		for _, p := range path[1 : len(path)-1] {
			t[p] = struct{}{}
		}
	}
	for _, rootID := range []nodeID{openRootID, closedRootID} {
		t, ok := touched[rootID]
		if !ok {
			continue
		}
		z := ec.zipper(rootID)
		ec.prune(z, doomed, t)
		ec.finish(z)
	}
	return nil
}

func (ec *editContext[D]) prune(z *zipper[D], doomed, touched map[nodeID]struct{}) {
	f := z.top()
	if f.n.leaf {
		n := z.mutable()
		for i := 0; i < n.len(); {
			if _, ok := doomed[n.ids[i]]; ok {
				ec.parents.remove(n.ids[i])
				n.removeAt(i)
				ec.count--
				continue
			}
			i++
		}
		return
	}
	for i := 0; i < f.n.len(); i++ {
		if _, ok := touched[f.n.ids[i]]; ok {
			z.downAt(i)
			ec.prune(z, doomed, touched)
			z.up()
		}
	}
}

// FindByID returns the interval with the given id. It resolves the path of
// the id through the parent index and descends along it.
func (s *Store[D]) FindByID(id int64) (Interval[D], bool) {
	path, err := s.parents.path(userNodeID(id))
	if err != nil {
		panic(err)
	}
	if path == nil {
		return Interval[D]{}, false
	}
	n := s.open
	if path[len(path)-1] == closedRootID {
		n = s.closed
	}
	var origin int64
	for k := len(path) - 2; ; k-- {
		i := n.indexOf(path[k])
		if i < 0 {
			panic(errors.AssertionFailedf("%s not found in node on the path of %s", path[k], path[0]))
		}
		if k == 0 {
			if !n.leaf {
				panic(errors.AssertionFailedf("%s is held by an internal node", path[0]))
			}
			return makeInterval(path[0], origin+n.starts[i], origin+n.ends[i], n.data[i]), true
		}
		origin += n.starts[i]
		n = n.children[i]
	}
}

// Get returns the payload of the interval with the given id.
func (s *Store[D]) Get(id int64) (D, bool) {
	iv, ok := s.FindByID(id)
	return iv.Data, ok
}

// maxTo returns the largest To in the store, or -1 if it is empty.
func (s *Store[D]) maxTo() int64 {
	m := int64(-1)
	for _, n := range []*node[D]{s.open, s.closed} {
		if n.len() == 0 {
			continue
		}
		if to, _ := decodeEnd(n.maxEnd()); to > m {
			m = to
		}
	}
	return m
}
