// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

import (
	"fmt"

	"github.com/cockroachdb/redact"
)

type idKind uint8

const (
	// userID identifies an interval supplied by the caller.
	userID idKind = iota
	// syntheticID identifies an internal node allocated by an edit.
	syntheticID
	// rootSentinel identifies the root of the open or the closed tree.
	rootSentinel
)

// nodeID is the identity of every slot in a tree: user intervals at the
// leaves, synthetic ids for internal nodes, and a sentinel for each root.
// The kind is explicit so that the id spaces can never collide.
type nodeID struct {
	kind idKind
	n    int64
}

var (
	openRootID   = nodeID{kind: rootSentinel, n: 0}
	closedRootID = nodeID{kind: rootSentinel, n: 1}
)

func userNodeID(id int64) nodeID {
	return nodeID{kind: userID, n: id}
}

func (id nodeID) less(o nodeID) bool {
	if id.kind != o.kind {
		return id.kind < o.kind
	}
	return id.n < o.n
}

func (id nodeID) isUser() bool { return id.kind == userID }
func (id nodeID) isRoot() bool { return id.kind == rootSentinel }

// SafeFormat implements redact.SafeFormatter.
func (id nodeID) SafeFormat(w redact.SafePrinter, _ rune) {
	switch id.kind {
	case userID:
		w.Printf("i%d", redact.Safe(id.n))
	case syntheticID:
		w.Printf("n%d", redact.Safe(id.n))
	default:
		if id == openRootID {
			w.SafeString("root(open)")
		} else {
			w.SafeString("root(closed)")
		}
	}
}

func (id nodeID) String() string { return redact.StringWithoutMarkers(id) }

var _ fmt.Stringer = nodeID{}
