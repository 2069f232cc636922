// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"strings"
	"testing"

	"github.com/cockroachdb/anchors/pkg/util/interval"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	ops, err := parseScript(strings.NewReader(`
# setup
insert id=1 from=0 to=4 closed-left data=(hello world)
update id=2 from=5 to=9 closed-right closed-left
  remove ids=(3, 4)
expand offset=5 length=2
collapse offset=0 length=1
replace offset=3 old=2 new=7
insert id=5 from=1 to=2 data=see#42
`))
	require.NoError(t, err)
	require.Len(t, ops, 7)

	require.Equal(t, scriptOp{line: 3, kind: opInsert, iv: interval.Interval[string]{
		ID: 1, From: 0, To: 4, ClosedLeft: true, Data: "hello world",
	}}, ops[0])
	require.Equal(t, scriptOp{line: 4, kind: opUpdate, iv: interval.Interval[string]{
		ID: 2, From: 5, To: 9, ClosedLeft: true, ClosedRight: true,
	}}, ops[1])
	require.Equal(t, scriptOp{line: 5, kind: opRemove, ids: []int64{3, 4}}, ops[2])
	require.Equal(t, scriptOp{line: 6, kind: opExpand, offset: 5, length: 2}, ops[3])
	require.Equal(t, scriptOp{line: 7, kind: opCollapse, offset: 0, length: 1}, ops[4])
	require.Equal(t, scriptOp{line: 8, kind: opReplace, offset: 3, length: 2, newLength: 7}, ops[5])
	// Only whole lines are comments; '#' inside a value is data.
	require.Equal(t, scriptOp{line: 9, kind: opInsert, iv: interval.Interval[string]{
		ID: 5, From: 1, To: 2, Data: "see#42",
	}}, ops[6])
}

func TestParseScriptErrors(t *testing.T) {
	for _, tc := range []struct {
		script string
		err    string
	}{
		{"frobnicate id=1", `line 1: unknown statement "frobnicate"`},
		{"\ninsert id=1 from=2", "line 2: insert requires to=<int>"},
		{"insert id=1 from=2 to=3 greedy", `line 1: insert does not take "greedy"`},
		{"insert id=1 from=x to=3", `line 1: invalid integer "x"`},
		{"insert id=(1, 2) from=2 to=3", "line 1: id expects a single value"},
		{"insert id=1 from=2 to=3 closed-left=yes", "line 1: closed-left does not take a value"},
		{"remove", "line 1: remove requires ids=(<id>, ...)"},
		{"remove ids=(1, y)", `line 1: invalid integer "y"`},
		{"expand offset=1", "line 1: expand requires length=<int>"},
		{"replace offset=1 old=2", "line 1: replace requires new=<int>"},
		{"collapse offset=1 length=2 data=x", `line 1: collapse does not take "data"`},
		{"insert id=(1", "line 1: cannot parse directive"},
	} {
		t.Run(tc.script, func(t *testing.T) {
			_, err := parseScript(strings.NewReader(tc.script))
			require.ErrorContains(t, err, tc.err)
		})
	}
}

func TestRunScript(t *testing.T) {
	s, err := interval.FromIntervals([]interval.Interval[string]{
		{ID: 1, From: 0, To: 4, ClosedLeft: true},
		{ID: 2, From: 5, To: 9},
	})
	require.NoError(t, err)

	ops, err := parseScript(strings.NewReader(`
expand offset=5 length=2
insert id=3 from=1 to=3 closed-right
remove ids=1
`))
	require.NoError(t, err)
	res, err := runScript(s, ops)
	require.NoError(t, err)
	require.Equal(t, []string{"3:(1,3]", "2:(7,11)"}, intervalStrings(res))

	// The receiver is unaffected.
	require.Equal(t, []string{"1:[0,4)", "2:(5,9)"}, intervalStrings(s))

	ops, err = parseScript(strings.NewReader("remove ids=2\ninsert id=1 from=3 to=2\n"))
	require.NoError(t, err)
	_, err = runScript(s, ops)
	require.ErrorIs(t, err, interval.ErrInvalidRange)
	require.ErrorContains(t, err, "line 2")
}

func intervalStrings(s *anchorStore) []string {
	var res []string
	s.Ascend(func(iv interval.Interval[string]) bool {
		res = append(res, iv.String())
		return true
	})
	return res
}
