// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/anchors/pkg/util/interval"
	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// scriptOpKind identifies an edit script statement.
type scriptOpKind int

const (
	opInsert scriptOpKind = iota
	opUpdate
	opRemove
	opExpand
	opCollapse
	opReplace
)

var scriptOpNames = map[string]scriptOpKind{
	"insert":   opInsert,
	"update":   opUpdate,
	"remove":   opRemove,
	"expand":   opExpand,
	"collapse": opCollapse,
	"replace":  opReplace,
}

// scriptOp is one statement of an edit script.
type scriptOp struct {
	line int
	kind scriptOpKind

	// iv is the operand of insert and update.
	iv interval.Interval[string]
	// ids is the operand of remove.
	ids []int64
	// offset and length are the operands of expand and collapse. replace
	// collapses length units at offset and then expands by newLength.
	offset, length, newLength int64
}

// parseScript reads an edit script. Each non-empty line holds one
// statement in the directive syntax of datadriven test files; lines
// starting with '#' are comments.
//
//	insert id=<id> from=<from> to=<to> [closed-left] [closed-right] [data=<text>]
//	update id=<id> from=<from> to=<to> [closed-left] [closed-right] [data=<text>]
//	remove ids=(<id>, ...)
//	expand offset=<offset> length=<length>
//	collapse offset=<offset> length=<length>
//	replace offset=<offset> old=<old-length> new=<new-length>
//
// Data containing spaces is written in parentheses, as in
// data=(two words).
func parseScript(r io.Reader) ([]scriptOp, error) {
	var ops []scriptOp
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cmd, args, err := datadriven.ParseLine(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", redact.Safe(line))
		}
		op, err := parseStatement(cmd, args)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", redact.Safe(line))
		}
		op.line = line
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading script")
	}
	return ops, nil
}

// scriptArgs gives access to the arguments of one statement and tracks
// which were consumed, so that unknown arguments can be reported.
type scriptArgs struct {
	cmd  string
	args []datadriven.CmdArg
	used []bool
}

func (a *scriptArgs) lookup(key string) (datadriven.CmdArg, bool) {
	for i, arg := range a.args {
		if arg.Key == key {
			a.used[i] = true
			return arg, true
		}
	}
	return datadriven.CmdArg{}, false
}

// intArg returns the single integer value of key, which must be present.
func (a *scriptArgs) intArg(key string) (int64, error) {
	arg, ok := a.lookup(key)
	if !ok {
		return 0, errors.Newf("%s requires %s=<int>", a.cmd, key)
	}
	if len(arg.Vals) != 1 {
		return 0, errors.Newf("%s expects a single value, found %s", key, arg)
	}
	return parseInt(arg.Vals[0])
}

// flag reports whether the value-less argument key is present.
func (a *scriptArgs) flag(key string) (bool, error) {
	arg, ok := a.lookup(key)
	if ok && len(arg.Vals) != 0 {
		return false, errors.Newf("%s does not take a value", key)
	}
	return ok, nil
}

// done returns an error naming the first argument that was not consumed.
func (a *scriptArgs) done() error {
	for i, arg := range a.args {
		if !a.used[i] {
			return errors.Newf("%s does not take %q", a.cmd, arg.Key)
		}
	}
	return nil
}

func parseStatement(cmd string, cmdArgs []datadriven.CmdArg) (scriptOp, error) {
	kind, ok := scriptOpNames[cmd]
	if !ok {
		return scriptOp{}, errors.Newf("unknown statement %q", cmd)
	}
	op := scriptOp{kind: kind}
	a := &scriptArgs{cmd: cmd, args: cmdArgs, used: make([]bool, len(cmdArgs))}
	var err error
	get := func(key string, dst *int64) {
		if err == nil {
			*dst, err = a.intArg(key)
		}
	}

	switch kind {
	case opInsert, opUpdate:
		get("id", &op.iv.ID)
		get("from", &op.iv.From)
		get("to", &op.iv.To)
		if err == nil {
			op.iv.ClosedLeft, err = a.flag("closed-left")
		}
		if err == nil {
			op.iv.ClosedRight, err = a.flag("closed-right")
		}
		if arg, ok := a.lookup("data"); ok {
			op.iv.Data = strings.Join(arg.Vals, ", ")
		}

	case opRemove:
		arg, ok := a.lookup("ids")
		if !ok || len(arg.Vals) == 0 {
			return scriptOp{}, errors.New("remove requires ids=(<id>, ...)")
		}
		op.ids = make([]int64, len(arg.Vals))
		for i, v := range arg.Vals {
			if op.ids[i], err = parseInt(v); err != nil {
				return scriptOp{}, err
			}
		}

	case opExpand, opCollapse:
		get("offset", &op.offset)
		get("length", &op.length)

	case opReplace:
		get("offset", &op.offset)
		get("old", &op.length)
		get("new", &op.newLength)
	}
	if err != nil {
		return scriptOp{}, err
	}
	if err := a.done(); err != nil {
		return scriptOp{}, err
	}
	return op, nil
}

func parseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid integer %q", s)
	}
	return v, nil
}

// apply performs op on s and returns the resulting snapshot.
func (op scriptOp) apply(s *anchorStore) (*anchorStore, error) {
	var next *anchorStore
	var err error
	switch op.kind {
	case opInsert:
		next, err = s.Insert(op.iv)
	case opUpdate:
		next, err = s.Update(op.iv)
	case opRemove:
		next, err = s.Remove(op.ids...)
	case opExpand:
		next, err = s.Expand(op.offset, op.length)
	case opCollapse:
		next, err = s.Collapse(op.offset, op.length)
	case opReplace:
		next, err = s.Replace(op.offset, op.length, op.newLength)
	default:
		return nil, errors.AssertionFailedf("unknown script op %d", op.kind)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "line %d", redact.Safe(op.line))
	}
	return next, nil
}

// runScript applies ops to s in order. It stops at the first failing
// statement.
func runScript(s *anchorStore, ops []scriptOp) (*anchorStore, error) {
	for _, op := range ops {
		var err error
		if s, err = op.apply(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}
