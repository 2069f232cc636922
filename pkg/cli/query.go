// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"strconv"

	"github.com/cockroachdb/anchors/pkg/cli/clierror"
	"github.com/cockroachdb/anchors/pkg/cli/exit"
	"github.com/cockroachdb/anchors/pkg/util/interval"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <records> <from> <to>",
	Short: "print the intervals intersecting a range",
	Long: `
Load a record file and print every interval whose offsets intersect the
range [from, to], both ends included. Boundary kinds do not affect
matching.
`,
	Args: cobra.ExactArgs(3),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	from, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return clierror.NewError(errors.Wrap(err, "invalid <from>"), exit.CommandLineFlagError())
	}
	to, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return clierror.NewError(errors.Wrap(err, "invalid <to>"), exit.CommandLineFlagError())
	}
	ls, err := loadStore(cmd.Context(), cmd, args[0])
	if err != nil {
		return err
	}
	it := ls.store.Query(from, to)
	if queryCtx.reverse {
		it = ls.store.QueryReversed(from, to)
	}
	if err := printIntervals(cmd.OutOrStdout(), interval.Collect(it)); err != nil {
		return err
	}
	return ls.finish(cmd)
}
