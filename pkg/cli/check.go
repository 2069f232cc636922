// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"

	"github.com/cockroachdb/anchors/pkg/cli/clierror"
	"github.com/cockroachdb/anchors/pkg/cli/exit"
	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <records>",
	Short: "verify the structure of a loaded store",
	Long: `
Bulk-load a record file and verify the structural invariants of the
resulting trees: node occupancy, ordering, aggregate ends and the parent
index. Exits with a dedicated status code if a violation is found.
`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	ls, err := loadStore(cmd.Context(), cmd, args[0])
	if err != nil {
		return err
	}
	if err := ls.store.Verify(); err != nil {
		return clierror.NewError(errors.Wrapf(err, "checking %s", args[0]), exit.CheckFailed())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %s intervals\n", humanize.Comma(int64(ls.store.Len())))
	return ls.finish(cmd)
}
