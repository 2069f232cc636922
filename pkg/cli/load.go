// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"github.com/cockroachdb/anchors/pkg/util/interval"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load <records>",
	Short: "load a record file and print its intervals",
	Long: `
Bulk-load the intervals of a YAML record file into a store and print them
in ascending order of their start boundary.
`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	ls, err := loadStore(cmd.Context(), cmd, args[0])
	if err != nil {
		return err
	}
	if err := printIntervals(cmd.OutOrStdout(), interval.Collect(ls.store.All())); err != nil {
		return err
	}
	return ls.finish(cmd)
}
