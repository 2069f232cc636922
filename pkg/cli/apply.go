// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"os"

	"github.com/cockroachdb/anchors/pkg/util/interval"
	"github.com/cockroachdb/anchors/pkg/util/log"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply <records> <script>",
	Short: "replay an edit script against a record file",
	Long: `
Load a record file, apply the statements of an edit script in order and
print the resulting intervals. The script holds one statement per line:

  insert id=<id> from=<from> to=<to> [closed-left] [closed-right] [data=<text>]
  update id=<id> from=<from> to=<to> [closed-left] [closed-right] [data=<text>]
  remove ids=(<id>, ...)
  expand offset=<offset> length=<length>
  collapse offset=<offset> length=<length>
  replace offset=<offset> old=<old-length> new=<new-length>

Data containing spaces is written in parentheses, as in data=(two words).
Lines starting with '#' are comments. The command fails without output at
the first statement that cannot be applied.
`,
	Args: cobra.ExactArgs(2),
	RunE: runApply,
}

func runApply(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[1])
	if err != nil {
		return errors.Wrap(err, "opening script")
	}
	defer f.Close()
	ops, err := parseScript(f)
	if err != nil {
		return errors.Wrapf(err, "parsing %s", args[1])
	}

	ls, err := loadStore(cmd.Context(), cmd, args[0])
	if err != nil {
		return err
	}
	result, err := runScript(ls.store, ops)
	if err != nil {
		return errors.Wrapf(err, "applying %s", args[1])
	}
	log.VEventf(cmd.Context(), 1, "applied %d statements, %d intervals remain", len(ops), result.Len())
	if err := printIntervals(cmd.OutOrStdout(), interval.Collect(result.All())); err != nil {
		return err
	}
	return ls.finish(cmd)
}
