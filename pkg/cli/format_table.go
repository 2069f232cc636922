// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/anchors/pkg/util/interval"
	"github.com/cockroachdb/anchors/pkg/util/interval/intervalrecord"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
)

var intervalColumns = []string{"id", "from", "to", "bounds", "data"}

// boundsString renders the boundary kinds of iv as a pair of brackets.
func boundsString(iv interval.Interval[string]) string {
	l, r := "(", ")"
	if iv.ClosedLeft {
		l = "["
	}
	if iv.ClosedRight {
		r = "]"
	}
	return l + r
}

func intervalRow(iv interval.Interval[string]) []string {
	return []string{
		strconv.FormatInt(iv.ID, 10),
		strconv.FormatInt(iv.From, 10),
		strconv.FormatInt(iv.To, 10),
		boundsString(iv),
		iv.Data,
	}
}

// printIntervals prints ivs in the display format selected on the command
// line.
func printIntervals(w io.Writer, ivs []interval.Interval[string]) error {
	switch cliCtx.tableDisplayFormat {
	case tableDisplayYAML:
		recs := make([]intervalrecord.Record[string], len(ivs))
		for i, iv := range ivs {
			recs[i] = intervalrecord.FromInterval(iv)
		}
		out, err := intervalrecord.Marshal(recs)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err

	default:
		rows := make([][]string, len(ivs))
		for i, iv := range ivs {
			rows[i] = intervalRow(iv)
		}
		printTable(w, intervalColumns, rows)
		fmt.Fprintf(w, "(%d row%s)\n", len(ivs), pluralSuffix(len(ivs)))
		return nil
	}
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// printTable renders rows under the given header.
func printTable(w io.Writer, cols []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(cols)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}

// printMetrics renders the counters gathered from reg, one row per label
// combination.
func printMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	var rows [][]string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			rows = append(rows, []string{
				mf.GetName(),
				strings.Join(labels, ","),
				strconv.FormatFloat(m.GetCounter().GetValue(), 'f', -1, 64),
			})
		}
	}
	printTable(w, []string{"metric", "labels", "value"}, rows)
	return nil
}
