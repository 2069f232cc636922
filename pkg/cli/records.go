// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/anchors/pkg/util/interval"
	"github.com/cockroachdb/anchors/pkg/util/interval/intervalrecord"
	"github.com/cockroachdb/anchors/pkg/util/log"
	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/kr/pretty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// anchorStore is the store the tool operates on. Interval data is free
// text.
type anchorStore = interval.Store[string]

// loadedStore is a store read from a record file together with the
// metrics it reports its edits to.
type loadedStore struct {
	path     string
	store    *anchorStore
	metrics  *interval.Metrics
	registry *prometheus.Registry
}

// debugLog receives the --debug dump of parsed records.
var debugLog = log.NewStdLogger(log.SeverityInfo, "pkg/cli")

// loadStore reads the record file at path and bulk-loads it into a store
// configured from storeCfg.
func loadStore(ctx context.Context, cmd *cobra.Command, path string) (*loadedStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading records")
	}
	recs, err := intervalrecord.Unmarshal[string](data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing records %s", path)
	}
	if cliCtx.debug {
		debugLog.Printf("%# v", pretty.Formatter(recs))
	}

	ls := &loadedStore{
		path:     path,
		metrics:  interval.NewMetrics(),
		registry: prometheus.NewRegistry(),
	}
	if err := ls.metrics.Register(ls.registry); err != nil {
		return nil, err
	}
	var ambient log.AmbientContext
	ambient.AddLogTag("file", path)
	ls.store, err = intervalrecord.ToStore(recs,
		interval.WithConfig(storeCfg),
		interval.WithAmbientContext(ambient),
		interval.WithMetrics(ls.metrics),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	ctx = ambient.AnnotateCtx(ctx)
	log.VEventf(ctx, 1, "loaded %d intervals", ls.store.Len())
	fmt.Fprintln(cmd.ErrOrStderr(),
		log.FormatWithContextTags(ctx, "loaded %s intervals", humanize.Comma(int64(ls.store.Len()))))
	return ls, nil
}

// finish prints the store's metrics if requested.
func (ls *loadedStore) finish(cmd *cobra.Command) error {
	if !cliCtx.showMetrics {
		return nil
	}
	return printMetrics(cmd.ErrOrStderr(), ls.registry)
}
