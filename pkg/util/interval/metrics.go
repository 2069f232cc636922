// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts edits and the structural work they caused. A nil *Metrics
// records nothing.
type Metrics struct {
	Edits   *prometheus.CounterVec
	Splits  prometheus.Counter
	Merges  prometheus.Counter
	Grows   prometheus.Counter
	Shrinks prometheus.Counter
	Dropped prometheus.Counter
}

// NewMetrics constructs unregistered metrics.
func NewMetrics() *Metrics {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "anchors",
			Subsystem: "interval",
			Name:      name,
			Help:      help,
		})
	}
	return &Metrics{
		Edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "anchors",
			Subsystem: "interval",
			Name:      "edits_total",
			Help:      "Number of committed edits by operation.",
		}, []string{"op"}),
		Splits:  counter("splits_total", "Number of node splits."),
		Merges:  counter("merges_total", "Number of node merges."),
		Grows:   counter("grows_total", "Number of times a root gained a level."),
		Shrinks: counter("shrinks_total", "Number of times a root lost a level."),
		Dropped: counter("dropped_total", "Number of intervals dropped by deletions."),
	}
}

// Register registers all collectors with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.Edits, m.Splits, m.Merges, m.Grows, m.Shrinks, m.Dropped,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) record(op string, st editStats) {
	if m == nil {
		return
	}
	m.Edits.WithLabelValues(op).Inc()
	m.Splits.Add(float64(st.splits))
	m.Merges.Add(float64(st.merges))
	m.Grows.Add(float64(st.grows))
	m.Shrinks.Add(float64(st.shrinks))
	m.Dropped.Add(float64(st.dropped))
}
