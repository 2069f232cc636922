// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package interval

import (
	"github.com/cockroachdb/anchors/pkg/util/log"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

const (
	// DefaultMaxChildren is the default branching factor of a store.
	DefaultMaxChildren = 32
	// MinMaxChildren is the smallest branching factor a store accepts.
	MinMaxChildren = 4

	// maxInsertRetries bounds the number of times an insert re-routes from a
	// higher ancestor before giving up with an assertion failure.
	maxInsertRetries = 3
)

// Config holds the tunables of a store. The zero value is not valid; use
// DefaultConfig.
type Config struct {
	// MaxChildren bounds the number of slots per node. Non-root nodes hold at
	// least MaxChildren/2.
	MaxChildren int `yaml:"max_children"`
	// DropEmpty drops intervals that a deletion collapses to zero width
	// instead of keeping them as points.
	DropEmpty bool `yaml:"drop_empty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{MaxChildren: DefaultMaxChildren}
}

// Validate returns an error wrapping ErrInvalidConfig if c is unusable.
func (c Config) Validate() error {
	if c.MaxChildren < MinMaxChildren {
		return errors.Wrapf(ErrInvalidConfig, "max children %d is below %d",
			redact.Safe(c.MaxChildren), redact.Safe(MinMaxChildren))
	}
	return nil
}

// TestingKnobs allows tests to interpose on the edit machinery.
type TestingKnobs struct {
	// InsertPositionStale, if set, is consulted after an insert located its
	// leaf; returning true makes the insert treat the position as stale and
	// retry from a higher ancestor.
	InsertPositionStale func(attempt int) bool
}

// config is the immutable configuration shared by all snapshots derived
// from the same New call.
type config struct {
	Config
	ambient log.AmbientContext
	metrics *Metrics
	knobs   TestingKnobs
}

func (c *config) minChildren() int { return c.MaxChildren / 2 }

// Option configures a store.
type Option func(*config)

// WithConfig replaces the tunables wholesale.
func WithConfig(cfg Config) Option {
	return func(c *config) { c.Config = cfg }
}

// WithMaxChildren sets the branching factor.
func WithMaxChildren(n int) Option {
	return func(c *config) { c.MaxChildren = n }
}

// WithDropEmpty sets the policy for intervals collapsed to zero width.
func WithDropEmpty(drop bool) Option {
	return func(c *config) { c.DropEmpty = drop }
}

// WithAmbientContext sets the log tags attached to events emitted by edits.
func WithAmbientContext(ac log.AmbientContext) Option {
	return func(c *config) { c.ambient = ac }
}

// WithMetrics makes edits record into m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithTestingKnobs installs testing knobs.
func WithTestingKnobs(k TestingKnobs) Option {
	return func(c *config) { c.knobs = k }
}
