// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package resolver

import (
	"time"

	"github.com/thediveo/lxkns/ops"
	"github.com/thediveo/lxkns/ops/relations"
	"github.com/thediveo/lxkns/species"
)

// Defaults for resolver handles and probing.
const (
	DefaultQueryTimeout     = 2 * time.Second
	DefaultProbeTimeout     = 200 * time.Millisecond
	DefaultProbeConcurrency = 8
	DefaultReferenceName    = "example.com"
)

// settings are shared by handles and the probe; probe-only fields are ignored
// by handles.
type settings struct {
	queryTimeout     time.Duration
	probeTimeout     time.Duration
	latencyThreshold time.Duration
	probeConcurrency int
	referenceName    string
	netns            relations.Relation // network namespace to query from, or nil.
}

// Option can be passed to [NewHandle] and [Probe].
type Option func(*settings)

func newSettings(options []Option) *settings {
	s := &settings{
		queryTimeout:     DefaultQueryTimeout,
		probeTimeout:     DefaultProbeTimeout,
		latencyThreshold: DefaultProbeTimeout,
		probeConcurrency: DefaultProbeConcurrency,
		referenceName:    DefaultReferenceName,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// WithQueryTimeout sets the timeout of each single query issued by a handle.
// There is always exactly one attempt per query.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.queryTimeout = d
		}
	}
}

// WithProbeTimeout sets the probe query timeout as well as the latency
// threshold an upstream must stay below in order to be retained.
func WithProbeTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.probeTimeout = d
			s.latencyThreshold = d
		}
	}
}

// WithLatencyThreshold sets the latency threshold independently of the probe
// timeout.
func WithLatencyThreshold(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.latencyThreshold = d
		}
	}
}

// WithProbeConcurrency limits the number of upstreams probed in parallel.
func WithProbeConcurrency(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.probeConcurrency = n
		}
	}
}

// WithReferenceName sets the well-known name resolved when probing.
func WithReferenceName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.referenceName = name
		}
	}
}

// InNetworkNamespace optionally sends all queries from inside the network
// namespace referenced by the specified filesystem path, such as
// "/proc/666/ns/net". An empty reference keeps the caller's network namespace.
func InNetworkNamespace(netnsref string) Option {
	return func(s *settings) {
		if netnsref == "" {
			s.netns = nil
			return
		}
		s.netns = ops.NewTypedNamespacePath(netnsref, species.CLONE_NEWNET)
	}
}
