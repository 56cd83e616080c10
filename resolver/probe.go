// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/thediveo/lxkns/log"
)

// Probed is an upstream that passed probing, together with a handle for
// querying it.
type Probed struct {
	Label   string
	Handle  *Handle
	Latency time.Duration // time taken to answer the probe query.
}

// Probe checks the specified upstream DNS servers for liveness and latency by
// resolving a well-known reference name once, with a short timeout. Upstreams
// answering successfully below the latency threshold are returned, in the
// order of their probes completing; all others are silently discarded without
// retrying. Only a few upstreams are probed at the same time, so the probing
// doesn't look like an attack.
//
// If not a single upstream passes, Probe returns an error wrapping
// [ErrNoUsableResolver].
//
// The returned handles are configured using the same options, such as
// [WithQueryTimeout] and [InNetworkNamespace].
func Probe(ctx context.Context, upstreams []Upstream, options ...Option) ([]Probed, error) {
	s := newSettings(options)
	workers := workerpool.New(s.probeConcurrency)
	passed := make(chan Probed, len(upstreams))
	for _, upstream := range upstreams {
		upstream := upstream
		workers.Submit(func() {
			handle := newHandle(upstream, s)
			start := time.Now()
			_, err := handle.lookupAddrs(ctx, s.referenceName, s.probeTimeout)
			elapsed := time.Since(start)
			switch {
			case err != nil:
				log.Debugf("discarding resolver %s: %s", handle, err.Error())
			case elapsed >= s.latencyThreshold:
				log.Debugf("discarding resolver %s: too slow, took %s", handle, elapsed)
			default:
				passed <- Probed{Label: upstream.Label, Handle: handle, Latency: elapsed}
			}
		})
	}
	workers.StopWait()
	close(passed)
	probed := make([]Probed, 0, len(passed))
	for p := range passed {
		probed = append(probed, p)
	}
	if len(probed) == 0 {
		return nil, fmt.Errorf("all %d probed resolvers failed: %w", len(upstreams), ErrNoUsableResolver)
	}
	log.Debugf("%d out of %d resolvers passed probing", len(probed), len(upstreams))
	return probed, nil
}
