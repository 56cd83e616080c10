// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package verifier

import (
	"context"
	"sync"

	"github.com/siemens/subdig/types"
)

// HostAddressCache caches the quality of addresses, together with the hosts
// waiting for the verdict of a pending address.
type HostAddressCache struct {
	mu sync.Mutex
	m  map[string]addressState // IP address -> quality and waiting hosts
}

// NewHostAddressCache returns a new HostAddressCache object.
func NewHostAddressCache() *HostAddressCache {
	return &HostAddressCache{
		m: map[string]addressState{},
	}
}

type addressState struct {
	q       types.Quality
	err     error    // reason for Invalid quality, if any.
	waiting []string // hosts to notify when the quality changes.
}

func (s *addressState) waits(host string) bool {
	for _, waiting := range s.waiting {
		if waiting == host {
			return true
		}
	}
	return false
}

// Update the cache with the specified host address and send the resulting
// quality updates to news. Update returns true only if the address has never
// been seen before, telling the caller to start verifying it.
//
// Hosts sharing an already known address get the most recent quality of that
// address at once. When an address reaches a final verdict, all hosts waiting
// for it get notified.
func (c *HostAddressCache) Update(ctx context.Context, hostaddr types.HostAddress, news chan<- types.HostAddress) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	addr := hostaddr.Addr()
	host := hostaddr.Host()
	state, ok := c.m[addr]
	if !ok {
		c.m[addr] = addressState{
			q:       hostaddr.Qual(),
			waiting: []string{host},
		}
		send(ctx, news, hostaddr)
		return true
	}
	if hostaddr.Qual() <= state.q {
		// stale update: only a host new to this address needs to learn about
		// the current quality.
		if !state.waits(host) {
			if state.q.IsPending() {
				state.waiting = append(state.waiting, host)
				c.m[addr] = state
			}
			send(ctx, news, hostaddr.WithNewQuality(state.q, state.err).(types.HostAddress))
		}
		return false
	}
	state.q = hostaddr.Qual()
	state.err = hostaddr.Err()
	var notify []string
	if state.q.IsPending() {
		if !state.waits(host) {
			state.waiting = append(state.waiting, host)
		}
		notify = state.waiting
	} else {
		notify, state.waiting = state.waiting, nil
	}
	c.m[addr] = state
	for _, waiting := range notify {
		update := &types.HostAddressValue{Hostname: waiting, QualifiedAddressValue: hostaddr.QA()}
		if !send(ctx, news, update.WithNewQuality(state.q, state.err).(types.HostAddress)) {
			return false
		}
	}
	return false
}

// Quality returns the cached quality of the specified address.
func (c *HostAddressCache) Quality(addr string) (types.Quality, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state, ok := c.m[addr]
	return state.q, ok
}

func send(ctx context.Context, news chan<- types.HostAddress, hostaddr types.HostAddress) bool {
	select {
	case news <- hostaddr:
		return true
	case <-ctx.Done():
		return false
	}
}
