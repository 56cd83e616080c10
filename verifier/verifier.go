// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package verifier

import (
	"context"

	"github.com/siemens/subdig/ping"
	"github.com/siemens/subdig/types"
)

// Verifier verifies a stream of host addresses, pinging each distinct address
// only once.
type Verifier struct {
	news     chan types.HostAddress
	pinger   *ping.Pinger
	verdicts <-chan types.QualifiedAddress
}

// New returns a new Verifier with the specified maximum number of parallel
// verifications, together with its news channel. The pinger options are
// passed on to the underlying [ping.Pinger], such as for pinging from a
// different network namespace.
func New(size int, options ...ping.PingerOption) (*Verifier, <-chan types.HostAddress) {
	pinger, verdicts := ping.New(size, options...)
	v := &Verifier{
		news:     make(chan types.HostAddress, size),
		pinger:   pinger,
		verdicts: verdicts,
	}
	return v, v.news
}

// Verify the host addresses received from in until in gets closed. Verify
// then waits for all pending verifications, closes the news channel and
// returns. A cancelled context makes Verify return as soon as possible, also
// closing the news channel.
func (v *Verifier) Verify(ctx context.Context, in <-chan types.HostAddress) {
	cache := NewHostAddressCache()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case verdict, ok := <-v.verdicts:
				if !ok {
					return
				}
				cache.Update(ctx, verdict.(types.HostAddress), v.news)
			case <-ctx.Done():
				return
			}
		}
	}()
slurp:
	for {
		select {
		case hostaddr, ok := <-in:
			if !ok {
				break slurp
			}
			if hostaddr.Addr() == "" {
				continue
			}
			if cache.Update(ctx, hostaddr, v.news) {
				v.pinger.ValidateQA(ctx, hostaddr)
			}
		case <-ctx.Done():
			break slurp
		}
	}
	v.pinger.StopWait()
	// the verdict goroutine returns early on cancellation, but must be gone
	// before closing the news.
	<-done
	close(v.news)
}
