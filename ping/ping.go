// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package ping

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/siemens/subdig/types"

	"github.com/gammazero/workerpool"
	"github.com/go-ping/ping"
	"github.com/thediveo/lxkns/ops"
	"github.com/thediveo/lxkns/ops/relations"
	"github.com/thediveo/lxkns/species"
)

// ErrUnreachable signals an address answering too few pings.
var ErrUnreachable = errors.New("no replies or too many losses")

// Pinger verifies addresses by pinging them, streaming its verdicts.
type Pinger struct {
	count        int           // number of pings per address.
	interval     time.Duration // between consecutive pings.
	threshold    int           // percentage of replies for an address to count as reachable.
	unprivileged bool          // UDP instead of ICMP.

	netns    relations.Relation // network namespace to ping from, or nil.
	workers  *workerpool.WorkerPool
	verdicts chan types.QualifiedAddress
	stopOnce sync.Once
}

// PingerOption can be passed to New when creating new Pinger objects.
type PingerOption func(*Pinger)

// New returns a new [Pinger] with a worker pool of the specified size,
// together with its verdict channel. The verdict channel gets closed by
// [Pinger.StopWait].
//
// A new Pinger pings each address 3 times at intervals of 1s and requires 50%
// of the pings to be answered. This can be changed using the options
// [WithCount], [WithInterval], and [WithThresholdPercentage].
func New(size int, options ...PingerOption) (*Pinger, <-chan types.QualifiedAddress) {
	return newPinger(size, size, options...)
}

func newPinger(workers int, buffer int, options ...PingerOption) (*Pinger, <-chan types.QualifiedAddress) {
	p := &Pinger{
		count:     3,
		interval:  time.Second,
		threshold: 50,
		workers:   workerpool.New(workers),
		verdicts:  make(chan types.QualifiedAddress, buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p, p.verdicts
}

// InNetworkNamespace pings from inside the network namespace referenced by the
// specified filesystem path, such as "/proc/666/ns/net". An empty path keeps
// pinging from the caller's network namespace.
func InNetworkNamespace(netnsref string) PingerOption {
	return func(p *Pinger) {
		if netnsref == "" {
			p.netns = nil
			return
		}
		p.netns = ops.NewTypedNamespacePath(netnsref, species.CLONE_NEWNET)
	}
}

// WithCount sets the number of pings per address.
func WithCount(count uint) PingerOption {
	return func(p *Pinger) {
		if count > 0 {
			p.count = int(count)
		}
	}
}

// WithInterval sets the interval between consecutive pings.
func WithInterval(interval time.Duration) PingerOption {
	return func(p *Pinger) {
		p.interval = interval
	}
}

// AsUnprivileged sends UDP-based pings instead of ICMP packets.
func AsUnprivileged() PingerOption {
	return func(p *Pinger) {
		p.unprivileged = true
	}
}

// WithThresholdPercentage sets the percentage (0..100) of ping replies needed
// for an address to be verified. It panics on percentages above 100.
func WithThresholdPercentage(threshold uint) PingerOption {
	if threshold > 100 {
		panic(fmt.Errorf("Pinger: threshold must be a percentage between 0 <= threshold <= 100, got: %d",
			threshold))
	}
	return func(p *Pinger) {
		p.threshold = int(threshold)
	}
}

// Validate the specified IP address literal by pinging it.
func (p *Pinger) Validate(ctx context.Context, addr string) {
	p.ValidateQA(ctx, &types.QualifiedAddressValue{Address: addr})
}

// ValidateQA validates the address of the specified qualified address, such
// as a [types.HostAddressValue]. The verdicts keep the concrete type of addr.
//
// ValidateQA immediately sends addr in quality Verifying to the verdict
// channel and then queues the verification. When the context gets cancelled
// while the verification is pending, the final verdict might or might not
// make it to the verdict channel.
func (p *Pinger) ValidateQA(ctx context.Context, addr types.QualifiedAddress) {
	verifying := addr.WithNewQuality(types.Verifying, nil)
	if !p.send(ctx, verifying) {
		return
	}
	p.workers.Submit(func() {
		var verdict types.QualifiedAddress
		if err := p.reach(ctx, verifying.Addr()); err != nil {
			verdict = verifying.WithNewQuality(types.Invalid, err)
		} else {
			verdict = verifying.WithNewQuality(types.Verified, nil)
		}
		p.send(ctx, verdict)
	})
}

// send a verdict unless the context is done first.
func (p *Pinger) send(ctx context.Context, verdict types.QualifiedAddress) bool {
	select {
	case p.verdicts <- verdict:
		return true
	case <-ctx.Done():
		return false
	}
}

// reach pings the address, switching into the pinger's network namespace if
// necessary, and returns nil if enough pings were answered.
func (p *Pinger) reach(ctx context.Context, addr string) error {
	if p.netns == nil {
		return p.ping(ctx, addr)
	}
	// ops.Execute reports switching errors separately from the function's
	// result, which here is the ping error.
	res, err := ops.Execute(func() interface{} {
		return p.ping(ctx, addr)
	}, p.netns)
	if err != nil {
		return err
	}
	if pingerr, ok := res.(error); ok {
		return pingerr
	}
	return nil
}

func (p *Pinger) ping(ctx context.Context, addr string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pinger, err := ping.NewPinger(addr)
	if err != nil {
		return err
	}
	pinger.SetPrivileged(!p.unprivileged)
	pinger.Count = p.count
	pinger.Interval = p.interval
	pinger.Timeout = p.interval * time.Duration(p.count+2)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			pinger.Stop()
		case <-stop:
		}
	}()
	if err := pinger.Run(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if stats := pinger.Statistics(); stats.PacketsRecv*100 < p.count*p.threshold {
		return ErrUnreachable
	}
	return nil
}

// StopWait waits for all queued verifications to finish and then closes the
// verdict channel. It can safely be called multiple times.
func (p *Pinger) StopWait() {
	p.stopOnce.Do(func() {
		p.workers.StopWait()
		close(p.verdicts)
	})
}
