// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/siemens/subdig/types"

	"github.com/miekg/dns"
	"github.com/thediveo/lxkns/log"
	"github.com/thediveo/lxkns/ops"
	"github.com/thediveo/lxkns/ops/relations"
)

// maxCNAMEHops limits following CNAME chains.
const maxCNAMEHops = 8

// Lookuper looks up the addresses and canonical names of names. Lookupers are
// safe for concurrent use.
type Lookuper interface {
	// LookupAddrs returns the IPv4 addresses of name or, if there are none,
	// its IPv6 addresses.
	LookupAddrs(ctx context.Context, name string) ([]string, error)
	// LookupCNAMEs returns the CNAME chain of name.
	LookupCNAMEs(ctx context.Context, name string) ([]string, error)
}

// Handle sends queries to a single upstream DNS server, with a fixed query
// timeout and without retries. A Handle never changes after creation and can
// be shared by any number of goroutines: each query uses its own UDP socket.
type Handle struct {
	upstream Upstream
	client   *dns.Client
	timeout  time.Duration
	netns    relations.Relation // network namespace to query from, or nil.
}

var _ Lookuper = (*Handle)(nil)

// NewHandle returns a new Handle for the specified upstream.
//
// To query from a network namespace different to that of the OS-level thread
// of the caller specify the [InNetworkNamespace] option.
func NewHandle(upstream Upstream, options ...Option) *Handle {
	return newHandle(upstream, newSettings(options))
}

func newHandle(upstream Upstream, s *settings) *Handle {
	return &Handle{
		upstream: upstream,
		client: &dns.Client{
			Net:     "udp",
			Timeout: s.queryTimeout,
		},
		timeout: s.queryTimeout,
		netns:   s.netns,
	}
}

// Upstream returns the upstream DNS server this handle talks to.
func (h *Handle) Upstream() Upstream { return h.upstream }

// String returns the upstream's label and address.
func (h *Handle) String() string {
	return fmt.Sprintf("%s (%s)", h.upstream.Label, h.upstream.Addr)
}

// LookupAddrs queries the A records of name and, only if there are none, its
// AAAA records. It returns a *LookupError if the lookup fails or yields no
// addresses at all.
func (h *Handle) LookupAddrs(ctx context.Context, name string) ([]string, error) {
	return h.lookupAddrs(ctx, name, h.timeout)
}

func (h *Handle) lookupAddrs(ctx context.Context, name string, timeout time.Duration) ([]string, error) {
	var addrs []string
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		r, err := h.exchange(ctx, name, qtype, timeout)
		if err != nil {
			return nil, err
		}
		// A nonexisting name won't have AAAA records either.
		if lerr := rcodeError(name, r.Rcode); lerr != nil {
			return nil, lerr
		}
		for _, rr := range r.Answer {
			switch addrRR := rr.(type) {
			case *dns.A:
				addrs = append(addrs, addrRR.A.String())
			case *dns.AAAA:
				addrs = append(addrs, addrRR.AAAA.String())
			}
		}
		if len(addrs) > 0 {
			return addrs, nil
		}
	}
	return nil, &LookupError{Name: name, Kind: types.NoAnswer}
}

// LookupCNAMEs follows the CNAME chain of name, returning the canonical names
// in chain order. A failure after the first hop ends the chain without error.
// It returns a *LookupError if the first hop fails or name is no alias.
func (h *Handle) LookupCNAMEs(ctx context.Context, name string) ([]string, error) {
	var cnames []string
	seen := map[string]struct{}{}
	next := dns.Fqdn(name)
	for hop := 0; hop < maxCNAMEHops; hop++ {
		r, err := h.exchange(ctx, next, dns.TypeCNAME, h.timeout)
		if err == nil {
			if lerr := rcodeError(next, r.Rcode); lerr != nil {
				err = lerr
			}
		}
		if err != nil {
			if hop == 0 {
				return nil, err
			}
			log.Debugf("CNAME chain of %s ends early: %s", name, err.Error())
			break
		}
		target := ""
		for _, rr := range r.Answer {
			if cname, ok := rr.(*dns.CNAME); ok {
				if _, dup := seen[cname.Target]; dup {
					continue
				}
				seen[cname.Target] = struct{}{}
				cnames = append(cnames, cname.Target)
				target = cname.Target
			}
		}
		if target == "" {
			break
		}
		next = target
	}
	if len(cnames) == 0 {
		return nil, &LookupError{Name: name, Kind: types.NoAnswer}
	}
	return cnames, nil
}

// exchange sends a single query with the specified timeout and returns the
// response. Transport errors are classified into *LookupError errors.
func (h *Handle) exchange(ctx context.Context, name string, qtype uint16, timeout time.Duration) (*dns.Msg, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	conn, err := h.dial(ctx)
	if err != nil {
		return nil, transportError(name, err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	// unblock a pending read when the caller cancels; the exchange sets its
	// own deadlines, so only closing the socket reliably does.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	msg := dns.Msg{
		MsgHdr: dns.MsgHdr{Id: dns.Id()},
	}
	msg.SetQuestion(dns.Fqdn(name), qtype)
	msg.RecursionDesired = true
	dnsclnt := dns.Client{Net: h.client.Net, Timeout: timeout}
	r, _, err := dnsclnt.ExchangeWithConn(&msg, conn)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return nil, transportError(name, err)
	}
	if r == nil {
		return nil, &LookupError{Name: name, Kind: types.Malformed}
	}
	return r, nil
}

// dial a fresh UDP "connection" to the upstream, inside the handle's network
// namespace if necessary. Sockets stay in the network namespace they were
// created in, so only dialing needs switching.
func (h *Handle) dial(ctx context.Context) (*dns.Conn, error) {
	dial := func() interface{} {
		conn, err := h.client.DialContext(ctx, h.upstream.Addr)
		if err != nil {
			return err
		}
		return conn
	}
	var res interface{}
	if h.netns != nil {
		var err error
		res, err = ops.Execute(dial, h.netns)
		if err != nil {
			return nil, err
		}
	} else {
		res = dial()
	}
	switch v := res.(type) {
	case *dns.Conn:
		return v, nil
	case error:
		return nil, v
	}
	return nil, fmt.Errorf("dialing %s failed", h.upstream.Addr)
}
