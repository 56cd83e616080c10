/*
Package resolver implements the upstream side of subdig: [Handle] objects
sending queries to a single upstream DNS server, [Probe] for selecting the
usable and fast upstreams out of a list of candidates, and [Pool] for handing
out the selected handles round-robin to scan tasks.

Usage

	probed, err := resolver.Probe(ctx,
	    resolver.DefaultUpstreams(),
	    resolver.WithQueryTimeout(2*time.Second),
	)
	if err != nil {
	    // errors.Is(err, resolver.ErrNoUsableResolver)
	}
	pool := resolver.NewPoolFromProbed(probed)
	addrs, err := pool.At(42).LookupAddrs(ctx, "www.example.org")

Each query is sent exactly once, with a fixed timeout. Failed lookups return
*[LookupError] errors classifying the failure.

# Network Namespaces

When given the [InNetworkNamespace] option, handles dial their sockets inside
the referenced network namespace, so a scan sees DNS exactly as, for instance,
a container does. As sockets stick to the network namespace they were created
in, only the dialing needs to switch network namespaces, not the exchange.

# Acknowledgements

Wire format and transport come from the [miekg/dns] module, probing uses
[gammazero/workerpool] as the limiting goroutine pool.

[miekg/dns]: https://github.com/miekg/dns
[gammazero/workerpool]: https://github.com/gammazero/workerpool
*/
package resolver
