/*
Package ping verifies the reachability of the addresses of subdomains found,
by pinging them using ICMP(v4/v6) echo requests or, when running
unprivileged, UDP-based pings.

A [Pinger] runs its verifications concurrently in a goroutine-limited worker
pool and streams its verdicts as [types.QualifiedAddress] values to the
verdict channel returned by [New]. For each address submitted a Pinger first
emits the address in quality [types.Verifying] and later its final verdict of
either [types.Verified] or [types.Invalid]:

	                  +--------+
	QualifiedAddress-->| Pinger +-->ch QualifiedAddress
	                  +--------+

When the scan runs from inside a different network namespace, the pings should
too: see [InNetworkNamespace].

# Acknowledgements

Under its hood, [Pinger] leverages [go-ping/ping] for the pings and
[gammazero/workerpool] as the limiting goroutine pool.

[go-ping/ping]: https://github.com/go-ping/ping
[gammazero/workerpool]: https://github.com/gammazero/workerpool
*/
package ping
