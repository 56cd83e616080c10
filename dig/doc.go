/*
Package dig brute-forces the subdomains of a target domain by resolving
candidate names built from a wordlist, sorting out wildcard aliases and
flagging CDN-fronted hosts.

A [Scanner] runs the candidate lookups concurrently, but under the constraint
of a limited number of goroutines, spreading the candidates round-robin across
a [resolver.Pool] of upstream DNS servers. Each candidate yields exactly one
[types.Outcome] on the scanner's outcome channel, in completion order; failed
lookups are no exception and end up as unreportable outcomes. Looking up a
single candidate is the job of [Classify]:

  - first, the A records of the candidate get queried and, only if there are
    none, its AAAA records.
  - if any of the addresses found is also an address of the domain's wildcard
    baseline (see [wildcard.Detect]) the candidate is a wildcard alias and
    thus not worth reporting.
  - otherwise, the CNAME chain of the candidate gets followed and matched
    against the CDN signatures.

All DNS lookups are implemented in pure Go, leveraging the incredible
[miekg/dns] module.

[miekg/dns]: https://github.com/miekg/dns
*/
package dig
