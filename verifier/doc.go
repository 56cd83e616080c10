/*
Package verifier verifies the addresses of the subdomains found, caching the
verdicts so that an address shared by several subdomains gets pinged only
once.

A [Verifier] reads [types.HostAddress] values until its input channel gets
closed and streams quality updates for them, first [types.Verifying] and
finally [types.Verified] or [types.Invalid]. The concrete verification is
carried out by a [ping.Pinger].
*/
package verifier
