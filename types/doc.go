/*
Package types defines subdig's information model. A scan produces one
[Outcome] per candidate name; outcomes that are [Outcome.Reportable] turn into
[Finding] objects for the reporting layer. Address lookup failures are not
errors in the Go sense for a scan, but are classified into [Failure] kinds and
kept inside the outcome.

Found addresses can optionally be checked for reachability. For this, a found
address travels as a [HostAddress], which is a [QualifiedAddress] with the
subdomain host name attached, and which carries the reachability [Quality].

# Design Rationale

The separation into [QualifiedAddress] and [HostAddress] interfaces on one
side and the [QualifiedAddressValue] and [HostAddressValue] struct types on
the other side allows pingers to verify anything looking like a qualified
address, while the host name context survives the trip through the pinger and
verifier stages.

Reachability checking is concurrent, so addresses are passed as interface
pointers through channels. Immutability comes from an interface offering only
getters plus [QualifiedAddress.WithNewQuality] deriving new copies. This
avoids locking as well as subtle sharing bugs.
*/
package types
