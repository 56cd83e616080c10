// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import (
	"errors"
	"fmt"
)

// Failure classifies why looking up a candidate name did not yield addresses.
type Failure int

// The kinds of lookup failures.
const (
	NoFailure     Failure = iota // lookup succeeded.
	NXDomain                     // name does not exist.
	NoAnswer                     // name exists, but has no records of the queried type(s).
	Timeout                      // no response within the query timeout.
	Network                      // sending or receiving the query failed.
	ServerFailure                // upstream answered with an error response code.
	Malformed                    // response could not be understood.
)

// String returns the clear-text representation of a Failure value.
func (f Failure) String() string {
	switch f {
	case NoFailure:
		return "none"
	case NXDomain:
		return "nxdomain"
	case NoAnswer:
		return "no answer"
	case Timeout:
		return "timeout"
	case Network:
		return "network error"
	case ServerFailure:
		return "server failure"
	case Malformed:
		return "malformed response"
	}
	return fmt.Sprintf("Failure(%d)", f)
}

// FailureOf returns the Failure kind carried by err. A nil error is
// NoFailure, an error without failure information is considered to be a
// Network failure.
func FailureOf(err error) Failure {
	if err == nil {
		return NoFailure
	}
	var f interface{ Failure() Failure }
	if errors.As(err, &f) {
		return f.Failure()
	}
	return Network
}

// Outcome is the classification of a single candidate name, produced exactly
// once per candidate by a scan.
type Outcome struct {
	Index    int      // position of the candidate in the wordlist.
	Name     string   // candidate name, word + "." + domain.
	Addrs    []string // resolved addresses in textual form; nil on failure.
	Err      error    // address lookup error, if any.
	Wildcard bool     // addresses intersect the wildcard baseline.
	CDN      bool     // CNAME chain matches a CDN signature.
	CNAMEs   []string // canonical names, if looked up and found.
}

// Resolved returns true if the address lookup succeeded with at least one
// address.
func (o *Outcome) Resolved() bool {
	return o.Err == nil && len(o.Addrs) > 0
}

// Reportable returns true if the outcome is a finding: resolved and not
// aliasing the wildcard baseline. Wildcard suppression wins over CDN
// annotation.
func (o *Outcome) Reportable() bool {
	return o.Resolved() && !o.Wildcard
}

// Failure returns the kind of address lookup failure, or NoFailure.
func (o *Outcome) Failure() Failure {
	return FailureOf(o.Err)
}

// Finding returns the reportable information of this outcome.
func (o *Outcome) Finding() Finding {
	return Finding{
		Name:      o.Name,
		Addresses: append([]string(nil), o.Addrs...),
		CDN:       o.CDN,
		CNAMEs:    append([]string(nil), o.CNAMEs...),
	}
}

// Finding is a found, non-wildcard subdomain.
type Finding struct {
	Name      string   `json:"name"`
	Addresses []string `json:"addresses"`
	CDN       bool     `json:"cdn"`
	CNAMEs    []string `json:"cnames,omitempty"`
}
