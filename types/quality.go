// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import "fmt"

// Quality indicates the reachability "quality" of a found address: not yet
// checked, being pinged, or with a final verdict.
type Quality int

// The reachability qualities of a found address.
const (
	Unverified Quality = iota // address not (yet) submitted for pinging.
	Verifying                 // address currently being pinged.
	Invalid                   // address did not answer enough pings.
	Verified                  // address answered pings.
)

// String returns the clear-text representation of a Quality value.
func (q Quality) String() string {
	switch q {
	case Unverified:
		return "unverified"
	case Verifying:
		return "verifying"
	case Verified:
		return "verified"
	case Invalid:
		return "invalid"
	}
	return fmt.Sprintf("Quality(%d)", q)
}

// IsPending returns true as long as an address hasn't received its final
// verdict of either Verified or Invalid.
func (q Quality) IsPending() bool {
	switch q {
	case Unverified, Verifying:
		return true
	default:
		return false
	}
}
