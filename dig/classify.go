// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package dig

import (
	"context"

	"github.com/siemens/subdig/cdn"
	"github.com/siemens/subdig/resolver"
	"github.com/siemens/subdig/types"
	"github.com/siemens/subdig/wildcard"
)

// Classify looks up the addresses of the candidate name using the specified
// lookuper and classifies the result against the wildcard baseline and the
// CDN signatures. Classify never fails: lookup errors are recorded in the
// returned outcome instead. A failed CNAME lookup simply means "no CDN".
func Classify(ctx context.Context, lookup resolver.Lookuper, name string, wildcards wildcard.Set, signatures cdn.Signatures) types.Outcome {
	outcome := types.Outcome{Name: name}
	addrs, err := lookup.LookupAddrs(ctx, name)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Addrs = addrs
	if wildcards.Intersects(addrs) {
		outcome.Wildcard = true
		return outcome
	}
	cnames, err := lookup.LookupCNAMEs(ctx, name)
	if err != nil {
		return outcome
	}
	outcome.CNAMEs = cnames
	outcome.CDN = signatures.Match(cnames)
	return outcome
}
