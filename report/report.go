// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package report

import (
	"github.com/siemens/subdig/types"
)

// Sink receives the findings and progress of a scan.
type Sink interface {
	// Found is called for each subdomain found.
	Found(finding types.Finding)
	// Progress is called after each candidate outcome.
	Progress(done, total int)
}

// Summary sums up the outcomes of a scan.
type Summary struct {
	Total     int                   `json:"total"`     // candidates scanned.
	Found     int                   `json:"found"`     // reportable subdomains.
	CDN       int                   `json:"cdn"`       // reportable subdomains fronted by a CDN.
	Wildcards int                   `json:"wildcards"` // candidates aliasing the wildcard record.
	Failed    int                   `json:"failed"`    // candidates failing to resolve.
	Failures  map[types.Failure]int `json:"-"`         // failed candidates by failure kind.
}

// AnyFound returns true if at least one subdomain was found.
func (s Summary) AnyFound() bool { return s.Found > 0 }

// Drain the outcomes of a scan of total candidates until the outcome channel
// gets closed, reporting findings and progress to the sink. The sink may be
// nil.
func Drain(outcomes <-chan types.Outcome, total int, sink Sink) Summary {
	summary := Summary{Failures: map[types.Failure]int{}}
	for outcome := range outcomes {
		summary.Total++
		switch {
		case outcome.Reportable():
			summary.Found++
			if outcome.CDN {
				summary.CDN++
			}
			if sink != nil {
				sink.Found(outcome.Finding())
			}
		case outcome.Resolved():
			summary.Wildcards++
		default:
			summary.Failed++
			summary.Failures[outcome.Failure()]++
		}
		if sink != nil {
			sink.Progress(summary.Total, total)
		}
	}
	return summary
}
