// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"sort"
	"strings"

	"github.com/siemens/subdig/report"
	"github.com/siemens/subdig/types"
)

// renderer renders the terminal display of the subdomains found so far,
// together with the scan progress.
type renderer struct {
	Indentation int
	domain      string
	w           io.Writer
	spinner     *spinner
}

// newRenderer returns a renderer rendering the scan of the specified domain to
// the specified io.Writer.
func newRenderer(w io.Writer, domain string) *renderer {
	sp := newSpinner()
	sp.Start(*spinnerInterval)
	return &renderer{
		Indentation: int(*indentation),
		domain:      domain,
		w:           w,
		spinner:     sp,
	}
}

// Stop the renderer's background ticker.
func (r *renderer) Stop() {
	r.spinner.Stop()
}

// Render the progress and entries of the specified board.
func (r *renderer) Render(board *report.Board) {
	done, total := board.Counts()
	entries := board.Get()
	if done < total || total == 0 {
		fmt.Fprintf(r.w, "%sdigging subdomains of %s: %d/%d candidates\n",
			r.spinner.Spinner(), r.domain, done, total)
	} else {
		fmt.Fprintf(r.w, "subdomains of %s: %d/%d candidates\n", r.domain, done, total)
	}
	// keep the addresses column from zig-zagging around.
	maxlen := 0
	for _, entry := range entries {
		if l := len(entry.Name); l > maxlen {
			maxlen = l
		}
	}
	for _, entry := range entries {
		r.renderSubdomain(maxlen, entry)
	}
}

// renderSubdomain renders a single subdomain with its qualified addresses.
func (r *renderer) renderSubdomain(namewidth int, entry report.Subdomain) {
	fmt.Fprintf(r.w, "%-*s%s%s", r.Indentation, "",
		subdomainStyle.Styled(entry.Name), strings.Repeat(" ", namewidth-len(entry.Name)))
	sortQualifiedAddresses(entry.Addresses)
	for _, addr := range entry.Addresses {
		fmt.Fprint(r.w, " ")
		switch addr.Quality {
		case types.Unverified:
			fmt.Fprintf(r.w, " %s", addr.Address)
		case types.Verifying:
			fmt.Fprint(r.w, verifyingAddressStyle.Styled(" "+r.spinner.Spinner()+addr.Address+" "))
		case types.Verified:
			fmt.Fprint(r.w, validAddressStyle.Styled(" ✔ "+addr.Address+" "))
		case types.Invalid:
			fmt.Fprint(r.w, invalidAddressStyle.Styled(" × "+addr.Address+" "))
		}
	}
	if entry.CDN {
		fmt.Fprint(r.w, " ", cdnStyle.Styled("[CDN]"))
	}
	fmt.Fprintln(r.w)
}

// renderFinding renders a single finding on a line of its own, for plain
// output.
func renderFinding(w io.Writer, finding types.Finding) {
	fmt.Fprintf(w, "%s %s", finding.Name, strings.Join(finding.Addresses, ","))
	if finding.CDN {
		fmt.Fprint(w, " [CDN]")
	}
	fmt.Fprintln(w)
}

// renderSummary renders the final verdict of a scan.
func renderSummary(w io.Writer, summary report.Summary) {
	if !summary.AnyFound() {
		fmt.Fprintln(w, "no subdomain found")
		return
	}
	fmt.Fprintf(w, "found %d subdomain(s), %d behind a CDN", summary.Found, summary.CDN)
	if summary.Wildcards > 0 {
		fmt.Fprintf(w, ", skipped %d wildcard alias(es)", summary.Wildcards)
	}
	fmt.Fprintln(w)
}

// sortQualifiedAddresses sorts a slice of qualified address in place by their
// address values.
func sortQualifiedAddresses(addrs []types.QualifiedAddressValue) {
	sort.Slice(addrs, func(a, b int) bool {
		ipA := net.ParseIP(addrs[a].Address)
		ipB := net.ParseIP(addrs[b].Address)
		return bytes.Compare(ipA, ipB) < 0
	})
}
