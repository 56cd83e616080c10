// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Package cdn detects hosts fronted by content delivery networks by their
// canonical names.
package cdn

import "strings"

// Signatures is an immutable list of domain name fragments of CDN providers.
type Signatures []string

// DefaultSignatures returns the built-in CDN provider fragments.
func DefaultSignatures() Signatures {
	return Signatures{
		"cloudflare.net", "cloudflare.com",
		"cloudfront.net",
		"kunlunpi.com", "kunlunca.com", "aliyuncs.com",
		"tencent-cloud.net", "qcloud.com", "cdntip.com",
		"akamai.net", "akamaihd.net", "edgesuite.net",
		"fastly.net",
		"cdn20.com", "w.cdngslb.com",
		"bdydns.com", "jiasule.com",
	}
}

// Match returns true if any of the canonical names contains any of the
// signatures. Matching is plain, case-sensitive substring containment, not
// anchored at label boundaries.
func (s Signatures) Match(cnames []string) bool {
	for _, cname := range cnames {
		if s.Provider(cname) != "" {
			return true
		}
	}
	return false
}

// Provider returns the first signature contained in the canonical name, or ""
// if there is none.
func (s Signatures) Provider(cname string) string {
	for _, sig := range s {
		if sig != "" && strings.Contains(cname, sig) {
			return sig
		}
	}
	return ""
}
