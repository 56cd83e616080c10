// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package dig

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ErrInvalidDomain signals a target domain that cannot be scanned.
var ErrInvalidDomain = errors.New("invalid domain")

// CandidateName returns the candidate subdomain name for the specified word.
func CandidateName(word, domain string) string {
	return word + "." + domain
}

// NormalizeDomain returns the specified target domain in lower case and
// without any trailing dot. It rejects empty domains as well as ICANN public
// suffixes such as "com" or "co.uk", because there is nobody to own their
// subdomains. Privately operated suffixes such as "github.io" are fine.
func NormalizeDomain(domain string) (string, error) {
	domain = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(domain), "."))
	if domain == "" {
		return "", fmt.Errorf("empty domain: %w", ErrInvalidDomain)
	}
	if strings.ContainsAny(domain, " \t/:") || strings.Contains(domain, "..") {
		return "", fmt.Errorf("malformed domain %q: %w", domain, ErrInvalidDomain)
	}
	if suffix, icann := publicsuffix.PublicSuffix(domain); icann && suffix == domain {
		return "", fmt.Errorf("domain %q is a public suffix: %w", domain, ErrInvalidDomain)
	}
	return domain, nil
}
