// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Package wildcard learns the addresses a wildcard DNS record of a domain
// resolves to, so that candidate names aliasing these addresses can be told
// apart from real subdomains.
package wildcard

import (
	"context"
	"math/rand"
	"sort"

	"github.com/siemens/subdig/resolver"

	"github.com/thediveo/lxkns/log"
)

// BaselineLabel is the label prepended to the target domain for learning the
// wildcard addresses; it is chosen such that it practically never exists
// legitimately.
const BaselineLabel = "zq7x-wildcard-baseline-4k2m9"

// Set is an immutable set of IP addresses in textual form.
type Set map[string]struct{}

// NewSet returns a Set of the specified addresses.
func NewSet(addrs ...string) Set {
	s := make(Set, len(addrs))
	for _, addr := range addrs {
		s[addr] = struct{}{}
	}
	return s
}

// Contains returns true if addr is part of the set.
func (s Set) Contains(addr string) bool {
	_, ok := s[addr]
	return ok
}

// Intersects returns true if any of addrs is part of the set.
func (s Set) Intersects(addrs []string) bool {
	for _, addr := range addrs {
		if s.Contains(addr) {
			return true
		}
	}
	return false
}

// Addrs returns the addresses in the set, sorted.
func (s Set) Addrs() []string {
	addrs := make([]string, 0, len(s))
	for addr := range s {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	return addrs
}

// DetectOption can be passed to [Detect].
type DetectOption func(*detector)

type detector struct {
	randomProbes int
	rnd          func(n int) int
}

// WithRandomProbes additionally resolves n randomly generated labels under the
// domain and adds their addresses to the set, catching wildcards that rotate
// through several addresses.
func WithRandomProbes(n int) DetectOption {
	return func(d *detector) {
		if n > 0 {
			d.randomProbes = n
		}
	}
}

// Detect resolves the baseline name BaselineLabel + "." + domain and returns
// the addresses it resolves to. If the domain has no wildcard record, or the
// baseline lookup fails for whatever reason, Detect returns an empty Set: both
// cases are indistinguishable and never abort a scan.
func Detect(ctx context.Context, lookup resolver.Lookuper, domain string, options ...DetectOption) Set {
	d := &detector{rnd: rand.Intn}
	for _, opt := range options {
		opt(d)
	}
	labels := []string{BaselineLabel}
	for i := 0; i < d.randomProbes; i++ {
		labels = append(labels, d.randomLabel(12))
	}
	set := Set{}
	for _, label := range labels {
		addrs, err := lookup.LookupAddrs(ctx, label+"."+domain)
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			set[addr] = struct{}{}
		}
	}
	if len(set) > 0 {
		log.Debugf("wildcard baseline for %s: %v", domain, set.Addrs())
	}
	return set
}

func (d *detector) randomLabel(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	label := make([]byte, length)
	for i := range label {
		label[i] = charset[d.rnd(len(charset))]
	}
	return string(label)
}
