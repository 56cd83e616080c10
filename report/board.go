// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"sort"
	"sync"

	"github.com/siemens/subdig/types"
)

// Subdomain is a subdomain found, together with the qualified addresses it
// resolved to.
type Subdomain struct {
	Name      string                        `json:"name"`
	CDN       bool                          `json:"cdn"`
	Addresses []types.QualifiedAddressValue `json:"addresses"`
}

// Board keeps the subdomains found and the qualities of their addresses. It
// is safe for concurrent use, so the findings of a scan and the quality
// updates of verifications can be tracked while rendering the board.
type Board struct {
	mu          sync.Mutex
	m           map[string]*Subdomain
	done, total int
}

var _ Sink = (*Board)(nil)

// NewBoard returns a new and properly initialized Board.
func NewBoard() *Board {
	return &Board{
		m: map[string]*Subdomain{},
	}
}

// Found adds a finding, with its addresses yet unverified.
func (b *Board) Found(finding types.Finding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.m[finding.Name]
	if !ok {
		entry = &Subdomain{Name: finding.Name, Addresses: []types.QualifiedAddressValue{}}
		b.m[finding.Name] = entry
	}
	entry.CDN = entry.CDN || finding.CDN
	for _, addr := range finding.Addresses {
		entry.add(types.QualifiedAddressValue{Address: addr, Quality: types.Unverified})
	}
}

// Progress records the scan progress.
func (b *Board) Progress(done, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.done, b.total = done, total
}

// Counts returns the most recent scan progress.
func (b *Board) Counts() (done, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.done, b.total
}

// Update the quality of an address of a subdomain. Qualities only ever move
// forward: from unverified to verifying, and from verifying to either
// verified or invalid. Updates for unknown subdomains add them.
func (b *Board) Update(hostaddr types.HostAddress) {
	if hostaddr == nil || hostaddr.Host() == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.m[hostaddr.Host()]
	if !ok {
		entry = &Subdomain{Name: hostaddr.Host(), Addresses: []types.QualifiedAddressValue{}}
		b.m[hostaddr.Host()] = entry
	}
	if hostaddr.Addr() == "" {
		return
	}
	entry.add(hostaddr.QA())
}

func (e *Subdomain) add(qa types.QualifiedAddressValue) {
	for idx := range e.Addresses {
		if e.Addresses[idx].Address == qa.Address {
			if qa.Quality > e.Addresses[idx].Quality {
				e.Addresses[idx] = qa
			}
			return
		}
	}
	e.Addresses = append(e.Addresses, qa)
}

// Get returns copies of all entries, sorted by name.
func (b *Board) Get() []Subdomain {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := make([]Subdomain, 0, len(b.m))
	for _, entry := range b.m {
		entries = append(entries, Subdomain{
			Name:      entry.Name,
			CDN:       entry.CDN,
			Addresses: append([]types.QualifiedAddressValue(nil), entry.Addresses...),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Track host address updates received from the specified channel until the
// channel is closed or the context done. Track only returns after processing
// all updates or when the context is done.
func (b *Board) Track(ctx context.Context, news <-chan types.HostAddress) error {
	for {
		select {
		case hostaddr, ok := <-news:
			if !ok {
				return nil
			}
			b.Update(hostaddr)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
