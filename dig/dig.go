// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package dig

import (
	"context"
	"errors"

	"github.com/siemens/subdig/cdn"
	"github.com/siemens/subdig/resolver"
	"github.com/siemens/subdig/types"
	"github.com/siemens/subdig/wildcard"

	"github.com/gammazero/workerpool"
	"golang.org/x/time/rate"
)

// DefaultConcurrency is the default maximum number of candidate lookups in
// flight.
const DefaultConcurrency = 50

// ErrEmptyPool signals a scanner without any resolver to query.
var ErrEmptyPool = errors.New("empty resolver pool")

// Scanner digs the subdomains of a target domain, streaming one outcome per
// candidate word.
type Scanner struct {
	pool        *resolver.Pool
	wildcards   wildcard.Set
	signatures  cdn.Signatures
	concurrency int
	limiter     *rate.Limiter // nil if unlimited.
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithConcurrency limits the number of candidate lookups in flight to the
// specified maximum. Non-positive maximums are ignored.
func WithConcurrency(max int) Option {
	return func(s *Scanner) {
		if max > 0 {
			s.concurrency = max
		}
	}
}

// WithRateLimit limits the number of candidate lookups started per second.
// A rate of zero (or less) means no limit.
func WithRateLimit(qps int) Option {
	return func(s *Scanner) {
		if qps <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(qps), 1)
	}
}

// New returns a new Scanner spreading its lookups across the specified pool,
// suppressing candidates resolving into the wildcard addresses and flagging
// candidates with CNAMEs matching any of the CDN signatures.
func New(pool *resolver.Pool, wildcards wildcard.Set, signatures cdn.Signatures, options ...Option) (*Scanner, error) {
	if pool == nil || pool.Len() == 0 {
		return nil, ErrEmptyPool
	}
	s := &Scanner{
		pool:        pool,
		wildcards:   wildcards,
		signatures:  signatures,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Scan the candidate names made from the specified words and the domain,
// returning a channel with the outcomes of the candidate lookups in the order
// the lookups complete. The channel gets closed after exactly len(words)
// outcomes have been sent, even if the context gets cancelled: lookups then
// fail, but their outcomes are still delivered. The caller must drain the
// channel.
//
// The candidate with index i in words is always looked up using the i-th
// lookuper of the pool (modulo the pool size).
func (s *Scanner) Scan(ctx context.Context, domain string, words []string) <-chan types.Outcome {
	outcomes := make(chan types.Outcome, s.concurrency)
	go func() {
		defer close(outcomes)
		workers := workerpool.New(s.concurrency)
		for idx, word := range words {
			idx := idx
			name := CandidateName(word, domain)
			lookup := s.pool.At(idx)
			workers.Submit(func() {
				if s.limiter != nil {
					// a cancelled context makes the lookups fail anyway.
					_ = s.limiter.Wait(ctx)
				}
				outcome := Classify(ctx, lookup, name, s.wildcards, s.signatures)
				outcome.Index = idx
				outcomes <- outcome
			})
		}
		workers.StopWait()
	}()
	return outcomes
}
