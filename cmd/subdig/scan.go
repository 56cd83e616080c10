// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/siemens/subdig/cdn"
	"github.com/siemens/subdig/dig"
	"github.com/siemens/subdig/netns"
	"github.com/siemens/subdig/ping"
	"github.com/siemens/subdig/report"
	"github.com/siemens/subdig/resolver"
	"github.com/siemens/subdig/types"
	"github.com/siemens/subdig/verifier"
	"github.com/siemens/subdig/wildcard"
	"github.com/siemens/subdig/wordlist"

	"github.com/gosuri/uilive"
	"github.com/thediveo/lxkns/log"
)

// scanSettings carries the validated CLI flags of a scan.
type scanSettings struct {
	Domain         string
	Wordlist       string
	Threads        int
	QueryTimeout   time.Duration
	ProbeTimeout   time.Duration
	Rate           int
	WildcardProbes int
	Ping           bool
	Unprivileged   bool
	PingWorkers    int
	Netns          string
	Container      string
	Plain          bool
	Upstreams      []resolver.Upstream // nil means the well-known public resolvers.
}

// ScanAndReport loads the wordlist, probes the well-known public resolvers
// and then scans the candidate subdomains of the domain, reporting the
// subdomains found to w. Only failures to set up the scan are returned as
// errors; failing candidate lookups are simply not reported.
func ScanAndReport(ctx context.Context, w io.Writer, settings scanSettings) error {
	words, err := wordlist.Load(settings.Wordlist)
	if err != nil {
		return err
	}
	domain, err := dig.NormalizeDomain(settings.Domain)
	if err != nil {
		return err
	}
	netnsref, err := networkNamespace(ctx, settings)
	if err != nil {
		return err
	}

	resolverOpts := []resolver.Option{
		resolver.WithQueryTimeout(settings.QueryTimeout),
		resolver.WithProbeTimeout(settings.ProbeTimeout),
	}
	if netnsref != "" {
		resolverOpts = append(resolverOpts, resolver.InNetworkNamespace(netnsref))
	}
	upstreams := settings.Upstreams
	if upstreams == nil {
		upstreams = resolver.DefaultUpstreams()
	}
	probed, err := resolver.Probe(ctx, upstreams, resolverOpts...)
	if err != nil {
		return fmt.Errorf("cannot dig without resolvers: %w", err)
	}
	pool := resolver.NewPoolFromProbed(probed)
	log.Debugf("using %d resolvers", pool.Len())

	wildcards := wildcard.Detect(ctx, pool.At(0), domain,
		wildcard.WithRandomProbes(settings.WildcardProbes))
	scanner, err := dig.New(pool, wildcards, cdn.DefaultSignatures(),
		dig.WithConcurrency(settings.Threads),
		dig.WithRateLimit(settings.Rate))
	if err != nil {
		return err
	}

	// Now lets put the required processing elements and their plumbing in
	// place:
	//
	//   - Scanner producing the outcomes of the candidate lookups.
	//   - Drain passing the findings on to the sink, which fills the board
	//     and optionally feeds the addresses into a Verifier.
	//   - Verifier pinging the addresses and the board tracking its news.
	//
	// Rendering is done on the information collected by the board.
	board := report.NewBoard()
	sink := &findingsSink{board: board}
	if settings.Plain {
		sink.plain = w
	}
	trackingDone := make(chan struct{})
	if settings.Ping {
		pingOpts := []ping.PingerOption{ping.InNetworkNamespace(netnsref)}
		if settings.Unprivileged {
			pingOpts = append(pingOpts, ping.AsUnprivileged())
		}
		v, news := verifier.New(settings.PingWorkers, pingOpts...)
		verify := make(chan types.HostAddress, settings.PingWorkers)
		sink.verify = verify
		go v.Verify(ctx, verify)
		go func() {
			_ = board.Track(ctx, news)
			close(trackingDone)
		}()
	} else {
		close(trackingDone)
	}

	finished := make(chan struct{})
	renderingDone := make(chan struct{})
	if settings.Plain {
		close(renderingDone)
	} else {
		go renderLive(w, domain, board, finished, renderingDone)
	}

	summary := report.Drain(scanner.Scan(ctx, domain, words), len(words), sink)
	if sink.verify != nil {
		close(sink.verify)
	}
	<-trackingDone
	close(finished)
	<-renderingDone

	if settings.Plain && settings.Ping {
		r := &renderer{Indentation: int(*indentation), domain: domain, w: w, spinner: newSpinner()}
		r.Render(board)
	}
	renderSummary(w, summary)
	log.Debugf("scan summary: %+v, failures: %v", summary, summary.Failures)
	return nil
}

// networkNamespace returns the path of the network namespace to scan from,
// or "" for the current one.
func networkNamespace(ctx context.Context, settings scanSettings) (string, error) {
	switch {
	case settings.Container != "":
		cln, err := netns.NewClient()
		if err != nil {
			return "", fmt.Errorf("cannot connect to the Docker daemon: %w", err)
		}
		defer cln.Close()
		return netns.ContainerNetworkNamespace(ctx, cln, settings.Container)
	case settings.Netns != "":
		if err := netns.Check(settings.Netns); err != nil {
			return "", err
		}
		return settings.Netns, nil
	}
	return "", nil
}

// renderLive renders the board over and over again until finished, then
// renders a final time.
func renderLive(w io.Writer, domain string, board *report.Board, finished <-chan struct{}, renderingDone chan<- struct{}) {
	// Dunno what uilive's background updating mode using Start() is good
	// for? It may trigger anytime with the rendering into the buffer not
	// yet complete, thus making the terminal output very flickery. So we
	// avoid Start() and instead trigger an explicit flush to the terminal
	// after having completed the rendering.
	term := uilive.New()
	term.Out = w
	r := newRenderer(term, domain)
	render := func() {
		r.Render(board)
		_ = term.Flush()
	}
	defer func() {
		render()
		r.Stop()
		close(renderingDone)
	}()
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			render()
		case <-finished:
			return
		}
	}
}

// findingsSink fills the board with the findings of a scan and optionally
// prints them or submits their addresses for verification.
type findingsSink struct {
	board  *report.Board
	plain  io.Writer                 // if non-nil, prints findings line by line.
	verify chan<- types.HostAddress // if non-nil, verifies the addresses found.
}

var _ report.Sink = (*findingsSink)(nil)

func (s *findingsSink) Found(finding types.Finding) {
	s.board.Found(finding)
	if s.plain != nil {
		renderFinding(s.plain, finding)
	}
	if s.verify == nil {
		return
	}
	for _, addr := range finding.Addresses {
		s.verify <- &types.HostAddressValue{
			Hostname: finding.Name,
			QualifiedAddressValue: types.QualifiedAddressValue{
				Address: addr,
				Quality: types.Unverified,
			},
		}
	}
}

func (s *findingsSink) Progress(done, total int) {
	s.board.Progress(done, total)
}
