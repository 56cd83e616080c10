// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"time"

	"github.com/siemens/subdig/resolver"
	"github.com/siemens/subdig/test/stubdns"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
)

var _ = Describe("scanning and reporting", func() {

	var stub *stubdns.Server
	var settings scanSettings

	BeforeEach(func() {
		goodgos := Goroutines()
		DeferCleanup(func() {
			Eventually(Goroutines).WithTimeout(3 * time.Second).WithPolling(250 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
		})

		_ = newRootCmd() // sets up the flag defaults used by the renderer.
		stub = stubdns.Start([]string{
			"example.com. 60 IN A 192.0.2.80",
			"www.example.com. 60 IN A 192.0.2.1",
			"www.example.com. 60 IN CNAME d111111abcdef8.cloudfront.net.",
			"mail.example.com. 60 IN A 192.0.2.25",
		})
		DeferCleanup(stub.Stop)
		settings = scanSettings{
			Domain:       "Example.com.",
			Wordlist:     writeWordlist("www\nmail\n# comment\n\ndoesnotexist123\n"),
			Threads:      2,
			QueryTimeout: 2 * time.Second,
			ProbeTimeout: time.Second,
			PingWorkers:  1,
			Upstreams:    []resolver.Upstream{{Label: "stub", Addr: stub.Addr()}},
		}
	})

	It("prints findings line by line", NodeTimeout(20*time.Second), func(ctx context.Context) {
		settings.Plain = true
		var out bytes.Buffer
		Expect(ScanAndReport(ctx, &out, settings)).To(Succeed())
		Expect(out.String()).To(And(
			ContainSubstring("www.example.com 192.0.2.1 [CDN]\n"),
			ContainSubstring("mail.example.com 192.0.2.25\n"),
			Not(ContainSubstring("doesnotexist123")),
			HaveSuffix("found 2 subdomain(s), 1 behind a CDN\n"),
		))
	})

	It("renders a live display", NodeTimeout(20*time.Second), func(ctx context.Context) {
		var out bytes.Buffer
		Expect(ScanAndReport(ctx, &out, settings)).To(Succeed())
		Expect(out.String()).To(And(
			ContainSubstring("subdomains of example.com: 3/3 candidates"),
			ContainSubstring("www.example.com"),
			ContainSubstring("[CDN]"),
			ContainSubstring("found 2 subdomain(s)"),
		))
	})

	It("tells when nothing was found", NodeTimeout(20*time.Second), func(ctx context.Context) {
		settings.Plain = true
		settings.Wordlist = writeWordlist("nope\nnada\n")
		var out bytes.Buffer
		Expect(ScanAndReport(ctx, &out, settings)).To(Succeed())
		Expect(out.String()).To(Equal("no subdomain found\n"))
	})

	It("fails without any usable resolver", NodeTimeout(20*time.Second), func(ctx context.Context) {
		silent := stubdns.Start(nil, stubdns.Silent())
		defer silent.Stop()
		settings.Upstreams = []resolver.Upstream{{Label: "silent", Addr: silent.Addr()}}
		settings.ProbeTimeout = 100 * time.Millisecond
		Expect(ScanAndReport(ctx, &bytes.Buffer{}, settings)).To(MatchError(resolver.ErrNoUsableResolver))
	})

})
