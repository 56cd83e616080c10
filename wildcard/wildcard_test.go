// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package wildcard

import (
	"context"
	"time"

	"github.com/siemens/subdig/resolver"
	"github.com/siemens/subdig/test/stubdns"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
)

var _ = Describe("wildcard baseline", func() {

	BeforeEach(func() {
		goodgos := Goroutines()
		DeferCleanup(func() {
			Eventually(Goroutines).WithTimeout(3 * time.Second).WithPolling(250 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
		})
	})

	It("learns the wildcard addresses", NodeTimeout(10*time.Second), func(ctx context.Context) {
		stub := stubdns.Start([]string{
			BaselineLabel + ".example.com. 60 IN A 192.0.2.66",
			BaselineLabel + ".example.com. 60 IN A 192.0.2.67",
		})
		defer stub.Stop()
		set := Detect(ctx, resolver.NewHandle(resolver.Upstream{Addr: stub.Addr()}), "example.com")
		Expect(set.Addrs()).To(Equal([]string{"192.0.2.66", "192.0.2.67"}))
		Expect(set.Intersects([]string{"192.0.2.1", "192.0.2.67"})).To(BeTrue())
		Expect(set.Intersects([]string{"192.0.2.1"})).To(BeFalse())
	})

	It("returns an empty set without wildcard", NodeTimeout(10*time.Second), func(ctx context.Context) {
		stub := stubdns.Start(nil)
		defer stub.Stop()
		Expect(Detect(ctx, resolver.NewHandle(resolver.Upstream{Addr: stub.Addr()}), "example.com")).
			To(BeEmpty())
	})

	It("returns an empty set when the baseline lookup fails", NodeTimeout(10*time.Second), func(ctx context.Context) {
		stub := stubdns.Start(nil, stubdns.Silent())
		defer stub.Stop()
		h := resolver.NewHandle(resolver.Upstream{Addr: stub.Addr()},
			resolver.WithQueryTimeout(100*time.Millisecond))
		Expect(Detect(ctx, h, "example.com")).To(BeEmpty())
	})

	It("adds random probes", NodeTimeout(10*time.Second), func(ctx context.Context) {
		stub := stubdns.Start(nil)
		defer stub.Stop()
		Detect(ctx, resolver.NewHandle(resolver.Upstream{Addr: stub.Addr()}), "example.com",
			WithRandomProbes(2))
		Expect(stub.Queries()).To(ConsistOf(
			HaveField("Name", BaselineLabel+".example.com."),
			HaveField("Name", MatchRegexp(`^[a-z0-9]{12}\.example\.com\.$`)),
			HaveField("Name", MatchRegexp(`^[a-z0-9]{12}\.example\.com\.$`)),
		))
	})

	It("builds sets", func() {
		s := NewSet("192.0.2.1", "192.0.2.1", "2001:db8::1")
		Expect(s).To(HaveLen(2))
		Expect(s.Contains("2001:db8::1")).To(BeTrue())
		Expect(Set{}.Intersects([]string{"192.0.2.1"})).To(BeFalse())
	})

})
