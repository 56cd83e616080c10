// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package verifier

import (
	"context"
	"errors"

	"github.com/siemens/subdig/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func hostaddr(host, addr string, q types.Quality) *types.HostAddressValue {
	return &types.HostAddressValue{
		Hostname:              host,
		QualifiedAddressValue: types.QualifiedAddressValue{Address: addr, Quality: q},
	}
}

func drain(news chan types.HostAddress) []types.HostAddressValue {
	hostaddrs := []types.HostAddressValue{}
	for {
		select {
		case ha := <-news:
			hostaddrs = append(hostaddrs, ha.HA())
		default:
			return hostaddrs
		}
	}
}

var _ = Describe("host address cache", func() {

	var cache *HostAddressCache
	var news chan types.HostAddress
	ctx := context.Background()

	BeforeEach(func() {
		cache = NewHostAddressCache()
		news = make(chan types.HostAddress, 100)
	})

	It("asks to verify only new addresses", func() {
		Expect(cache.Update(ctx, hostaddr("www.example.com", "192.0.2.1", types.Unverified), news)).To(BeTrue())
		Expect(cache.Update(ctx, hostaddr("cdn.example.com", "192.0.2.1", types.Unverified), news)).To(BeFalse())
		Expect(cache.Update(ctx, hostaddr("mail.example.com", "192.0.2.25", types.Unverified), news)).To(BeTrue())
		Expect(drain(news)).To(HaveLen(3))
	})

	It("notifies all waiting hosts of a verdict", func() {
		cache.Update(ctx, hostaddr("www.example.com", "192.0.2.1", types.Unverified), news)
		cache.Update(ctx, hostaddr("cdn.example.com", "192.0.2.1", types.Unverified), news)
		drain(news)

		cache.Update(ctx, hostaddr("www.example.com", "192.0.2.1", types.Verified), news)
		Expect(drain(news)).To(ConsistOf(
			And(HaveField("Hostname", "www.example.com"), HaveField("Quality", types.Verified)),
			And(HaveField("Hostname", "cdn.example.com"), HaveField("Quality", types.Verified)),
		))
		q, ok := cache.Quality("192.0.2.1")
		Expect(ok).To(BeTrue())
		Expect(q).To(Equal(types.Verified))
	})

	It("serves late hosts the final verdict at once", func() {
		cache.Update(ctx, hostaddr("www.example.com", "192.0.2.1", types.Unverified), news)
		boom := errors.New("unreachable")
		cache.Update(ctx, (&types.HostAddressValue{
			Hostname:              "www.example.com",
			QualifiedAddressValue: types.QualifiedAddressValue{Address: "192.0.2.1"},
		}).WithNewQuality(types.Invalid, boom).(types.HostAddress), news)
		drain(news)

		Expect(cache.Update(ctx, hostaddr("late.example.com", "192.0.2.1", types.Unverified), news)).To(BeFalse())
		late := drain(news)
		Expect(late).To(HaveLen(1))
		Expect(late[0].Hostname).To(Equal("late.example.com"))
		Expect(late[0].Quality).To(Equal(types.Invalid))
		Expect(late[0].Err()).To(MatchError(boom))
	})

	It("ignores stale updates of known hosts", func() {
		cache.Update(ctx, hostaddr("www.example.com", "192.0.2.1", types.Verifying), news)
		drain(news)
		Expect(cache.Update(ctx, hostaddr("www.example.com", "192.0.2.1", types.Unverified), news)).To(BeFalse())
		Expect(drain(news)).To(BeEmpty())
	})

	It("does not block on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		blocked := make(chan types.HostAddress)
		Expect(cache.Update(ctx, hostaddr("www.example.com", "192.0.2.1", types.Unverified), blocked)).To(BeTrue())
	})

})
