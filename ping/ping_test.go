// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package ping

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/siemens/subdig/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
	. "github.com/thediveo/namspill"
)

var _ = Describe("pinger", func() {

	BeforeEach(func() {
		goodgos := Goroutines()
		DeferCleanup(func() {
			Eventually(Goroutines).WithTimeout(3 * time.Second).WithPolling(250 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
			Expect(Tasks()).To(BeUniformlyNamespaced())
		})
	})

	It("handles multiple stops", func() {
		pinger, verdicts := New(1)
		for i := 0; i < 2; i++ {
			By(fmt.Sprintf("%d round", i+1))
			done := make(chan struct{})
			go func() {
				defer GinkgoRecover()
				pinger.StopWait()
				close(done)
			}()
			Eventually(done).WithTimeout(1 * time.Second).Should(BeClosed())
		}
		Expect(verdicts).To(BeClosed())
	})

	It("rejects invalid thresholds", func() {
		Expect(func() { WithThresholdPercentage(101) }).To(Panic())
		Expect(func() { WithThresholdPercentage(100) }).NotTo(Panic())
	})

	It("invalidates unparseable addresses", NodeTimeout(10*time.Second), func(ctx context.Context) {
		pinger, verdicts := New(1, AsUnprivileged())
		pinger.ValidateQA(ctx, &types.HostAddressValue{
			Hostname:              "www.example.com",
			QualifiedAddressValue: types.QualifiedAddressValue{Address: "not an address!"},
		})
		Eventually(verdicts).Should(Receive(And(
			HaveField("Host()", "www.example.com"),
			HaveField("Qual()", types.Verifying))))
		Eventually(verdicts).WithTimeout(5 * time.Second).Should(Receive(And(
			HaveField("Host()", "www.example.com"),
			HaveField("Qual()", types.Invalid),
			HaveField("Err()", HaveOccurred()))))
		pinger.StopWait()
		Eventually(verdicts).Should(BeClosed())
	})

	It("does not block on a cancelled context", NodeTimeout(10*time.Second), func(specctx context.Context) {
		pinger, verdicts := newPinger(1, 0)
		ctx, cancel := context.WithCancel(specctx)
		cancel()
		pinger.Validate(ctx, "127.0.0.1")
		pinger.StopWait()
		Expect(verdicts).To(BeClosed())
	})

	When("privileged", func() {

		BeforeEach(func() {
			if os.Getuid() != 0 {
				Skip("needs root")
			}
		})

		It("verifies a host address", NodeTimeout(30*time.Second), func(ctx context.Context) {
			pinger, verdicts := New(1, WithInterval(100*time.Millisecond))
			pinger.ValidateQA(ctx, &types.HostAddressValue{
				Hostname:              "localhost.example.com",
				QualifiedAddressValue: types.QualifiedAddressValue{Address: "127.0.0.1"},
			})
			Eventually(verdicts).Should(Receive(HaveField("Qual()", types.Verifying)))
			Eventually(verdicts).WithTimeout(5 * time.Second).Should(Receive(
				HaveValue(Equal(types.HostAddressValue{
					Hostname: "localhost.example.com",
					QualifiedAddressValue: types.QualifiedAddressValue{
						Address: "127.0.0.1",
						Quality: types.Verified,
					},
				}))))
			pinger.StopWait()
			Eventually(verdicts).Should(BeClosed())
		})

		It("pings from inside a network namespace", NodeTimeout(30*time.Second), func(ctx context.Context) {
			pinger, verdicts := New(1,
				InNetworkNamespace("/proc/self/ns/net"),
				WithCount(2),
				WithInterval(100*time.Millisecond),
				WithThresholdPercentage(50))
			pinger.Validate(ctx, "127.0.0.1")
			Eventually(verdicts).Should(Receive(HaveField("Qual()", types.Verifying)))
			Eventually(verdicts).WithTimeout(5 * time.Second).Should(Receive(
				HaveField("Qual()", types.Verified)))
			pinger.StopWait()
		})

	})

})
