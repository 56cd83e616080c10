// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package dig

import (
	"context"

	"github.com/siemens/subdig/cdn"
	"github.com/siemens/subdig/types"
	"github.com/siemens/subdig/wildcard"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("classifying candidates", func() {

	var lookup *fakeLookuper

	BeforeEach(func() {
		lookup = &fakeLookuper{
			addrs: map[string][]string{
				"www.example.com":  {"192.0.2.1"},
				"mail.example.com": {"192.0.2.25"},
				"any.example.com":  {"192.0.2.66", "192.0.2.1"},
			},
			cnames: map[string][]string{
				"www.example.com": {"edge.example.net.", "d111111abcdef8.cloudfront.net."},
			},
		}
	})

	It("flags CDN-fronted candidates", func() {
		outcome := Classify(context.Background(), lookup, "www.example.com", wildcard.Set{}, cdn.DefaultSignatures())
		Expect(outcome.Reportable()).To(BeTrue())
		Expect(outcome.CDN).To(BeTrue())
		Expect(outcome.CNAMEs).To(HaveLen(2))
	})

	It("treats a failed CNAME lookup as no CDN", func() {
		outcome := Classify(context.Background(), lookup, "mail.example.com", wildcard.Set{}, cdn.DefaultSignatures())
		Expect(outcome.Reportable()).To(BeTrue())
		Expect(outcome.CDN).To(BeFalse())
		Expect(outcome.Err).NotTo(HaveOccurred())
	})

	It("suppresses wildcard aliases without looking up their CNAMEs", func() {
		outcome := Classify(context.Background(), lookup, "any.example.com",
			wildcard.NewSet("192.0.2.66"), cdn.DefaultSignatures())
		Expect(outcome.Wildcard).To(BeTrue())
		Expect(outcome.Reportable()).To(BeFalse())
		Expect(outcome.Addrs).To(ConsistOf("192.0.2.66", "192.0.2.1"))
		Expect(lookup.CNAMEd()).To(BeEmpty())
	})

	It("never reports a wildcard alias, not even when CDN-fronted", func() {
		outcome := Classify(context.Background(), lookup, "www.example.com",
			wildcard.NewSet("192.0.2.1"), cdn.DefaultSignatures())
		Expect(outcome.Wildcard).To(BeTrue())
		Expect(outcome.Reportable()).To(BeFalse())
	})

	It("records lookup failures", func() {
		lookup.failure = types.Timeout
		outcome := Classify(context.Background(), lookup, "nope.example.com", wildcard.Set{}, cdn.DefaultSignatures())
		Expect(outcome.Reportable()).To(BeFalse())
		Expect(outcome.Failure()).To(Equal(types.Timeout))
		Expect(outcome.Addrs).To(BeNil())
	})

})
