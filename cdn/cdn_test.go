// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cdn

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CDN signatures", func() {

	DescribeTable("matching canonical names",
		func(cnames []string, expected bool) {
			Expect(DefaultSignatures().Match(cnames)).To(Equal(expected))
		},
		Entry("CloudFront", []string{"something.cloudfront.net."}, true),
		Entry("second in chain", []string{"edge.example.net.", "a1.akamaihd.net."}, true),
		Entry("no CDN", []string{"www.example.org."}, false),
		Entry("no names", nil, false),
		Entry("case-sensitive", []string{"something.CloudFront.net."}, false),
		Entry("unanchored substring", []string{"notakamai.net.example.org."}, true),
	)

	It("names the matching provider fragment", func() {
		Expect(DefaultSignatures().Provider("abc.fastly.net.")).To(Equal("fastly.net"))
		Expect(DefaultSignatures().Provider("abc.example.net.")).To(BeEmpty())
	})

	It("ignores empty signatures", func() {
		Expect(Signatures{""}.Match([]string{"www.example.org."})).To(BeFalse())
	})

})
