// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package dig

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var _ = Describe("candidate names", func() {

	It("joins word and domain", func() {
		Expect(CandidateName("www", "example.com")).To(Equal("www.example.com"))
	})

	DescribeTable("normalizing target domains",
		func(domain string, expected string) {
			Expect(Successful(NormalizeDomain(domain))).To(Equal(expected))
		},
		Entry(nil, "example.com", "example.com"),
		Entry(nil, " Example.COM. ", "example.com"),
		Entry(nil, "shop.example.co.uk", "shop.example.co.uk"),
		Entry(nil, "github.io", "github.io"),
		Entry(nil, "octocat.github.io", "octocat.github.io"),
		Entry(nil, "localhost", "localhost"),
	)

	DescribeTable("rejecting unscannable domains",
		func(domain string) {
			_, err := NormalizeDomain(domain)
			Expect(err).To(MatchError(ErrInvalidDomain))
		},
		Entry(nil, ""),
		Entry(nil, " . "),
		Entry(nil, "com"),
		Entry(nil, "co.uk"),
		Entry(nil, "exa mple.com"),
		Entry(nil, "example..com"),
	)

})
