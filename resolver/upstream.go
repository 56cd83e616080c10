// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package resolver

// Upstream identifies an upstream DNS server by a human-readable label and its
// "ip:port" UDP address.
type Upstream struct {
	Label string
	Addr  string
}

// DefaultUpstreams returns the built-in list of public DNS resolvers that get
// probed before scanning.
func DefaultUpstreams() []Upstream {
	return []Upstream{
		{Label: "AliDNS", Addr: "223.5.5.5:53"},
		{Label: "AliDNS", Addr: "223.6.6.6:53"},
		{Label: "DNSPod", Addr: "119.29.29.29:53"},
		{Label: "Google", Addr: "8.8.8.8:53"},
		{Label: "Google", Addr: "8.8.4.4:53"},
		{Label: "Cloudflare", Addr: "1.1.1.1:53"},
		{Label: "Cloudflare", Addr: "1.0.0.1:53"},
		{Label: "Quad9", Addr: "9.9.9.9:53"},
		{Label: "Quad9", Addr: "149.112.112.112:53"},
		{Label: "OpenDNS", Addr: "208.67.222.222:53"},
		{Label: "OpenDNS", Addr: "208.67.220.220:53"},
		{Label: "AdGuard", Addr: "94.140.14.14:53"},
		{Label: "DNS.WATCH", Addr: "84.200.69.80:53"},
		{Label: "Level3", Addr: "209.244.0.3:53"},
	}
}
