// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

// HostAddress represents a found subdomain host name together with one of its
// resolved IP addresses and the reachability quality of that address.
type HostAddress interface {
	QualifiedAddress
	Host() string          // subdomain host name
	HA() HostAddressValue // returns a copy
}

// QualifiedAddress gives read access to an address together with its
// reachability quality, and derives updated copies. It never changes in place,
// so it can be passed around freely through channels.
type QualifiedAddress interface {
	Addr() string                                         // returns address
	Qual() Quality                                        // returns Quality
	Err() error                                           // if Quality is Invalid, optional additional error information.
	QA() QualifiedAddressValue                            // returns (a copy of) the qualified address information
	WithNewQuality(q Quality, err error) QualifiedAddress // returns a new and updated qualified address
}

// HostAddressValue implements a concrete representation of a [HostAddress].
type HostAddressValue struct {
	Hostname              string `json:"host"`
	QualifiedAddressValue        // a single resolved IP address of the host
}

var _ HostAddress = (*HostAddressValue)(nil)

// Host returns the subdomain host name.
func (ha *HostAddressValue) Host() string { return ha.Hostname }

// HA returns (a copy of) the host address information.
func (ha *HostAddressValue) HA() HostAddressValue { return *ha }

// WithNewQuality returns a host address with updated quality, keeping the host
// name. Types embedding HostAddressValue must reimplement this method,
// otherwise they lose their additional fields.
func (ha *HostAddressValue) WithNewQuality(q Quality, err error) QualifiedAddress {
	return &HostAddressValue{
		Hostname: ha.Hostname,
		QualifiedAddressValue: QualifiedAddressValue{
			Address: ha.Address,
			Quality: q,
			err:     err,
		},
	}
}

// QualifiedAddressValue is an IP address in textual form with an associated
// reachability quality.
type QualifiedAddressValue struct {
	Address string  `json:"address"` // a single IP (v4/v6) address
	Quality Quality `json:"quality"` // reachability state
	err     error   // optional error details for invalid addresses
}

var _ QualifiedAddress = (*QualifiedAddressValue)(nil)

// Addr returns the address.
func (qa *QualifiedAddressValue) Addr() string { return qa.Address }

// Qual returns the quality.
func (qa *QualifiedAddressValue) Qual() Quality { return qa.Quality }

// Err returns an optional error that occurred while pinging the address.
func (qa *QualifiedAddressValue) Err() error { return qa.err }

// QA returns (a copy of) the qualified address information.
func (qa *QualifiedAddressValue) QA() QualifiedAddressValue { return *qa }

// WithNewQuality returns newly qualified address information.
func (qa *QualifiedAddressValue) WithNewQuality(q Quality, err error) QualifiedAddress {
	return &QualifiedAddressValue{
		Address: qa.Address,
		Quality: q,
		err:     err,
	}
}
