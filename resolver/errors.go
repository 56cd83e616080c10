// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/siemens/subdig/types"

	"github.com/miekg/dns"
)

// ErrNoUsableResolver is returned by [Probe] when no upstream passed probing.
var ErrNoUsableResolver = errors.New("no usable resolver")

// LookupError describes a failed lookup of a name, classified into a
// [types.Failure] kind.
type LookupError struct {
	Name string
	Kind types.Failure
	Err  error // underlying transport error, if any.
}

// Error returns the error message.
func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lookup %s: %s: %s", e.Name, e.Kind, e.Err.Error())
	}
	return fmt.Sprintf("lookup %s: %s", e.Name, e.Kind)
}

// Unwrap returns the underlying transport error, if any.
func (e *LookupError) Unwrap() error { return e.Err }

// Failure returns the failure kind.
func (e *LookupError) Failure() types.Failure { return e.Kind }

// transportError classifies an error returned while exchanging a query.
func transportError(name string, err error) *LookupError {
	kind := types.Malformed
	var neterr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = types.Timeout
	case errors.As(err, &neterr):
		if neterr.Timeout() {
			kind = types.Timeout
		} else {
			kind = types.Network
		}
	case errors.Is(err, context.Canceled):
		kind = types.Network
	}
	return &LookupError{Name: name, Kind: kind, Err: err}
}

// rcodeError returns a lookup error for an unsuccessful response code, or nil
// for success.
func rcodeError(name string, rcode int) *LookupError {
	switch rcode {
	case dns.RcodeSuccess:
		return nil
	case dns.RcodeNameError:
		return &LookupError{Name: name, Kind: types.NXDomain}
	default:
		return &LookupError{
			Name: name,
			Kind: types.ServerFailure,
			Err:  fmt.Errorf("rcode %s", dns.RcodeToString[rcode]),
		}
	}
}
