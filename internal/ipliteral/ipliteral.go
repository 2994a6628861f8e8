// Package ipliteral is the default implementation of the "IP-address
// parser" external collaborator named in the specification: it recognizes
// the interior text of an RFC 5321 address literal ("[1.2.3.4]" or
// "[IPv6:::1]") and reports whether it is a valid IPv4 or IPv6 address.
package ipliteral

import (
	"errors"
	"net"
	"strings"
)

// ErrInvalidIPAddress is returned by Parse when the text is not a valid
// dotted-quad IPv4 or colon-form IPv6 address.
var ErrInvalidIPAddress = errors.New("invalid IP address literal")

// Family distinguishes the two address literal forms.
type Family int

const (
	V4 Family = iota
	V6
)

// IPAddress is a parsed address literal, stripped of its surrounding "[" "]"
// and (for v6) its "IPv6:" tag.
type IPAddress struct {
	Family Family
	IP     net.IP
}

// Parse takes the raw interior text of a "[...]" literal (without the
// brackets) and parses it as an IPv4 or IPv6 address. A v6 literal must
// carry the "IPv6:" prefix; a bare colon-form address without that prefix is
// rejected, per RFC 5321 §4.1.3.
func Parse(s string) (IPAddress, error) {
	if rest, ok := strings.CutPrefix(s, "IPv6:"); ok {
		ip := net.ParseIP(rest)
		if ip == nil || ip.To4() != nil {
			return IPAddress{}, ErrInvalidIPAddress
		}
		return IPAddress{Family: V6, IP: ip}, nil
	}

	if strings.Contains(s, ":") {
		// colon-form without the required tag is not a valid literal
		return IPAddress{}, ErrInvalidIPAddress
	}

	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil {
		return IPAddress{}, ErrInvalidIPAddress
	}
	return IPAddress{Family: V4, IP: ip}, nil
}

// TryParse is the best-effort form of Parse.
func TryParse(s string) (IPAddress, bool) {
	a, err := Parse(s)
	return a, err == nil
}

// String renders the address literal in mail-address surface syntax,
// including the surrounding brackets and, for v6, the "IPv6:" tag.
func (a IPAddress) String() string {
	if a.Family == V6 {
		return "[IPv6:" + a.IP.String() + "]"
	}
	return "[" + a.IP.String() + "]"
}
