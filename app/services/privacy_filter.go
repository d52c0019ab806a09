// Package services provides technical concerns used by the business flows: user agent
// classification, IP truncation, QR rendering and short code caching
package services

import (
	"net/netip"
	"strings"
)

// PrivacyFilter reduces client IP addresses before they are stored
type PrivacyFilter interface {
	Truncate(ip *string) *string
}

// PrivacyFilterImpl keeps the IPv4 /24 network and the IPv6 /64 network of an address
type PrivacyFilterImpl struct{}

// NewPrivacyFilter creates a new privacy filter
func NewPrivacyFilter() PrivacyFilter {
	return &PrivacyFilterImpl{}
}

// Truncate zeroes the host part of an address. Dotted values that are not
// IPv4 addresses and values without separators are returned unchanged.
func (f *PrivacyFilterImpl) Truncate(ip *string) *string {
	if ip == nil {
		return nil
	}

	raw := strings.TrimSpace(*ip)
	var out string
	switch {
	case strings.Contains(raw, ":"):
		out = truncateColon(raw)
	case strings.Contains(raw, "."):
		out = truncateDotted(raw)
	default:
		out = raw
	}
	return &out
}

func truncateDotted(raw string) string {
	addr, err := netip.ParseAddr(raw)
	if err != nil || !addr.Is4() {
		return raw
	}
	i := strings.LastIndex(raw, ".")
	return raw[:i+1] + "0"
}

// truncateColon keeps the first four groups as written, so zero padding and
// letter case survive. Only "::" shorthand is expanded to find those groups.
func truncateColon(raw string) string {
	if addr, err := netip.ParseAddr(raw); err == nil && addr.Is4In6() {
		return truncateDotted(addr.Unmap().String())
	}

	var groups []string
	if strings.Contains(raw, "::") {
		if _, err := netip.ParseAddr(raw); err != nil {
			return raw
		}
		groups = expandGroups(raw)
	} else {
		groups = strings.Split(raw, ":")
	}

	if len(groups) < 4 {
		return raw
	}
	return strings.Join(groups[:4], ":") + "::"
}

// expandGroups fills the "::" gap of a valid IPv6 address with zero groups
func expandGroups(raw string) []string {
	head, tail, _ := strings.Cut(raw, "::")

	var left, right []string
	if head != "" {
		left = strings.Split(head, ":")
	}
	if tail != "" {
		right = strings.Split(tail, ":")
	}

	width := len(left) + len(right)
	if len(right) > 0 && strings.Contains(right[len(right)-1], ".") {
		// embedded IPv4 tail takes two groups
		width++
	}

	groups := make([]string, 0, 8)
	groups = append(groups, left...)
	for range 8 - width {
		groups = append(groups, "0")
	}
	return append(groups, right...)
}
