package services

import (
	"testing"

	"github.com/amirphl/Yata-no-Kagami/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrivacyFilter_Truncate(t *testing.T) {
	filter := NewPrivacyFilter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"ipv4", "192.168.1.100", "192.168.1.0"},
		{"ipv4 already truncated", "10.0.0.0", "10.0.0.0"},
		{"ipv6 full form", "2001:db8:85a3:8d3:1319:8a2e:370:7348", "2001:db8:85a3:8d3::"},
		{"ipv6 zero padded", "2001:0db8:85a3:0000:0000:8a2e:0370:7334", "2001:0db8:85a3:0000::"},
		{"ipv6 upper case", "2001:DB8:ABCD:0012:0000:0000:0000:0001", "2001:DB8:ABCD:0012::"},
		{"ipv6 compressed tail", "2001:0DB8:00A1::1", "2001:0DB8:00A1:0::"},
		{"ipv6 with embedded ipv4", "64:ff9b::192.0.2.33", "64:ff9b:0:0::"},
		{"ipv6 compressed", "2001:db8::1", "2001:db8:0:0::"},
		{"ipv6 loopback", "::1", "0:0:0:0::"},
		{"ipv4 mapped ipv6", "::ffff:203.0.113.77", "203.0.113.0"},
		{"unparseable colon form", "a:b:c:d:e", "a:b:c:d::"},
		{"short colon form", "a:b", "a:b"},
		{"broken shorthand", "1::2::3", "1::2::3"},
		{"dotted hostname", "not.an.ip", "not.an.ip"},
		{"too many octets", "1.2.3.4.5", "1.2.3.4.5"},
		{"octet out of range", "300.1.1.1", "300.1.1.1"},
		{"unknown", "unknown", "unknown"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter.Truncate(utils.ToPtr(tt.input))
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, *got)
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, filter.Truncate(nil))
	})

	t.Run("input is not modified", func(t *testing.T) {
		ip := "172.16.5.4"
		_ = filter.Truncate(&ip)
		assert.Equal(t, "172.16.5.4", ip)
	})
}
