package hibid

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"hibid-backend/internal/scrapers/hibid/hibidtest"
)

func TestValidateAccepts(t *testing.T) {
	table := []struct {
		input     string
		expected  string
		companyId int64
	}{
		{
			input:     "/company/133721/0--buyers-premium-coin-auction",
			expected:  "https://hibid.com/company/133721/0--buyers-premium-coin-auction",
			companyId: 133721,
		},
		{
			input:     "  /company/86903/105-auction-gallery  ",
			expected:  "https://hibid.com/company/86903/105-auction-gallery",
			companyId: 86903,
		},
		{
			input:     "https://www.hibid.com/company/133721/slug?utm_source=x&a=b#contact",
			expected:  "https://www.hibid.com/company/133721/slug",
			companyId: 133721,
		},
		{
			input:     "http://HIBID.com/company/5/five",
			expected:  "https://hibid.com/company/5/five",
			companyId: 5,
		},
		{
			input:     "https://hibid.com/company/42",
			expected:  "https://hibid.com/company/42",
			companyId: 42,
		},
	}

	validator := NewValidator(DefaultOptions(), hibidtest.PublicResolver())
	for _, row := range table {
		validated, err := validator.Validate(context.Background(), row.input)
		require.NoError(t, err, row.input)
		require.Equal(t, row.expected, validated.String(), row.input)
		require.Equal(t, row.companyId, validated.CompanyId(), row.input)
	}
}

func TestValidateRejects(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"company/1/slug",
		"ftp://hibid.com/company/1/slug",
		"javascript:alert(1)",
		"file:///etc/passwd",
		"/admin/secret",
		"https://hibid.com/admin/secret",
		"https://hibid.com/companysearch",
		"/company/",
		"/company/abc/slug",
		"/company/-/slug",
		"/company/-5/slug",
		"/company/+5/slug",
		"/company/1/../../admin",
		"/company/1/./slug",
		"https://evil.com/company/1/slug",
		"https://hibid.com.evil.com/company/1/slug",
		"https://sub.hibid.com/company/1/slug",
		"http://169.254.169.254/company/1/slug",
		"https:///company/1/slug",
	}

	validator := NewValidator(DefaultOptions(), hibidtest.PublicResolver())
	for _, input := range inputs {
		_, err := validator.Validate(context.Background(), input)
		require.ErrorIs(t, err, ErrInvalidUrl, "%q", input)
	}
}

func TestValidateRejectsBeforeResolving(t *testing.T) {
	resolver := hibidtest.PublicResolver()
	validator := NewValidator(DefaultOptions(), resolver)

	for _, input := range []string{
		"https://evil.com/company/1/slug",
		"https://hibid.com/admin",
		"/company/notanumber/slug",
	} {
		_, err := validator.Validate(context.Background(), input)
		require.ErrorIs(t, err, ErrInvalidUrl, input)
	}
	require.Empty(t, resolver.Lookups())
}

func TestValidateResolution(t *testing.T) {
	table := []struct {
		name    string
		hosts   map[string][]string
		allowed bool
	}{
		{
			name:    "public",
			hosts:   map[string][]string{"hibid.com": {"104.18.20.33"}},
			allowed: true,
		},
		{
			name:  "private",
			hosts: map[string][]string{"hibid.com": {"10.0.0.5"}},
		},
		{
			name:  "loopback",
			hosts: map[string][]string{"hibid.com": {"127.0.0.1"}},
		},
		{
			name:  "link local metadata",
			hosts: map[string][]string{"hibid.com": {"169.254.169.254"}},
		},
		{
			name:  "one of many is private",
			hosts: map[string][]string{"hibid.com": {"104.18.20.33", "192.168.1.10"}},
		},
		{
			name:  "ipv6 unique local",
			hosts: map[string][]string{"hibid.com": {"fd00::1"}},
		},
		{
			name:  "6to4 wrapped loopback",
			hosts: map[string][]string{"hibid.com": {"2002:7f00:1::1"}},
		},
		{
			name:  "ipv6 outside global unicast",
			hosts: map[string][]string{"hibid.com": {"4000::1"}},
		},
		{
			name:  "no addresses",
			hosts: map[string][]string{"hibid.com": {}},
		},
		{
			name:  "lookup fails",
			hosts: map[string][]string{},
		},
	}

	for _, row := range table {
		t.Run(row.name, func(t *testing.T) {
			resolver := &hibidtest.StubResolver{Hosts: row.hosts}
			validator := NewValidator(DefaultOptions(), resolver)

			_, err := validator.Validate(context.Background(), "/company/1/slug")
			if row.allowed {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvalidUrl)
			}
			require.Equal(t, []string{"hibid.com"}, resolver.Lookups())
		})
	}
}

func TestValidateLoopbackNames(t *testing.T) {
	options := DefaultOptions()
	options.AllowedDomains = append(options.AllowedDomains, "localhost", "127.0.0.1")
	resolver := &hibidtest.StubResolver{Hosts: map[string][]string{
		"localhost": {"104.18.20.33"},
		"127.0.0.1": {"104.18.20.33"},
	}}
	validator := NewValidator(options, resolver)

	for _, input := range []string{
		"http://localhost/company/1/slug",
		"http://127.0.0.1:8000/company/1/slug",
	} {
		_, err := validator.Validate(context.Background(), input)
		require.ErrorIs(t, err, ErrInvalidUrl, input)
	}
	require.Empty(t, resolver.Lookups())
}

func TestIsPublicIP(t *testing.T) {
	table := []struct {
		ip     string
		public bool
	}{
		{ip: "8.8.8.8", public: true},
		{ip: "104.18.20.33", public: true},
		{ip: "2606:4700::6812:1421", public: true},
		{ip: "10.1.2.3"},
		{ip: "172.16.0.1"},
		{ip: "172.31.255.255"},
		{ip: "192.168.1.1"},
		{ip: "127.0.0.1"},
		{ip: "127.8.8.8"},
		{ip: "169.254.169.254"},
		{ip: "0.0.0.0"},
		{ip: "0.1.2.3"},
		{ip: "100.64.0.1"},
		{ip: "192.0.2.10"},
		{ip: "198.18.0.1"},
		{ip: "224.0.0.1"},
		{ip: "255.255.255.255"},
		{ip: "::"},
		{ip: "::1"},
		{ip: "fe80::1"},
		{ip: "fc00::1"},
		{ip: "ff02::1"},
		{ip: "2001:db8::1"},
		{ip: "::ffff:10.0.0.1"},
		{ip: "::ffff:127.0.0.1"},
		{ip: "::7f00:1"},
		{ip: "4000::1"},
		{ip: "8000::1"},
		{ip: "2002:7f00:1::1"},
		{ip: "64:ff9b::7f00:1"},
		{ip: "64:ff9b:1::a00:1"},
		{ip: "2a00:1450:4001::200e", public: true},
	}

	for _, row := range table {
		ip := net.ParseIP(row.ip)
		require.NotNil(t, ip, row.ip)
		require.Equal(t, row.public, IsPublicIP(ip), row.ip)
	}
	require.False(t, IsPublicIP(nil))
}
