package hibid

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
)

var ErrInvalidUrl = errors.New("invalid company profile url")

// Resolver is satisfied by *net.Resolver.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// ValidatedUrl is a company profile url that is safe to fetch. It must be
// created per request, a host's addresses can change between lookups.
type ValidatedUrl struct {
	url       string
	companyId int64
}

func (v ValidatedUrl) String() string {
	return v.url
}

func (v ValidatedUrl) CompanyId() int64 {
	return v.companyId
}

type Validator struct {
	options  Options
	resolver Resolver
}

func NewValidator(options Options, resolver Resolver) Validator {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	return Validator{options: options, resolver: resolver}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidUrl, fmt.Sprintf(format, args...))
}

// Validate accepts either a profile path ("/company/133721/slug") or an absolute
// http(s) profile url on an allowed host and returns the normalized https url.
// Query strings and fragments are always dropped.
func (v Validator) Validate(ctx context.Context, raw string) (ValidatedUrl, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ValidatedUrl{}, invalid("empty url")
	}

	var full string
	switch {
	case strings.HasPrefix(raw, ProfilePathPrefix):
		full = v.options.baseUrl() + raw
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		full = raw
	default:
		return ValidatedUrl{}, invalid("expected a profile path or an http(s) url")
	}

	parsed, err := url.Parse(full)
	if err != nil {
		return ValidatedUrl{}, invalid("parse: %v", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ValidatedUrl{}, invalid("unsupported scheme %q", parsed.Scheme)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return ValidatedUrl{}, invalid("missing host")
	}
	if !v.options.isAllowedHost(host) {
		return ValidatedUrl{}, invalid("host %q is not allowed", host)
	}

	if !strings.HasPrefix(parsed.Path, ProfilePathPrefix) {
		return ValidatedUrl{}, invalid("not a company profile path")
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 {
		return ValidatedUrl{}, invalid("missing company id")
	}
	// unsigned so that "+1" and "-1" are rejected
	companyId, err := strconv.ParseUint(segments[1], 10, 63)
	if err != nil {
		return ValidatedUrl{}, invalid("company id %q is not numeric", segments[1])
	}
	for _, segment := range segments {
		if segment == "." || segment == ".." {
			return ValidatedUrl{}, invalid("dot segments are not allowed")
		}
	}

	err = v.checkPublicHost(ctx, host)
	if err != nil {
		return ValidatedUrl{}, err
	}

	return ValidatedUrl{
		url:       fmt.Sprintf("https://%s%s", host, parsed.EscapedPath()),
		companyId: int64(companyId),
	}, nil
}

var loopbackNames = []string{"localhost", "127.0.0.1", "::1", "0.0.0.0"}

// checkPublicHost fails closed: a lookup error or an empty answer is a rejection.
func (v Validator) checkPublicHost(ctx context.Context, host string) error {
	for _, name := range loopbackNames {
		if host == name {
			return invalid("host %q is a loopback name", host)
		}
	}

	addrs, err := v.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return invalid("resolve %q: %v", host, err)
	}
	if len(addrs) == 0 {
		return invalid("resolve %q: no addresses", host)
	}
	for _, addr := range addrs {
		if !IsPublicIP(addr.IP) {
			return invalid("host %q resolves to non-public address %s", host, addr.IP)
		}
	}
	return nil
}

// ranges that are neither private, loopback nor link-local but still must
// never be fetched from.
var reservedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("192.0.2.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
	netip.MustParsePrefix("198.51.100.0/24"),
	netip.MustParsePrefix("203.0.113.0/24"),
	netip.MustParsePrefix("240.0.0.0/4"),
	netip.MustParsePrefix("100::/64"),
	netip.MustParsePrefix("2001:db8::/32"),
	netip.MustParsePrefix("2001::/23"),
	netip.MustParsePrefix("2002::/16"),
	netip.MustParsePrefix("64:ff9b::/96"),
	netip.MustParsePrefix("64:ff9b:1::/48"),
}

// only 2000::/3 is allocated for global unicast
var globalUnicastV6 = netip.MustParsePrefix("2000::/3")

// IsPublicIP reports whether ip is a globally routable unicast address.
func IsPublicIP(ip net.IP) bool {
	addr, ok := netip.AddrFromSlice(ip)
	if !ok {
		return false
	}
	addr = addr.Unmap()

	if addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsUnspecified() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsInterfaceLocalMulticast() ||
		addr.IsMulticast() {
		return false
	}
	if addr.Is6() && !globalUnicastV6.Contains(addr) {
		return false
	}
	for _, prefix := range reservedPrefixes {
		if prefix.Contains(addr) {
			return false
		}
	}
	return true
}
