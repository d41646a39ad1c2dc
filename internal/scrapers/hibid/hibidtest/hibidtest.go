// Package hibidtest provides page fixtures and network stubs for exercising
// the hibid scraper without touching the network.
package hibidtest

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net"
	"regexp"
	"sync"
	"time"
)

//go:embed testdata/*.html
var fixtures embed.FS

const (
	// company search page with an embedded state listing 3 ids (one dangling)
	// out of 3 entities, and a table with 2 companies
	CompanySearchPage = "companysearch.html"
	// profile page of company 133721 with a sidebar auctioneer in its state
	ProfilePage = "profile.html"
)

func Fixture(name string) string {
	contents, err := fixtures.ReadFile("testdata/" + name)
	if err != nil {
		panic(err)
	}
	return string(contents)
}

var stateScriptRegex = regexp.MustCompile(`(?s)<script id="hibid-state"[^>]*>.*?</script>`)

// WithoutState removes the embedded state script from markup.
func WithoutState(markup string) string {
	return stateScriptRegex.ReplaceAllString(markup, "")
}

// WithState replaces the embedded state script's contents.
func WithState(markup, state string) string {
	return stateScriptRegex.ReplaceAllLiteralString(
		markup,
		fmt.Sprintf(`<script id="hibid-state" type="application/json">%s</script>`, state),
	)
}

var ErrTimeout = fmt.Errorf("stub fetch: %w", context.DeadlineExceeded)

// StubFetcher serves pages from memory and records every url it was asked for.
type StubFetcher struct {
	Pages map[string]string
	// returned for every fetch when set
	Err error
	// when set, every fetch blocks this long or until ctx is done
	Delay time.Duration

	mutex   sync.Mutex
	fetched []string
}

func (f *StubFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mutex.Lock()
	f.fetched = append(f.fetched, url)
	f.mutex.Unlock()

	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.Err != nil {
		return "", f.Err
	}
	page, ok := f.Pages[url]
	if !ok {
		return "", fmt.Errorf("stub fetch: 404 %s", url)
	}
	return page, nil
}

func (f *StubFetcher) Fetched() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]string(nil), f.fetched...)
}

// StubResolver answers lookups from Hosts, unknown hosts fail like NXDOMAIN.
type StubResolver struct {
	Hosts map[string][]string

	mutex   sync.Mutex
	lookups []string
}

// PublicResolver resolves the hibid hosts to a public address.
func PublicResolver() *StubResolver {
	return &StubResolver{Hosts: map[string][]string{
		"hibid.com":     {"104.18.20.33"},
		"www.hibid.com": {"104.18.21.33", "2606:4700::6812:1421"},
	}}
}

func (r *StubResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	r.mutex.Lock()
	r.lookups = append(r.lookups, host)
	r.mutex.Unlock()

	ips, ok := r.Hosts[host]
	if !ok {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}
	addrs := make([]net.IPAddr, 0, len(ips))
	for _, ip := range ips {
		parsed := net.ParseIP(ip)
		if parsed == nil {
			return nil, errors.New("stub resolver: bad ip " + ip)
		}
		addrs = append(addrs, net.IPAddr{IP: parsed})
	}
	return addrs, nil
}

func (r *StubResolver) Lookups() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]string(nil), r.lookups...)
}
