package hibid

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"hibid-backend/internal/components/telemetry"
)

func localOptions(t testing.TB, server *httptest.Server) Options {
	t.Helper()
	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)

	options := DefaultOptions()
	options.BaseUrl = server.URL
	options.AllowedDomains = []string{parsed.Hostname()}
	options.DisableCloudflareBypass = true
	options.RequestTimeoutSeconds = 5
	return options
}

func TestHttpFetcher(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/companysearch", func(w http.ResponseWriter, r *http.Request) {
		if r.UserAgent() != defaultUserAgent || r.Header.Get("Accept-Language") != "en-US,en;q=0.9" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body>ok</body></html>")
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/companysearch", http.StatusFound)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tel := telemetry.NewTestingAPI(t)
	fetcher := NewHttpFetcher(localOptions(t, server), tel, nil)

	markup, err := fetcher.Fetch(context.Background(), server.URL+"/companysearch")
	require.NoError(t, err)
	require.Equal(t, "<html><body>ok</body></html>", markup)

	markup, err = fetcher.Fetch(context.Background(), server.URL+"/moved")
	require.NoError(t, err)
	require.Equal(t, "<html><body>ok</body></html>", markup)

	_, err = fetcher.Fetch(context.Background(), server.URL+"/missing")
	require.ErrorIs(t, err, ErrFetch)

	_, err = fetcher.Fetch(context.Background(), server.URL+"/broken")
	require.ErrorIs(t, err, ErrFetch)
}

func TestHttpFetcherRedirectOffAllowedHost(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "internal")
	}))
	defer target.Close()
	targetUrl, err := url.Parse(target.URL)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// same address, different host name
		http.Redirect(w, r, fmt.Sprintf("http://localhost:%s/secret", targetUrl.Port()), http.StatusFound)
	}))
	defer server.Close()

	fetcher := NewHttpFetcher(localOptions(t, server), telemetry.NewTestingAPI(t), nil)
	_, err = fetcher.Fetch(context.Background(), server.URL+"/company/1/slug")
	require.ErrorIs(t, err, ErrFetch)
}

func TestHttpFetcherContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	fetcher := NewHttpFetcher(localOptions(t, server), telemetry.NewTestingAPI(t), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := fetcher.Fetch(ctx, server.URL+"/companysearch")
	require.ErrorIs(t, err, ErrFetch)
	require.Less(t, time.Since(start), 3*time.Second)
}

type memoryOutput struct {
	written map[string]string
}

func (o memoryOutput) Write(id, contents string) {
	o.written[id] = contents
}

func TestHttpFetcherDump(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html></html>")
	}))
	defer server.Close()

	out := memoryOutput{written: map[string]string{}}
	fetcher := NewHttpFetcher(localOptions(t, server), telemetry.NewTestingAPI(t), out)

	_, err := fetcher.Fetch(context.Background(), server.URL+"/company/133721/slug")
	require.NoError(t, err)
	require.Contains(t, out.written, "0001-GET-company-133721-slug.txt")
	require.Contains(t, out.written["0001-GET-company-133721-slug.txt"], "<html></html>")
}
