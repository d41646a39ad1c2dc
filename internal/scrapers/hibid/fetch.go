package hibid

import (
	"context"
	"errors"
	"fmt"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"hibid-backend/internal/assert"
	"hibid-backend/internal/components/telemetry"
	"hibid-backend/lib/restyutil"
)

var ErrFetch = errors.New("fetch failed")

// Fetcher performs a single GET and returns the page markup. Any transport
// error, timeout or non-2xx status is an error wrapping ErrFetch.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type HttpFetcher struct {
	http *resty.Client
}

// NewHttpFetcher creates a fetcher with the fixed headers and timeout from options,
// redirects are only followed while they stay on an allowed host. dump may be nil.
func NewHttpFetcher(options Options, tel telemetry.API, dump restyutil.InstrumentOutput) HttpFetcher {
	assert.NotNil(tel)
	assert.NotEmptySlice(options.AllowedDomains)
	assert.Positive("request timeout", options.RequestTimeoutSeconds)

	client := resty.New()
	client.SetHeaders(options.Headers)
	client.SetTimeout(options.timeout())
	client.SetRedirectPolicy(
		resty.FlexibleRedirectPolicy(10),
		resty.DomainCheckRedirectPolicy(options.AllowedDomains...),
	)
	if !options.DisableCloudflareBypass {
		client.SetTransport(cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport))
	}

	telemetry.InstrumentResty(client, tel)
	restyutil.DumpExchanges(client, dump)

	return HttpFetcher{http: client}
}

func (f HttpFetcher) Fetch(ctx context.Context, url string) (string, error) {
	res, err := f.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrFetch, url, err)
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("%w: %s: unexpected status %s", ErrFetch, url, res.Status())
	}
	return res.String(), nil
}
