package hibid

import (
	"strings"
	"time"
)

// page structure, these only change when hibid changes its frontend.
const (
	ProfilePathPrefix = "/company/"

	stateScriptId   = "hibid-state"
	stateKey        = "apollo.state"
	entityRefPrefix = "Auctioneer:"
	entityTypeName  = "auctioneer"
	rootQueryKey    = "ROOT_QUERY"
	searchMarker    = "auctioneerSearch"

	companyTableSelector   = "table#companySearch"
	detailsSelector        = "div.auctioneer-details"
	profileTitleSelector   = "h1"
	mapsLinkMarker         = "maps.google"
	telScheme              = "tel:"
	mailtoScheme           = "mailto:"
	websiteTextSuffix      = ".com"
	websiteHrefDomainMatch = "hibid.com"
)

// Options are fixed at startup and shared read-only by every request.
type Options struct {
	// scheme and host of the site, without a trailing slash.
	BaseUrl           string `json:"base_url"`
	CompanySearchPath string `json:"company_search_path"`
	// hosts (compared case-insensitively, exactly) that profile urls may point at.
	AllowedDomains        []string          `json:"allowed_domains"`
	RequestTimeoutSeconds int               `json:"request_timeout_seconds"`
	Headers               map[string]string `json:"headers"`
	// the cloudflare transport rewrites headers, turn it off when testing against local servers.
	DisableCloudflareBypass bool `json:"disable_cloudflare_bypass"`
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func DefaultOptions() Options {
	return Options{
		BaseUrl:               "https://hibid.com",
		CompanySearchPath:     "/companysearch",
		AllowedDomains:        []string{"hibid.com", "www.hibid.com"},
		RequestTimeoutSeconds: 15,
		Headers: map[string]string{
			"User-Agent":      defaultUserAgent,
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
			"Connection":      "keep-alive",
		},
	}
}

func (o Options) timeout() time.Duration {
	return time.Duration(o.RequestTimeoutSeconds) * time.Second
}

func (o Options) baseUrl() string {
	return strings.TrimSuffix(o.BaseUrl, "/")
}

func (o Options) companySearchUrl() string {
	return o.baseUrl() + o.CompanySearchPath
}

func (o Options) isAllowedHost(host string) bool {
	host = strings.ToLower(host)
	for _, allowed := range o.AllowedDomains {
		if strings.ToLower(allowed) == host {
			return true
		}
	}
	return false
}
