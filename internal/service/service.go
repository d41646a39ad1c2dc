// Package service implements the company endpoints independently of any
// transport, adapters only translate a Response into their own output.
package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"hibid-backend/internal/assert"
	"hibid-backend/internal/components/telemetry"
	"hibid-backend/internal/scrapers/hibid"
)

const (
	report_service_company_list    = "service.company-list"
	report_service_company_details = "service.company-details"
)

const (
	listCacheControl    = "public, max-age=300, s-maxage=600"
	detailsCacheControl = "public, max-age=600, s-maxage=1800"

	listNote = "The SSR page pre-renders ~100 companies (page 1). " +
		"For all ~3,025 companies, iterate over the returned profile_urls " +
		"using /api/get-company-details with 1-2s delays between calls."

	listUnavailableMessage = "Failed to extract company data from HiBid. " +
		"The site structure may have changed."
	detailsMissingMessage = "Missing required 'url' parameter. " +
		"Example: /api/get-company-details?url=/company/133721/0--buyers-premium-coin-auction"
	detailsInvalidMessage = "Invalid URL. Must be a HiBid company profile path " +
		"(e.g., /company/133721/slug) or full hibid.com URL."
	detailsUnavailableMessage = "Failed to extract company details from the profile page. " +
		"The page may not exist or the site structure may have changed."
)

type Meta struct {
	Note string `json:"note"`
}

// Envelope is the body of every response, Data and Meta are only set on
// success and Error only on failure.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Response struct {
	Status       int
	CacheControl string
	Body         Envelope
}

type CompanyList struct {
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalCount *int64          `json:"total_count"`
	Source     string          `json:"source"`
	Companies  []hibid.Company `json:"companies"`
}

type ListRequest struct {
	// raw query value, empty means the first page
	Page string
}

type DetailsRequest struct {
	// raw query value, an untrusted profile path or url
	Url string
}

type Service struct {
	client  hibid.Client
	maxPage int
	tel     telemetry.API
}

func NewService(client hibid.Client, maxPage int, tel telemetry.API) Service {
	assert.Positive("max page", maxPage)
	assert.NotNil(tel)
	return Service{
		client:  client,
		maxPage: maxPage,
		tel:     telemetry.NewScopedAPI("service", tel),
	}
}

func success(status int, cacheControl string, data any, meta *Meta) Response {
	return Response{
		Status:       status,
		CacheControl: cacheControl,
		Body:         Envelope{Success: true, Data: data, Meta: meta},
	}
}

func failure(status int, cacheControl, message string) Response {
	return Response{
		Status:       status,
		CacheControl: cacheControl,
		Body:         Envelope{Success: false, Error: message},
	}
}

// recoverInternal turns a panic into a 500 that only names the kind of fault.
func (s Service) recoverInternal(id, cacheControl string, res *Response) {
	r := recover()
	if r == nil {
		return
	}
	s.tel.ReportBroken(id, r)
	*res = failure(
		http.StatusInternalServerError,
		cacheControl,
		fmt.Sprintf("Internal server error: %T", r),
	)
}

func (s Service) parsePage(raw string) (int, *Response) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		res := failure(
			http.StatusBadRequest,
			listCacheControl,
			fmt.Sprintf("Invalid parameter: page must be an integer, got %q", raw),
		)
		return 0, &res
	}
	if page < 1 || page > s.maxPage {
		res := failure(
			http.StatusBadRequest,
			listCacheControl,
			fmt.Sprintf(
				"Page must be between 1 and %d. "+
					"Note: The SSR page only pre-renders page 1 (~100 companies). "+
					"Use /api/get-company-details to fetch individual company data.",
				s.maxPage,
			),
		)
		return 0, &res
	}
	return page, nil
}

// GetCompanyList validates the page and returns the companies the site
// renders. Every valid page yields the first page of results, the page
// number is echoed back as given.
func (s Service) GetCompanyList(ctx context.Context, req ListRequest) (res Response) {
	defer s.recoverInternal(report_service_company_list, listCacheControl, &res)

	page, invalid := s.parsePage(req.Page)
	if invalid != nil {
		return *invalid
	}

	result := s.client.CompanyList(ctx)
	if result.Strategy == hibid.StrategyUnavailable || len(result.Companies) == 0 {
		return failure(http.StatusBadGateway, listCacheControl, listUnavailableMessage)
	}

	return success(
		http.StatusOK,
		listCacheControl,
		CompanyList{
			Page:       page,
			PageSize:   len(result.Companies),
			TotalCount: result.TotalCount,
			Source:     result.Strategy.String(),
			Companies:  result.Companies,
		},
		&Meta{Note: listNote},
	)
}

// GetCompanyDetails validates the url and returns the company its profile
// page describes. Nothing is fetched unless the url passes validation.
func (s Service) GetCompanyDetails(ctx context.Context, req DetailsRequest) (res Response) {
	defer s.recoverInternal(report_service_company_details, detailsCacheControl, &res)

	if strings.TrimSpace(req.Url) == "" {
		return failure(http.StatusBadRequest, detailsCacheControl, detailsMissingMessage)
	}

	target, err := s.client.Validate(ctx, req.Url)
	if err != nil {
		s.tel.ReportDebug("rejected company url", req.Url, err)
		return failure(http.StatusBadRequest, detailsCacheControl, detailsInvalidMessage)
	}

	result := s.client.CompanyDetails(ctx, target)
	if result.Strategy == hibid.StrategyUnavailable {
		return failure(http.StatusBadGateway, detailsCacheControl, detailsUnavailableMessage)
	}
	return success(http.StatusOK, detailsCacheControl, result.Company, nil)
}

// Validate exposes the url check used by GetCompanyDetails without fetching anything.
func (s Service) Validate(ctx context.Context, raw string) (hibid.ValidatedUrl, error) {
	return s.client.Validate(ctx, raw)
}
