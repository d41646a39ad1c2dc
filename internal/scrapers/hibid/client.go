package hibid

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"hibid-backend/internal/assert"
	"hibid-backend/internal/components/telemetry"
)

const (
	report_client_company_list    = "client.company-list"
	report_client_company_details = "client.company-details"
	report_client_parse_html      = "client.parse-html"
)

var tracer = otel.Tracer("hibid.internal.scrapers.hibid")

// Client turns hibid pages into company records. It holds no per-request
// state, a single Client serves every request.
type Client struct {
	options   Options
	fetcher   Fetcher
	validator Validator
	tel       telemetry.API
}

func NewClient(options Options, fetcher Fetcher, resolver Resolver, tel telemetry.API) Client {
	assert.NotNil(fetcher)
	assert.NotNil(tel)
	assert.NotEmptyStr(options.BaseUrl)

	tel = telemetry.NewScopedAPI("hibid_scraper", tel)
	return Client{
		options:   options,
		fetcher:   fetcher,
		validator: NewValidator(options, resolver),
		tel:       tel,
	}
}

// Validate authorizes an untrusted profile path or url, see Validator.Validate.
func (c Client) Validate(ctx context.Context, raw string) (ValidatedUrl, error) {
	return c.validator.Validate(ctx, raw)
}

func (c Client) fetchDocument(ctx context.Context, id, url string) (*goquery.Document, bool) {
	markup, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		c.tel.ReportWarning(id, err)
		return nil, false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		c.tel.ReportBroken(report_client_parse_html, err, url)
		return nil, false
	}
	return doc, true
}

// CompanyList fetches the company search page once and tries the embedded
// state first, then the visible table.
//
// The site only server renders the first page of results, so there is no page
// argument.
func (c Client) CompanyList(ctx context.Context) ListResult {
	ctx, span := tracer.Start(ctx, "CompanyList")
	defer span.End()

	doc, ok := c.fetchDocument(ctx, report_client_company_list, c.options.companySearchUrl())
	if !ok {
		return ListResult{Strategy: StrategyUnavailable}
	}

	result := c.listFromState(doc)
	if result.Strategy == StrategyUnavailable {
		c.tel.ReportDebug("embedded state unusable, falling back to html table")
		result = c.listFromTable(ctx, doc)
	}

	span.SetAttributes(
		attribute.String("source", result.Strategy.String()),
		attribute.Int("companies", len(result.Companies)),
	)
	if result.Strategy == StrategyUnavailable {
		c.tel.ReportWarning(report_client_company_list, "no strategy recovered any companies")
	} else {
		c.tel.ReportCount(report_client_company_list, int64(len(result.Companies)))
	}
	return result
}

func (c Client) listFromState(doc *goquery.Document) ListResult {
	state, ok := ExtractState(doc)
	if !ok || state.EntityCount() == 0 {
		return ListResult{Strategy: StrategyUnavailable}
	}

	entities, totalCount := state.Entities()
	companies := make([]Company, 0, len(entities))
	for _, entity := range entities {
		companies = append(companies, c.options.formatCompany(entity))
	}
	if len(companies) == 0 {
		return ListResult{Strategy: StrategyUnavailable}
	}
	return ListResult{
		Strategy:   StrategyStructured,
		Companies:  companies,
		TotalCount: totalCount,
	}
}

func (c Client) listFromTable(ctx context.Context, doc *goquery.Document) ListResult {
	companies := c.options.ExtractTableCompanies(ctx, doc)
	if len(companies) == 0 {
		return ListResult{Strategy: StrategyUnavailable}
	}
	return ListResult{
		Strategy:  StrategyHeuristic,
		Companies: companies,
	}
}

// CompanyDetails fetches a profile page and tries the embedded state first,
// then the visible contact block.
func (c Client) CompanyDetails(ctx context.Context, target ValidatedUrl) DetailResult {
	ctx, span := tracer.Start(ctx, "CompanyDetails")
	defer span.End()
	span.SetAttributes(attribute.Int64("company_id", target.CompanyId()))

	doc, ok := c.fetchDocument(ctx, report_client_company_details, target.String())
	if !ok {
		return DetailResult{Strategy: StrategyUnavailable}
	}

	state, ok := ExtractState(doc)
	if ok {
		entity, found := state.Entity(target.CompanyId())
		if found {
			span.SetAttributes(attribute.String("source", StrategyStructured.String()))
			return DetailResult{
				Strategy: StrategyStructured,
				Company:  c.options.formatCompanyDetails(entity, target.String()),
			}
		}
	}
	c.tel.ReportDebug("embedded state unusable, falling back to profile markup", target.String())

	details, ok := c.options.ExtractProfileDetails(ctx, doc, target)
	if ok {
		span.SetAttributes(attribute.String("source", StrategyHeuristic.String()))
		return DetailResult{
			Strategy: StrategyHeuristic,
			Company:  details,
		}
	}

	c.tel.ReportWarning(report_client_company_details, "no strategy recovered the company", target.String())
	return DetailResult{Strategy: StrategyUnavailable}
}
