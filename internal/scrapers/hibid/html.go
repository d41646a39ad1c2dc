package hibid

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"hibid-backend/lib/htmlutil"
)

// ExtractTableCompanies reads the company search table. Only the id, name,
// location and profile url can be recovered from it.
func (o Options) ExtractTableCompanies(ctx context.Context, doc *goquery.Document) []Company {
	table := doc.Find(companyTableSelector).First()
	if table.Length() == 0 {
		return nil
	}

	var companies []Company
	seen := map[string]struct{}{}

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		// header
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		anchors := htmlutil.GetAnchors(ctx, cells.Eq(0).Find("a").First())
		if len(anchors) == 0 {
			return
		}
		link := anchors[0]

		if _, dup := seen[link.Href]; dup {
			return
		}
		seen[link.Href] = struct{}{}

		var companyId *int64
		id, ok := companyIdFromPath(link.Href)
		if ok {
			companyId = &id
		}

		profileUrl := link.Href
		if strings.HasPrefix(link.Href, "/") {
			profileUrl = o.baseUrl() + link.Href
		}

		companies = append(companies, Company{
			CompanyId:  companyId,
			Name:       link.Name,
			Location:   htmlutil.CleanText(cells.Eq(1)),
			ProfileUrl: profileUrl,
		})
	})

	return companies
}

var titleSuffixRegex = regexp.MustCompile(`(?i)\s*-\s*Live and Online Auctions.*$`)

// ExtractProfileDetails reads the visible contact block of a profile page.
// City, state, postal code and country cannot be recovered this way.
func (o Options) ExtractProfileDetails(ctx context.Context, doc *goquery.Document, target ValidatedUrl) (CompanyDetails, bool) {
	name := ""
	title := doc.Find(profileTitleSelector).First()
	if title.Length() > 0 {
		name = titleSuffixRegex.ReplaceAllString(htmlutil.CleanText(title), "")
	}

	container := doc.Find(detailsSelector).First()
	if container.Length() == 0 && name == "" {
		return CompanyDetails{}, false
	}

	var phone, email, website, address string
	for _, anchor := range htmlutil.GetAnchors(ctx, container.Find("a")) {
		switch {
		case strings.HasPrefix(anchor.Href, telScheme):
			if phone == "" {
				phone = anchor.Name
			}
		case strings.HasPrefix(anchor.Href, mailtoScheme):
			if email == "" {
				email = anchor.Name
			}
		case strings.Contains(anchor.Href, mapsLinkMarker):
		case anchor.Href == "":
		default:
			if website == "" && (strings.Contains(anchor.Href, websiteHrefDomainMatch) ||
				strings.HasSuffix(anchor.Name, websiteTextSuffix)) {
				website = anchor.Name
			}
		}
	}

	mapLink := container.Find(`a[href*="` + mapsLinkMarker + `"]`).First()
	if mapLink.Length() > 0 {
		address = htmlutil.GetSeparatedText(mapLink.Nodes[0], " ")
	}

	companyId := target.CompanyId()
	return CompanyDetails{
		Company: Company{
			CompanyId:  &companyId,
			Name:       name,
			Location:   address,
			Address:    address,
			ProfileUrl: target.String(),
		},
		Phone:   phone,
		Email:   email,
		Website: website,
	}, true
}

// companyIdFromPath parses the second segment of "/company/12345/slug",
// absolute urls are accepted too.
func companyIdFromPath(href string) (int64, bool) {
	path := href
	parsed, err := url.Parse(href)
	if err == nil && parsed.Path != "" {
		path = parsed.Path
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(segments[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
