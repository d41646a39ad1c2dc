package hibid

import (
	"fmt"

	"github.com/tidwall/gjson"
	"hibid-backend/lib/textutil"
)

// formatCompany maps a raw auctioneer entity to the list shape, null and
// missing fields become empty strings.
func (o Options) formatCompany(entity gjson.Result) Company {
	var companyId *int64
	id, ok := entityId(entity)
	if ok {
		companyId = &id
	}

	name := entity.Get("name").String()
	city := entity.Get("city").String()
	state := entity.Get("state").String()
	country := entity.Get("country").String()

	return Company{
		CompanyId:  companyId,
		Name:       name,
		Location:   textutil.JoinNonBlank(", ", city, state, country),
		Address:    entity.Get("address").String(),
		City:       city,
		State:      state,
		PostalCode: entity.Get("postalCode").String(),
		Country:    country,
		ProfileUrl: o.profileUrl(companyId, name),
	}
}

// formatCompanyDetails adds the contact fields. A non-empty canonicalUrl wins
// over the derived profile url, the slug in the derived one may be stale.
func (o Options) formatCompanyDetails(entity gjson.Result, canonicalUrl string) CompanyDetails {
	details := CompanyDetails{
		Company: o.formatCompany(entity),
		Phone:   entity.Get("phone").String(),
		Email:   entity.Get("email").String(),
		Website: entity.Get("internetAddress").String(),
		Fax:     entity.Get("fax").String(),
	}
	if canonicalUrl != "" {
		details.ProfileUrl = canonicalUrl
	}
	return details
}

func (o Options) profileUrl(companyId *int64, name string) string {
	id := ""
	if companyId != nil {
		id = fmt.Sprint(*companyId)
	}
	return fmt.Sprintf("%s%s%s/%s", o.baseUrl(), ProfilePathPrefix, id, textutil.Slugify(name))
}
