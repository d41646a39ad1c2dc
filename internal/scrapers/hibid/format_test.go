package hibid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func ptr[T any](v T) *T {
	return &v
}

func TestFormatCompany(t *testing.T) {
	table := []struct {
		name     string
		entity   string
		expected Company
	}{
		{
			name: "complete",
			entity: `{
				"__typename": "Auctioneer",
				"id": 133721,
				"name": "0% Buyers Premium Coin Auction",
				"address": "123 Main St",
				"city": "Dallas",
				"state": "TX",
				"postalCode": "75201",
				"country": "USA"
			}`,
			expected: Company{
				CompanyId:  ptr(int64(133721)),
				Name:       "0% Buyers Premium Coin Auction",
				Location:   "Dallas, TX, USA",
				Address:    "123 Main St",
				City:       "Dallas",
				State:      "TX",
				PostalCode: "75201",
				Country:    "USA",
				ProfileUrl: "https://hibid.com/company/133721/0-buyers-premium-coin-auction",
			},
		},
		{
			name:   "null and missing fields",
			entity: `{"id": 86903, "name": "105 Auction Gallery", "city": "Bensalem", "state": null, "country": "USA", "address": null}`,
			expected: Company{
				CompanyId:  ptr(int64(86903)),
				Name:       "105 Auction Gallery",
				Location:   "Bensalem, USA",
				City:       "Bensalem",
				Country:    "USA",
				ProfileUrl: "https://hibid.com/company/86903/105-auction-gallery",
			},
		},
		{
			name:   "blank location parts",
			entity: `{"id": "12", "name": "A & B Auctions, LLC", "city": "  ", "state": "", "country": "CAN"}`,
			expected: Company{
				CompanyId:  ptr(int64(12)),
				Name:       "A & B Auctions, LLC",
				Location:   "CAN",
				City:       "  ",
				Country:    "CAN",
				ProfileUrl: "https://hibid.com/company/12/a-b-auctions-llc",
			},
		},
		{
			name:   "no id",
			entity: `{"name": "Nameless"}`,
			expected: Company{
				Name:       "Nameless",
				ProfileUrl: "https://hibid.com/company//nameless",
			},
		},
	}

	options := DefaultOptions()
	for _, row := range table {
		t.Run(row.name, func(t *testing.T) {
			company := options.formatCompany(gjson.Parse(row.entity))
			diff := cmp.Diff(row.expected, company)
			if diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestFormatCompanyDetails(t *testing.T) {
	entity := gjson.Parse(`{
		"id": 133721,
		"name": "0% Buyers Premium Coin Auction",
		"city": "Dallas",
		"state": "TX",
		"country": "USA",
		"phone": "(214) 555-0100",
		"email": "info@coinauction.example",
		"internetAddress": "https://coinauction.com",
		"fax": null
	}`)
	options := DefaultOptions()

	details := options.formatCompanyDetails(entity, "https://hibid.com/company/133721/0--buyers-premium-coin-auction")
	require.Equal(t, "https://hibid.com/company/133721/0--buyers-premium-coin-auction", details.ProfileUrl)
	require.Equal(t, "(214) 555-0100", details.Phone)
	require.Equal(t, "info@coinauction.example", details.Email)
	require.Equal(t, "https://coinauction.com", details.Website)
	require.Equal(t, "", details.Fax)
	require.Equal(t, "Dallas, TX, USA", details.Location)
	require.Equal(t, int64(133721), *details.CompanyId)

	details = options.formatCompanyDetails(entity, "")
	require.Equal(t, "https://hibid.com/company/133721/0-buyers-premium-coin-auction", details.ProfileUrl)
}

func TestProfileUrlBase(t *testing.T) {
	options := DefaultOptions()
	options.BaseUrl = "https://www.hibid.com/"
	require.Equal(t, "https://www.hibid.com/company/1/x", options.profileUrl(ptr(int64(1)), "X"))
}
