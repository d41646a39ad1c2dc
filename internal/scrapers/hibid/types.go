package hibid

// Company is the list-view shape of a hibid auctioneer.
type Company struct {
	// nil when the id could not be recovered (html fallback with an odd href)
	CompanyId  *int64 `json:"company_id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	ProfileUrl string `json:"profile_url"`
}

// CompanyDetails is the detail-view shape, it is only available from a
// company's own profile page.
type CompanyDetails struct {
	Company
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
	Fax     string `json:"fax"`
}

// Strategy is the extraction strategy that produced a result.
type Strategy int

const (
	StrategyUnavailable Strategy = iota
	// recovered from the embedded apollo cache
	StrategyStructured
	// recovered from the visible markup
	StrategyHeuristic
)

// String is the value reported as `source` to API consumers.
func (s Strategy) String() string {
	switch s {
	case StrategyStructured:
		return "apollo_state"
	case StrategyHeuristic:
		return "html_table"
	default:
		return "unavailable"
	}
}

type ListResult struct {
	Strategy  Strategy
	Companies []Company
	// only known when the structured strategy succeeded
	TotalCount *int64
}

type DetailResult struct {
	Strategy Strategy
	Company  CompanyDetails
}
