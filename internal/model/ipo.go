package model

// FetchResult is the outcome of one calendar fetch. Items holds the raw
// records on success; ErrorSummary is set instead whenever the response
// could not be trusted.
type FetchResult struct {
	Source       string
	Items        []map[string]any
	ErrorSummary string
}

// Match is one IPO that passed the screen, with display-ready fields.
type Match struct {
	Ticker      string
	Company     string
	OfferAmount string
	Price       string
	CalcMethod  string
}

// Calc methods recorded on a Match.
const (
	MethodProvidedTotal        = "provided_total"
	MethodPriceTimesShares     = "price_x_shares"
	MethodMissingPriceOrShares = "missing_price_or_shares"
)
