package screener

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"ipoalert/internal/model"
	"ipoalert/internal/normalize"
)

// Synonym keys seen across IPO calendar feeds, in lookup priority order.
var (
	totalKeys   = []string{"totalSharesValue", "proceeds", "totalValue"}
	priceKeys   = []string{"price", "offerPrice", "finalPrice"}
	sharesKeys  = []string{"numberOfShares", "shares", "sharesOffered"}
	dateKeys    = []string{"date", "ipoDate"}
	tickerKeys  = []string{"symbol", "ticker"}
	companyKeys = []string{"name", "companyName", "company"}
)

// OfferAmount resolves a record's total offer amount in USD. A provided
// total wins; otherwise price times share count; otherwise the record is
// unresolvable and the method names what was missing.
func OfferAmount(rec map[string]any) (float64, string, bool) {
	if total, ok := normalize.LookupNumber(rec, totalKeys...); ok {
		return total, model.MethodProvidedTotal, true
	}

	price, pok := normalize.LookupNumber(rec, priceKeys...)
	shares, sok := normalize.LookupNumber(rec, sharesKeys...)
	if !pok || !sok {
		return 0, model.MethodMissingPriceOrShares, false
	}
	return price * shares, model.MethodPriceTimesShares, true
}

// Screen keeps the records dated exactly targetDate whose offer amount is
// strictly above threshold, in input order.
func Screen(items []map[string]any, targetDate string, threshold float64) []model.Match {
	var matches []model.Match
	for _, rec := range items {
		if recordDate(rec) != targetDate {
			continue
		}
		amount, method, ok := OfferAmount(rec)
		if !ok || amount <= threshold {
			continue
		}
		matches = append(matches, buildMatch(rec, amount, method))
	}
	return matches
}

// recordDate extracts the ISO date prefix of a record's listing date.
func recordDate(rec map[string]any) string {
	s, ok := normalize.LookupString(rec, dateKeys...)
	if !ok {
		return ""
	}
	if len(s) > 10 {
		s = s[:10]
	}
	return s
}

func buildMatch(rec map[string]any, amount float64, method string) model.Match {
	ticker := "N/A"
	if v, ok := normalize.LookupString(rec, tickerKeys...); ok {
		ticker = strings.ToUpper(v)
	}

	company := "N/A"
	if v, ok := normalize.LookupString(rec, companyKeys...); ok {
		company = v
	}

	priceText := "N/A"
	if price, ok := normalize.LookupNumber(rec, priceKeys...); ok {
		priceText = fmt.Sprintf("$%.2f", price)
	}

	return model.Match{
		Ticker:      ticker,
		Company:     company,
		OfferAmount: "$" + humanize.CommafWithDigits(amount, 0),
		Price:       priceText,
		CalcMethod:  method,
	}
}
