package scout

import "snapscout/internal/pricing"

// HomeCurrency is the default currency for comparison totals.
const HomeCurrency = "JPY"

// DefaultCountries is the selectable universe of storefronts. Each entry
// carries the eBay marketplace ID and the currency that storefront settles
// in.
var DefaultCountries = []pricing.Country{
	{Label: "United States", MarketplaceID: "EBAY_US", Currency: "USD"},
	{Label: "United Kingdom", MarketplaceID: "EBAY_GB", Currency: "GBP"},
	{Label: "Germany", MarketplaceID: "EBAY_DE", Currency: "EUR"},
	{Label: "Australia", MarketplaceID: "EBAY_AU", Currency: "AUD"},
	{Label: "Canada", MarketplaceID: "EBAY_CA", Currency: "CAD"},
}

// CountriesByID resolves marketplace IDs to countries, preserving the
// requested order. Unknown IDs are skipped.
func CountriesByID(ids []string) []pricing.Country {
	byID := make(map[string]pricing.Country, len(DefaultCountries))
	for _, c := range DefaultCountries {
		byID[c.MarketplaceID] = c
	}

	var out []pricing.Country
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out
}
