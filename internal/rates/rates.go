package rates

// Table maps an ISO 4217 currency code to its value in units per 1 USD.
type Table map[string]float64

// Supported currency codes. The live fetch only ever overwrites these keys.
var supportedCurrencies = []string{"USD", "JPY", "GBP", "EUR", "AUD", "CAD"}

// Defaults returns the static fallback table. These rates are approximate
// and non-authoritative; they are only used when the live fetch is
// unavailable. USD is always 1.0.
func Defaults() Table {
	return Table{
		"USD": 1.0,
		"JPY": 150.0,
		"GBP": 0.79,
		"EUR": 0.92,
		"AUD": 1.52,
		"CAD": 1.35,
	}
}

// Rate returns the units-per-USD rate for code. Codes missing from the table
// are treated as 1.0, i.e. already USD-equivalent. This is a deliberately
// lenient default for marketplaces that settle in currencies outside the
// supported set. A known rate of zero is returned as-is; callers must treat
// it as unconvertible rather than divide by it.
func (t Table) Rate(code string) float64 {
	r, ok := t[code]
	if !ok {
		return 1.0
	}
	return r
}

// Merge overwrites the table's supported keys with values from a live
// response. Keys outside the supported set are ignored.
func (t Table) Merge(live map[string]float64) {
	for _, code := range supportedCurrencies {
		if r, ok := live[code]; ok {
			t[code] = r
		}
	}
}
