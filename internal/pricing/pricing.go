// Package pricing normalizes raw marketplace items into comparable rows and
// reduces them to per-country minimums for the dashboard.
package pricing

// NoResultSortPrice is the sort key carried by sentinel rows. It is strictly
// greater than any realistic price so sentinel rows always sort last and
// never win a per-country minimum.
const NoResultSortPrice = 99_999_999

// Country is one selectable marketplace storefront.
type Country struct {
	Label         string `json:"label"`
	MarketplaceID string `json:"marketplace_id"`
	Currency      string `json:"currency"` // settlement currency
}

// Row is one normalized result for display. SortPrice is the raw converted
// total used only for ordering and min-finding, never shown directly.
type Row struct {
	Country   string  `json:"country"`
	Title     string  `json:"title"`
	Total     string  `json:"total"` // home currency, formatted
	SortPrice float64 `json:"sort_price"`
	Breakdown string  `json:"breakdown"` // local currency itemization
	Link      string  `json:"link"`
	Date      string  `json:"date,omitempty"` // sold mode only
}

// Summary is one country's entry in the minimum-price dashboard.
type Summary struct {
	Found bool   `json:"found"`
	Total string `json:"total,omitempty"`
	Title string `json:"title,omitempty"`
	Link  string `json:"link,omitempty"`
}
