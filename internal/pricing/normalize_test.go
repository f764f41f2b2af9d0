package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapscout/internal/ebay"
	"snapscout/internal/rates"
)

var (
	japan   = Country{Label: "Japan", MarketplaceID: "EBAY_JP", Currency: "JPY"}
	britain = Country{Label: "United Kingdom", MarketplaceID: "EBAY_GB", Currency: "GBP"}
	states  = Country{Label: "United States", MarketplaceID: "EBAY_US", Currency: "USD"}
)

func item(price, currency string, opts ...func(*ebay.Item)) ebay.Item {
	it := ebay.Item{
		Title:      "Sony WH-1000XM5",
		ItemWebURL: "https://www.ebay.com/itm/1",
		Price:      &ebay.Money{Value: price, Currency: currency},
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

func withShipping(value, currency string) func(*ebay.Item) {
	return func(it *ebay.Item) {
		it.ShippingOptions = []ebay.ShippingOption{
			{ShippingCost: &ebay.Money{Value: value, Currency: currency}},
		}
	}
}

func TestNormalizeHomeCurrencyIsExact(t *testing.T) {
	table := rates.Defaults()
	rows := Normalize([]ebay.Item{item("100.00", "JPY", withShipping("10.00", "JPY"))},
		japan, ebay.ModeActive, table, "JPY")

	require.Len(t, rows, 1)
	assert.Equal(t, 110.0, rows[0].SortPrice)
	assert.Equal(t, "¥110", rows[0].Total)
	assert.Equal(t, "100.00 + ship 10.00 JPY", rows[0].Breakdown)
}

func TestNormalizeGBPRoundTrip(t *testing.T) {
	// (100 + 10) / 0.79 * 150 ≈ 20886
	table := rates.Defaults()
	rows := Normalize([]ebay.Item{item("100.00", "GBP", withShipping("10.00", "GBP"))},
		britain, ebay.ModeActive, table, "JPY")

	require.Len(t, rows, 1)
	assert.InDelta(t, 20886.07, rows[0].SortPrice, 0.01)
	assert.Equal(t, "¥20,886", rows[0].Total)
}

func TestNormalizeUnknownCurrencyDefaultsToUSDRate(t *testing.T) {
	table := rates.Defaults()
	rows := Normalize([]ebay.Item{item("50.00", "CHF")}, states, ebay.ModeActive, table, "JPY")

	require.Len(t, rows, 1)
	// Lenient behavior: unknown currency treated as already USD-equivalent.
	assert.InDelta(t, 7500.0, rows[0].SortPrice, 0.01)
}

func TestNormalizeZeroRateYieldsZeroTotal(t *testing.T) {
	table := rates.Table{"GBP": 0, "JPY": 150.0}
	rows := Normalize([]ebay.Item{item("100.00", "GBP")}, britain, ebay.ModeActive, table, "JPY")

	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].SortPrice)
	assert.Equal(t, "¥0", rows[0].Total)
}

func TestNormalizeMissingFieldsFallBack(t *testing.T) {
	table := rates.Defaults()
	rows := Normalize([]ebay.Item{{ItemHref: "https://api.ebay.com/item/2"}},
		states, ebay.ModeActive, table, "JPY")

	require.Len(t, rows, 1)
	assert.Equal(t, "No Title", rows[0].Title)
	assert.Equal(t, "https://api.ebay.com/item/2", rows[0].Link)
	assert.Equal(t, 0.0, rows[0].SortPrice)
	assert.Equal(t, "0.00 + ship 0.00 USD", rows[0].Breakdown)
}

func TestNormalizeUsesFirstShippingOptionOnly(t *testing.T) {
	it := item("100.00", "USD", withShipping("5.00", "USD"))
	it.ShippingOptions = append(it.ShippingOptions,
		ebay.ShippingOption{ShippingCost: &ebay.Money{Value: "50.00", Currency: "USD"}})

	rows := Normalize([]ebay.Item{it}, states, ebay.ModeActive, rates.Defaults(), "USD")
	require.Len(t, rows, 1)
	assert.Equal(t, 105.0, rows[0].SortPrice)
}

func TestNormalizeSoldEmptyYieldsSentinelRow(t *testing.T) {
	rows := Normalize(nil, britain, ebay.ModeSold, rates.Defaults(), "JPY")

	require.Len(t, rows, 1)
	assert.Equal(t, float64(NoResultSortPrice), rows[0].SortPrice)
	assert.Equal(t, "-", rows[0].Total)
	assert.Equal(t, "-", rows[0].Breakdown)
	assert.Equal(t, "#", rows[0].Link)
	assert.Equal(t, "United Kingdom", rows[0].Country)

	// Sentinel sorts after any row with a finite price.
	real := Normalize([]ebay.Item{item("99999.00", "USD")}, states, ebay.ModeActive, rates.Defaults(), "JPY")
	assert.Less(t, real[0].SortPrice, rows[0].SortPrice)
}

func TestNormalizeActiveEmptyYieldsNoRows(t *testing.T) {
	rows := Normalize(nil, britain, ebay.ModeActive, rates.Defaults(), "JPY")
	assert.Empty(t, rows)
}

func TestNormalizeSoldDatePrefersSoldDate(t *testing.T) {
	it := item("10.00", "USD")
	it.Price = nil
	it.LastSoldPrice = &ebay.Money{Value: "10.00", Currency: "USD"}
	it.LastSoldDate = "2026-08-12T09:30:00.000Z"
	it.ItemEndDate = "2026-08-15T00:00:00.000Z"

	rows := Normalize([]ebay.Item{it}, states, ebay.ModeSold, rates.Defaults(), "JPY")
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-08-12", rows[0].Date)

	it.LastSoldDate = ""
	rows = Normalize([]ebay.Item{it}, states, ebay.ModeSold, rates.Defaults(), "JPY")
	assert.Equal(t, "2026-08-15", rows[0].Date)

	it.ItemEndDate = ""
	rows = Normalize([]ebay.Item{it}, states, ebay.ModeSold, rates.Defaults(), "JPY")
	assert.Equal(t, "-", rows[0].Date)
}

func TestFormatTotal(t *testing.T) {
	assert.Equal(t, "¥20,886", FormatTotal(20886.7, "JPY"))
	assert.Equal(t, "$1,234,567", FormatTotal(1234567.99, "USD"))
	assert.Equal(t, "£0", FormatTotal(0.4, "GBP"))
	assert.Equal(t, "A$152", FormatTotal(152, "AUD"))
	assert.Equal(t, "SEK 999", FormatTotal(999.9, "SEK"))
}
