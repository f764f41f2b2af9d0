package pricing

import (
	"fmt"
	"strconv"

	"snapscout/internal/ebay"
	"snapscout/internal/rates"
)

// Normalize converts one country's raw items into rows priced in the home
// currency.
//
// An empty item list in sold mode yields exactly one "no sales found"
// sentinel row; in active mode it yields no rows at all. Missing price,
// currency and shipping fields fall back to 0 / "USD" rather than failing.
// Currencies outside the rate table are treated as USD-equivalent (rate
// 1.0); a known rate of zero makes the item unconvertible and its total 0.
func Normalize(items []ebay.Item, country Country, mode ebay.Mode, table rates.Table, home string) []Row {
	if len(items) == 0 {
		if mode == ebay.ModeSold {
			return []Row{noSalesRow(country)}
		}
		return nil
	}

	rows := make([]Row, 0, len(items))
	for _, item := range items {
		price, currency := itemPrice(item)
		shipping := shippingCost(item)
		totalLocal := price + shipping

		var totalHome float64
		switch {
		case currency == home:
			// Identity conversion, kept exact by skipping the USD leg.
			totalHome = totalLocal
		default:
			var totalUSD float64
			if currency == "USD" {
				totalUSD = totalLocal
			} else if r := table.Rate(currency); r > 0 {
				totalUSD = totalLocal / r
			}
			totalHome = totalUSD * table.Rate(home)
		}

		title := item.Title
		if title == "" {
			title = "No Title"
		}

		row := Row{
			Country:   country.Label,
			Title:     title,
			Total:     FormatTotal(totalHome, home),
			SortPrice: totalHome,
			Breakdown: fmt.Sprintf("%.2f + ship %.2f %s", price, shipping, currency),
			Link:      itemLink(item),
		}
		if mode == ebay.ModeSold {
			row.Date = soldDate(item)
		}
		rows = append(rows, row)
	}
	return rows
}

func noSalesRow(country Country) Row {
	return Row{
		Country:   country.Label,
		Title:     "No sales found",
		Total:     "-",
		SortPrice: NoResultSortPrice,
		Breakdown: "-",
		Link:      "#",
		Date:      "-",
	}
}

func itemPrice(item ebay.Item) (float64, string) {
	money := item.Price
	if money == nil {
		money = item.LastSoldPrice
	}
	if money == nil {
		return 0, "USD"
	}
	value, err := strconv.ParseFloat(money.Value, 64)
	if err != nil {
		value = 0
	}
	currency := money.Currency
	if currency == "" {
		currency = "USD"
	}
	return value, currency
}

// shippingCost reads the first shipping option only; additional options are
// ignored.
func shippingCost(item ebay.Item) float64 {
	if len(item.ShippingOptions) == 0 {
		return 0
	}
	cost := item.ShippingOptions[0].ShippingCost
	if cost == nil {
		return 0
	}
	value, err := strconv.ParseFloat(cost.Value, 64)
	if err != nil {
		return 0
	}
	return value
}

func itemLink(item ebay.Item) string {
	if item.ItemWebURL != "" {
		return item.ItemWebURL
	}
	if item.ItemHref != "" {
		return item.ItemHref
	}
	return "#"
}

// soldDate prefers the sold date over the listing end date and keeps only
// the calendar-date portion.
func soldDate(item ebay.Item) string {
	date := item.LastSoldDate
	if date == "" {
		date = item.ItemEndDate
	}
	if date == "" {
		return "-"
	}
	if len(date) > 10 {
		date = date[:10]
	}
	return date
}
