package pricing

// Aggregate reduces rows to the cheapest valid row per country, keyed by
// country label. Sentinel rows (display total "-") never win. Ties on
// SortPrice keep the first-encountered row. Every country in countries gets
// an entry; those with no valid rows carry an explicit not-found summary.
func Aggregate(rows []Row, countries []Country) map[string]Summary {
	out := make(map[string]Summary, len(countries))
	for _, c := range countries {
		out[c.Label] = Summary{}
	}

	best := make(map[string]*Row)
	for i := range rows {
		row := &rows[i]
		if row.Total == "-" {
			continue
		}
		cheapest, ok := best[row.Country]
		if !ok || row.SortPrice < cheapest.SortPrice {
			best[row.Country] = row
		}
	}

	for label, row := range best {
		out[label] = Summary{
			Found: true,
			Total: row.Total,
			Title: row.Title,
			Link:  row.Link,
		}
	}
	return out
}
