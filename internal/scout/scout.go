// Package scout drives one price scan: fan-out over the selected
// storefronts, normalization of every country's results and reduction to
// the per-country minimum dashboard.
package scout

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"snapscout/internal/ebay"
	"snapscout/internal/pricing"
	"snapscout/internal/rates"
)

// Searcher abstracts the marketplace search API so tests can substitute a
// fake without network access.
type Searcher interface {
	Search(ctx context.Context, params ebay.SearchParams) ([]ebay.Item, error)
}

// RateSource supplies the exchange-rate table for a scan.
type RateSource interface {
	Current(ctx context.Context) rates.Table
}

// Service runs price scans.
type Service struct {
	searcher Searcher
	rates    RateSource
	home     string
}

// NewService creates a scan service. An empty homeCurrency defaults to
// HomeCurrency.
func NewService(searcher Searcher, rateSource RateSource, homeCurrency string) *Service {
	if homeCurrency == "" {
		homeCurrency = HomeCurrency
	}
	return &Service{searcher: searcher, rates: rateSource, home: homeCurrency}
}

// Params describes one scan.
type Params struct {
	Keyword      string
	Countries    []pricing.Country // defaults to DefaultCountries
	Mode         ebay.Mode
	LookbackDays int // sold mode only
	Limit        int // per-country result limit
	Progress     func(done, total int)
}

// Result holds everything one scan produced. Rows are sorted ascending by
// converted total, sentinel rows last. Minima is only populated in active
// mode; countries without a valid row carry a not-found summary. SoldHits is
// the number of countries that produced at least one actual sale.
type Result struct {
	Keyword  string                     `json:"keyword"`
	Mode     ebay.Mode                  `json:"mode"`
	Home     string                     `json:"home_currency"`
	Rows     []pricing.Row              `json:"rows"`
	Minima   map[string]pricing.Summary `json:"minima,omitempty"`
	SoldHits int                        `json:"sold_hits,omitempty"`
}

// NoData reports whether the scan produced nothing to display at all. This
// is distinct from a per-country "no sales found" row, which only appears in
// sold mode.
func (r *Result) NoData() bool {
	return len(r.Rows) == 0
}

// Scan queries the selected countries strictly in their presented order.
// A failed marketplace query counts as zero results for that country and is
// never propagated. Progress is reported after each country completes.
func (s *Service) Scan(ctx context.Context, p Params) *Result {
	countries := p.Countries
	if len(countries) == 0 {
		countries = DefaultCountries
	}

	table := s.rates.Current(ctx)
	result := &Result{Keyword: p.Keyword, Mode: p.Mode, Home: s.home}

	for i, country := range countries {
		items, err := s.searcher.Search(ctx, ebay.SearchParams{
			Query:         p.Keyword,
			MarketplaceID: country.MarketplaceID,
			Limit:         p.Limit,
			Mode:          p.Mode,
			LookbackDays:  p.LookbackDays,
		})
		if err != nil {
			log.Warn().
				Err(err).
				Str("marketplace", country.MarketplaceID).
				Str("keyword", p.Keyword).
				Msg("marketplace search failed, counting as zero results")
			items = nil
		}

		result.Rows = append(result.Rows, pricing.Normalize(items, country, p.Mode, table, s.home)...)
		if p.Mode == ebay.ModeSold && len(items) > 0 {
			result.SoldHits++
		}
		if p.Progress != nil {
			p.Progress(i+1, len(countries))
		}
	}

	// Minima are derived from accumulation order so ties resolve to the
	// first-encountered row, then the display rows are sorted.
	if p.Mode != ebay.ModeSold && len(result.Rows) > 0 {
		result.Minima = pricing.Aggregate(result.Rows, countries)
	}
	sort.SliceStable(result.Rows, func(i, j int) bool {
		return result.Rows[i].SortPrice < result.Rows[j].SortPrice
	})

	log.Info().
		Str("keyword", p.Keyword).
		Str("mode", string(p.Mode)).
		Int("rows", len(result.Rows)).
		Msg("scan complete")
	return result
}
