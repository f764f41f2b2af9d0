package ebay

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Mode selects which listings a search returns.
type Mode string

const (
	// ModeActive returns currently-for-sale fixed-price listings, cheapest first.
	ModeActive Mode = "active"
	// ModeSold returns completed sales within a lookback window, newest first.
	ModeSold Mode = "sold"
)

const (
	browseSearchPath   = "/buy/browse/v1/item_summary/search"
	insightsSearchPath = "/buy/marketplace_insights/v1_beta/item_sales/search"

	defaultLimit        = 10
	defaultLookbackDays = 90
)

// SearchParams describes one marketplace search.
type SearchParams struct {
	Query         string
	MarketplaceID string // e.g. EBAY_US
	Limit         int
	Mode          Mode
	LookbackDays  int // sold mode only
}

// Money is a price amount with its settlement currency. eBay serializes
// amounts as strings.
type Money struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// ShippingOption is one shipping choice for an item.
type ShippingOption struct {
	ShippingCost *Money `json:"shippingCost"`
}

// Item is a raw market item as returned by either search endpoint. Active
// listings populate Price; sold records populate LastSoldPrice and the date
// fields. Any field may be absent.
type Item struct {
	Title           string           `json:"title"`
	ItemWebURL      string           `json:"itemWebUrl"`
	ItemHref        string           `json:"itemHref"`
	Price           *Money           `json:"price"`
	LastSoldPrice   *Money           `json:"lastSoldPrice"`
	ShippingOptions []ShippingOption `json:"shippingOptions"`
	LastSoldDate    string           `json:"lastSoldDate"`
	ItemEndDate     string           `json:"itemEndDate"`
}

type searchResponse struct {
	ItemSummaries []Item `json:"itemSummaries"`
	ItemSales     []Item `json:"itemSales"`
}

// Search queries one marketplace. Active mode uses the Browse API filtered
// to fixed-price listings sorted by ascending price; sold mode uses the
// Marketplace Insights API filtered to sales within the lookback window,
// most recent first.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]Item, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	result := &searchResponse{}
	req := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("X-EBAY-C-MARKETPLACE-ID", params.MarketplaceID).
		SetQueryParam("q", params.Query).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(result)

	if params.Mode == ModeSold {
		days := params.LookbackDays
		if days <= 0 {
			days = defaultLookbackDays
		}
		since := time.Now().UTC().AddDate(0, 0, -days)
		_, err = handleError(req.
			SetQueryParam("filter", fmt.Sprintf("lastSoldDate:[%s..]", since.Format("2006-01-02T15:04:05Z"))).
			SetQueryParam("sort", "-lastSoldDate").
			Get(insightsSearchPath))
		if err != nil {
			return nil, err
		}
		return result.ItemSales, nil
	}

	_, err = handleError(req.
		SetQueryParam("filter", "buyingOptions:{FIXED_PRICE}").
		SetQueryParam("sort", "price").
		Get(browseSearchPath))
	if err != nil {
		return nil, err
	}
	return result.ItemSummaries, nil
}
