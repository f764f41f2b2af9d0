package rates

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const openERBaseURL = "https://open.er-api.com"

// RefreshInterval is how long a fetched table is reused before the provider
// is consulted again.
const RefreshInterval = time.Hour

// Provider fetches a live currency-per-USD rate mapping.
type Provider interface {
	Fetch(ctx context.Context) (map[string]float64, error)
}

// HTTPProvider fetches rates from the open.er-api.com USD endpoint.
type HTTPProvider struct {
	httpClient *resty.Client
}

// NewHTTPProvider creates a provider against the public open.er-api.com API.
func NewHTTPProvider() *HTTPProvider {
	return NewHTTPProviderWithBaseURL(openERBaseURL)
}

// NewHTTPProviderWithBaseURL creates a provider with a custom base URL (for testing).
func NewHTTPProviderWithBaseURL(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second),
	}
}

type openERResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

func (p *HTTPProvider) Fetch(ctx context.Context) (map[string]float64, error) {
	result := &openERResponse{}
	res, err := p.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		Get("/v6/latest/USD")
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("rate fetch failed: %s (status: %d)", res.Request.URL, res.StatusCode())
	}
	if result.Result != "success" {
		return nil, fmt.Errorf("rate fetch returned result %q", result.Result)
	}
	return result.Rates, nil
}

// Source supplies the current rate table. It consults the provider at most
// once per RefreshInterval; within the window the cached table is reused
// across searches. A fetch failure leaves the static defaults in place and
// is never surfaced to the user.
type Source struct {
	provider Provider
	interval time.Duration

	mu        sync.Mutex
	table     Table
	fetchedAt time.Time
}

// NewSource creates a source backed by provider. A nil provider yields the
// static defaults only.
func NewSource(provider Provider) *Source {
	return &Source{provider: provider, interval: RefreshInterval}
}

// Current returns the rate table to use for a search. The returned table is
// shared; callers must not mutate it.
func (s *Source) Current(ctx context.Context) Table {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table != nil && time.Since(s.fetchedAt) < s.interval {
		return s.table
	}

	table := Defaults()
	if s.provider != nil {
		live, err := s.provider.Fetch(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("rate fetch failed, using fallback rates")
		} else {
			table.Merge(live)
			log.Debug().Int("rates", len(live)).Msg("refreshed exchange rates")
		}
	}

	s.table = table
	s.fetchedAt = time.Now()
	return table
}
