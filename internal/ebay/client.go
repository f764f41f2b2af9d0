package ebay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	APIBaseURL = "https://api.ebay.com"

	oauthTokenPath = "/identity/v1/oauth2/token"
	oauthScope     = "https://api.ebay.com/oauth/api_scope"

	// Tokens are refreshed a minute before eBay's reported expiry to avoid
	// racing the deadline mid-search.
	tokenExpiryMargin = time.Minute
)

// ClientOpts configures a Client.
type ClientOpts struct {
	ClientID     string
	ClientSecret string
	BaseURL      string // overrides APIBaseURL, for testing
}

// Client talks to the eBay Buy APIs using an application token obtained via
// the OAuth client-credentials grant.
type Client struct {
	httpClient   *resty.Client
	clientID     string
	clientSecret string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient creates a new eBay API client.
func NewClient(opts ClientOpts) *Client {
	c := &Client{
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
	}
	baseURL := APIBaseURL
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	c.httpClient = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(20 * time.Second).
		SetHeader("Accept", "application/json")
	return c
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// bearerToken returns a cached application token, performing the
// client-credentials exchange when no valid token is held.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	result := &tokenResponse{}
	_, err := handleError(c.httpClient.R().
		SetContext(ctx).
		SetBasicAuth(c.clientID, c.clientSecret).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(map[string]string{
			"grant_type": "client_credentials",
			"scope":      oauthScope,
		}).
		SetResult(result).
		Post(oauthTokenPath))
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	if result.AccessToken == "" {
		return "", errors.New("token exchange returned an empty access token")
	}

	c.token = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn)*time.Second - tokenExpiryMargin)
	log.Debug().Time("expiry", c.tokenExpiry).Msg("obtained ebay application token")
	return c.token, nil
}

// handleError is a generic error handler for failing responses (>399 status
// code). Without this, failing responses would have nil error.
func handleError(res *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return res, err
	}
	if res.IsError() {
		return res, fmt.Errorf("request failed: %s %s (status: %d)", res.Request.Method, res.Request.URL, res.StatusCode())
	}
	return res, nil
}
