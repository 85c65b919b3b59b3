package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// tokenSafetyMargin is subtracted from the provider's expires_in so a token
// is never presented in its last seconds.
const tokenSafetyMargin = 30 * time.Second

// TokenFetcher obtains a fresh bearer token and its lifetime.
type TokenFetcher func(ctx context.Context) (token string, ttl time.Duration, err error)

// TokenCache holds a bearer token and refreshes it only when expired.
// Concurrent callers share a single refresh.
type TokenCache struct {
	fetch TokenFetcher
	now   func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

func NewTokenCache(fetch TokenFetcher) *TokenCache {
	return &TokenCache{fetch: fetch, now: time.Now}
}

// Token returns a valid token, fetching a new one if none is cached or the
// cached one has expired.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiry) {
		return c.token, nil
	}

	token, ttl, err := c.fetch(ctx)
	if err != nil {
		return "", err
	}
	if ttl > tokenSafetyMargin {
		ttl -= tokenSafetyMargin
	}
	c.token = token
	c.expiry = c.now().Add(ttl)
	return token, nil
}

// Invalidate drops the cached token so the next Token call refreshes.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	c.token = ""
	c.expiry = time.Time{}
	c.mu.Unlock()
}

// ClientCredentials returns a TokenFetcher for the Amadeus OAuth2
// client-credentials grant.
func ClientCredentials(httpClient *http.Client, baseURL, clientID, clientSecret string) TokenFetcher {
	return func(ctx context.Context) (string, time.Duration, error) {
		form := url.Values{}
		form.Set("grant_type", "client_credentials")
		form.Set("client_id", clientID)
		form.Set("client_secret", clientSecret)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			baseURL+"/v1/security/oauth2/token",
			strings.NewReader(form.Encode()))
		if err != nil {
			return "", 0, wrapError(KindUpstreamAuth, err, "Failed to authenticate with Amadeus API")
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := httpClient.Do(req)
		if err != nil {
			return "", 0, wrapError(KindUpstreamAuth, err, "Failed to authenticate with Amadeus API")
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			return "", 0, wrapError(KindUpstreamAuth,
				fmt.Errorf("token request failed (%d)", resp.StatusCode),
				"Failed to authenticate with Amadeus API")
		}

		var result struct {
			AccessToken string `json:"access_token"`
			ExpiresIn   int    `json:"expires_in"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return "", 0, wrapError(KindUpstreamAuth, err, "Failed to authenticate with Amadeus API")
		}
		if result.AccessToken == "" {
			return "", 0, newError(KindUpstreamAuth, "Failed to authenticate with Amadeus API")
		}

		return result.AccessToken, time.Duration(result.ExpiresIn) * time.Second, nil
	}
}
