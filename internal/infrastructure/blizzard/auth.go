package blizzard

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

// clientCredentials implements the battle.net OAuth2 client credentials flow.
// The token is refreshed lazily by the auth round tripper on 401.
type clientCredentials struct {
	tokenURL     string
	clientID     string
	clientSecret string

	mu    sync.RWMutex
	token string
}

func newClientCredentials(tokenURL, clientID, clientSecret string) *clientCredentials {
	return &clientCredentials{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

func (c *clientCredentials) BearerToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token
}

func (c *clientCredentials) Authenticate(ctx context.Context) error {
	form := url.Values{"grant_type": []string{"client_credentials"}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build token request: %w", err)
	}

	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := jsoniter.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode token response: %w", err)
	}

	if payload.AccessToken == "" {
		return fmt.Errorf("token endpoint returned empty access_token")
	}

	c.mu.Lock()
	c.token = payload.AccessToken
	c.mu.Unlock()

	return nil
}
