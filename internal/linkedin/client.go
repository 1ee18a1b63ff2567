// Package linkedin implements the LinkedIn "Sign In with LinkedIn using
// OpenID Connect" authorization-code flow and the userinfo lookup.
package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/skillsculpt/internal/config"
	"golang.org/x/oauth2"
	oauthlinkedin "golang.org/x/oauth2/linkedin"
)

// DefaultUserInfoURL is LinkedIn's OpenID Connect userinfo endpoint.
const DefaultUserInfoURL = "https://api.linkedin.com/v2/userinfo"

// DefaultTokenLifetime applies when the token response carries no expiry.
const DefaultTokenLifetime = time.Hour

// Scopes requested during authorization.
var Scopes = []string{"openid", "profile", "email"}

// Client talks to LinkedIn's OAuth and userinfo endpoints.
type Client struct {
	oauth       *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
	now         func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithEndpoint overrides the OAuth endpoint.
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(c *Client) { c.oauth.Endpoint = endpoint }
}

// WithUserInfoURL overrides the userinfo endpoint.
func WithUserInfoURL(url string) Option {
	return func(c *Client) { c.userInfoURL = url }
}

// WithHTTPClient sets the HTTP client used for token exchange and userinfo.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client for the registered LinkedIn application.
func NewClient(cfg config.LinkedInConfig, opts ...Option) *Client {
	c := &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     oauthlinkedin.Endpoint,
			Scopes:       Scopes,
		},
		userInfoURL: DefaultUserInfoURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewState returns an unguessable OAuth state value.
func NewState() string {
	return uuid.NewString()
}

// AuthCodeURL returns the authorization URL the browser is redirected to.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for an access token.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("linkedin token exchange failed: %w", err)
	}
	return tok, nil
}

// ExpiresAt returns when tok stops being valid.
func (c *Client) ExpiresAt(tok *oauth2.Token) time.Time {
	if tok.Expiry.IsZero() {
		return c.now().Add(DefaultTokenLifetime)
	}
	return tok.Expiry
}

// FetchUserInfo retrieves the member's OpenID profile with accessToken.
// A non-2xx reply is reported as an *APIError carrying the upstream status.
func (c *Client) FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	return &info, nil
}
