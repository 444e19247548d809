package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/tsuruki/cardforge-server/internal/logger"
	"github.com/tsuruki/cardforge-server/internal/model"
)

const defaultUserURL = "https://discord.com/api/users/@me"

// Client exchanges OAuth2 authorization codes for Discord identity claims.
// It implements model.IdentityProvider.
type Client struct {
	conf       *oauth2.Config
	httpClient *http.Client
	userURL    string
	logger     *logger.Logger
}

var _ model.IdentityProvider = (*Client)(nil)

// New creates a Discord identity provider client.
func New(clientID, clientSecret, redirectURI string, logger *logger.Logger) *Client {
	return &Client{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Endpoint:     endpoints.Discord,
			Scopes:       []string{"identify"},
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
		userURL:    defaultUserURL,
		logger:     logger,
	}
}

// AuthorizationURL builds the provider authorization URL carrying the state.
func (c *Client) AuthorizationURL(state string) string {
	return c.conf.AuthCodeURL(state)
}

// discordUser is the subset of the /users/@me response this engine consumes.
type discordUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
}

// ExchangeCode trades the authorization code for a provider access token and
// resolves the user behind it. Any failure surfaces as model.ErrProvider; the
// engine never retries this call.
func (c *Client) ExchangeCode(ctx context.Context, code string) (model.ProviderIdentity, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	tok, err := c.conf.Exchange(ctx, code)
	if err != nil {
		c.logger.Error("Discord provider: code exchange failed", "error", err.Error())
		return model.ProviderIdentity{}, fmt.Errorf("%w: code exchange: %w", model.ErrProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userURL, nil)
	if err != nil {
		return model.ProviderIdentity{}, fmt.Errorf("%w: build user request: %w", model.ErrProvider, err)
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Discord provider: user request failed", "error", err.Error())
		return model.ProviderIdentity{}, fmt.Errorf("%w: user request: %w", model.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Discord provider: user request rejected", "status", resp.StatusCode)
		return model.ProviderIdentity{}, fmt.Errorf("%w: user request returned status %d", model.ErrProvider, resp.StatusCode)
	}

	var user discordUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return model.ProviderIdentity{}, fmt.Errorf("%w: decode user response: %w", model.ErrProvider, err)
	}

	id, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		return model.ProviderIdentity{}, fmt.Errorf("%w: invalid user id %q", model.ErrProvider, user.ID)
	}

	username := user.Username
	if username == "" {
		username = user.GlobalName
	}

	return model.ProviderIdentity{ID: id, Username: username}, nil
}
