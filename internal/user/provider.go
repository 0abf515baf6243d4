package user

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/oauth2"
)

// Identity is what the portal reports about a signed-in user.
type Identity struct {
	OpenID string
	Name   string
	Email  string
}

// Provider abstracts the portal OAuth flow so handlers can be tested with
// a fake.
type Provider interface {
	Name() string
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*Identity, error)
}

// PortalProvider drives the single external identity provider the site
// signs in against. All endpoints come from configuration.
type PortalProvider struct {
	config      *oauth2.Config
	userInfoURL string
}

func NewPortalProvider(clientID, clientSecret, redirectURL, authURL, tokenURL, userInfoURL string) *PortalProvider {
	if clientID == "" || clientSecret == "" {
		return nil
	}
	return &PortalProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
		userInfoURL: userInfoURL,
	}
}

func (p *PortalProvider) Name() string {
	return "portal"
}

func (p *PortalProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *PortalProvider) Exchange(ctx context.Context, code string) (*Identity, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	client := p.config.Client(ctx, token)
	resp, err := client.Get(p.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var info struct {
		OpenID string `json:"openId"`
		Sub    string `json:"sub"`
		Name   string `json:"name"`
		Email  string `json:"email"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}

	openID := info.OpenID
	if openID == "" {
		openID = info.Sub
	}

	return &Identity{
		OpenID: openID,
		Name:   info.Name,
		Email:  info.Email,
	}, nil
}
