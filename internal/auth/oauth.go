// Package auth owns the OAuth token lifecycle: the one-time browser
// authorization flow used by setup, and the refresh-token grant the API
// client falls back to when the access token expires.
package auth

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"

	"github.com/hev/timebill/internal/api"
	"github.com/hev/timebill/internal/config"
)

const (
	authURL     = "https://auth.freshbooks.com/service/auth/oauth/authorize"
	tokenURL    = "https://api.freshbooks.com/auth/oauth/token"
	redirectURL = "https://localhost:8457/callback"
)

// OAuthConfig builds the oauth2.Config for FreshBooks. The application
// credentials come from the environment; FreshBooks issues them per app.
func OAuthConfig() (*oauth2.Config, error) {
	clientID := os.Getenv("FRESHBOOKS_CLIENT_ID")
	clientSecret := os.Getenv("FRESHBOOKS_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("missing FRESHBOOKS_CLIENT_ID or FRESHBOOKS_CLIENT_SECRET in environment")
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:   authURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}, nil
}

// Refresh exchanges a refresh token for a new access/refresh pair.
func Refresh(ctx context.Context, refreshToken string) (access, refresh string, err error) {
	cfg, err := OAuthConfig()
	if err != nil {
		return "", "", err
	}
	tok, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return "", "", fmt.Errorf("token refresh failed: %w", err)
	}
	return tok.AccessToken, tok.RefreshToken, nil
}

// NewAPIClient builds an api.Client for the stored session, wired to refresh
// and persist rotated credentials through the given store on 401.
func NewAPIClient(store config.Store, cfg *config.Config) *api.Client {
	c := api.NewClient(cfg.AccessToken)
	c.SetRefreshFunc(func() (string, error) {
		if cfg.RefreshToken == "" {
			return "", fmt.Errorf("no refresh token available. Run `timebill setup` to re-authenticate")
		}
		access, refresh, err := Refresh(context.Background(), cfg.RefreshToken)
		if err != nil {
			return "", err
		}
		cfg.AccessToken = access
		cfg.RefreshToken = refresh
		if err := store.Save(cfg); err != nil {
			return "", fmt.Errorf("failed to save refreshed tokens: %w", err)
		}
		return access, nil
	})
	return c
}
