// Package auth manages the Google OAuth flow: authorization URL,
// code exchange, and refresh-backed token access, persisted through the
// state store.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

// Out-of-band redirect: the user pastes the code shown by Google back
// into the CLI instead of running a local callback server.
const redirectURI = "urn:ietf:wg:oauth:2.0:oob"

var scopes = []string{
	"https://www.googleapis.com/auth/contacts.readonly",
	"https://www.googleapis.com/auth/contacts.other.readonly",
}

// googleEndpoint is spelled out here so the module does not need the
// provider-specific oauth2 subpackages.
var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

// ErrNotLoggedIn reports that no token has been stored yet.
var ErrNotLoggedIn = errors.New("not logged in, run 'peoplesync login' first")

// TokenStore is the persistence surface the manager needs.
// *state.Store satisfies it.
type TokenStore interface {
	Token() (*oauth2.Token, error)
	SaveToken(*oauth2.Token) error
}

// Manager drives the OAuth flow for one client-ID/secret pair.
type Manager struct {
	config *oauth2.Config
	store  TokenStore
}

// NewManager creates a manager for the given OAuth client credentials.
func NewManager(clientID, clientSecret string, store TokenStore) *Manager {
	return &Manager{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     googleEndpoint,
			RedirectURL:  redirectURI,
			Scopes:       scopes,
		},
		store: store,
	}
}

// LoginURL returns the authorization URL the user must visit.
func (m *Manager) LoginURL() string {
	return m.config.AuthCodeURL("", oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token and persists it.
func (m *Manager) Exchange(ctx context.Context, code string) error {
	tok, err := m.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	if err := m.store.SaveToken(tok); err != nil {
		return err
	}
	return nil
}

// EnsureToken returns a valid access token, refreshing and re-persisting
// it when the stored one has expired.
func (m *Manager) EnsureToken(ctx context.Context) (string, error) {
	stored, err := m.store.Token()
	if err != nil {
		return "", err
	}
	if stored == nil {
		return "", ErrNotLoggedIn
	}
	if stored.Valid() {
		return stored.AccessToken, nil
	}

	refreshed, err := m.config.TokenSource(ctx, stored).Token()
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}
	// The refresh response usually omits the refresh token; keep the one
	// we already have.
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = stored.RefreshToken
	}
	if refreshed.AccessToken != stored.AccessToken {
		if err := m.store.SaveToken(refreshed); err != nil {
			return "", err
		}
	}
	return refreshed.AccessToken, nil
}
