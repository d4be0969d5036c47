package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

type memStore struct {
	tok *oauth2.Token
}

func (s *memStore) Token() (*oauth2.Token, error)   { return s.tok, nil }
func (s *memStore) SaveToken(t *oauth2.Token) error { s.tok = t; return nil }

func tokenServer(t *testing.T, response string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginURL(t *testing.T) {
	m := NewManager("client-1", "secret", &memStore{})
	u := m.LoginURL()

	for _, part := range []string{
		"accounts.google.com",
		"client_id=client-1",
		"urn%3Aietf%3Awg%3Aoauth%3A2.0%3Aoob",
		"contacts.readonly",
	} {
		if !strings.Contains(u, part) {
			t.Errorf("login URL %q missing %q", u, part)
		}
	}
}

func TestEnsureTokenNotLoggedIn(t *testing.T) {
	m := NewManager("c", "s", &memStore{})
	if _, err := m.EnsureToken(context.Background()); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("err = %v, want ErrNotLoggedIn", err)
	}
}

func TestEnsureTokenValidTokenPassesThrough(t *testing.T) {
	store := &memStore{tok: &oauth2.Token{
		AccessToken: "at-valid",
		Expiry:      time.Now().Add(time.Hour),
	}}
	m := NewManager("c", "s", store)

	got, err := m.EnsureToken(context.Background())
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if got != "at-valid" {
		t.Errorf("token = %q, want stored access token", got)
	}
}

func TestEnsureTokenRefreshesExpired(t *testing.T) {
	srv := tokenServer(t, `{"access_token":"at-new","token_type":"Bearer","expires_in":3600}`)

	store := &memStore{tok: &oauth2.Token{
		AccessToken:  "at-old",
		RefreshToken: "rt-1",
		Expiry:       time.Now().Add(-time.Hour),
	}}
	m := NewManager("c", "s", store)
	m.config.Endpoint = oauth2.Endpoint{TokenURL: srv.URL}

	got, err := m.EnsureToken(context.Background())
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if got != "at-new" {
		t.Errorf("token = %q, want refreshed", got)
	}
	if store.tok.AccessToken != "at-new" {
		t.Errorf("stored token = %q, want refreshed token persisted", store.tok.AccessToken)
	}
	if store.tok.RefreshToken != "rt-1" {
		t.Errorf("refresh token = %q, want prior one retained", store.tok.RefreshToken)
	}
}

func TestEnsureTokenNoRefreshToken(t *testing.T) {
	store := &memStore{tok: &oauth2.Token{
		AccessToken: "at-old",
		Expiry:      time.Now().Add(-time.Hour),
	}}
	m := NewManager("c", "s", store)

	if _, err := m.EnsureToken(context.Background()); err == nil {
		t.Fatal("expected error refreshing without a refresh token")
	}
}

func TestExchangePersistsToken(t *testing.T) {
	srv := tokenServer(t, `{"access_token":"at-1","refresh_token":"rt-1","token_type":"Bearer","expires_in":3600}`)

	store := &memStore{}
	m := NewManager("c", "s", store)
	m.config.Endpoint = oauth2.Endpoint{TokenURL: srv.URL}

	if err := m.Exchange(context.Background(), "auth-code"); err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if store.tok == nil || store.tok.AccessToken != "at-1" || store.tok.RefreshToken != "rt-1" {
		t.Errorf("stored token = %+v, want exchanged token", store.tok)
	}
}
