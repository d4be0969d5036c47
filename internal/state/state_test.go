package state

import (
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTokenRoundTrip(t *testing.T) {
	s := openStore(t)

	tok, err := s.Token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if tok != nil {
		t.Fatalf("token = %+v, want nil before save", tok)
	}

	want := &oauth2.Token{
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
		TokenType:    "Bearer",
		Expiry:       time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := s.SaveToken(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if got.AccessToken != want.AccessToken || got.RefreshToken != want.RefreshToken {
		t.Errorf("token = %+v, want %+v", got, want)
	}
	if !got.Expiry.Equal(want.Expiry) {
		t.Errorf("expiry = %v, want %v", got.Expiry, want.Expiry)
	}
}

func TestSaveTokenReplaces(t *testing.T) {
	s := openStore(t)

	if err := s.SaveToken(&oauth2.Token{AccessToken: "old"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveToken(&oauth2.Token{AccessToken: "new", RefreshToken: "rt"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if got.AccessToken != "new" || got.RefreshToken != "rt" {
		t.Errorf("token = %+v, want replaced values", got)
	}
}

func TestClearToken(t *testing.T) {
	s := openStore(t)

	if err := s.SaveToken(&oauth2.Token{AccessToken: "at"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.ClearToken(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	got, err := s.Token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if got != nil {
		t.Errorf("token = %+v, want nil after clear", got)
	}
}

func TestLastSyncRoundTrip(t *testing.T) {
	s := openStore(t)

	got, err := s.LastSync()
	if err != nil {
		t.Fatalf("last sync: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("last sync = %v, want zero before any sync", got)
	}

	want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := s.SetLastSync(want); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err = s.LastSync()
	if err != nil {
		t.Fatalf("last sync: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("last sync = %v, want %v", got, want)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SetLastSync(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	// Reopening reapplies migrations without clobbering data.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.LastSync()
	if err != nil {
		t.Fatalf("last sync: %v", err)
	}
	if got.IsZero() {
		t.Error("last sync lost across reopen")
	}
}
