package appctx

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func testCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("vault", "", "Vault path")
	cmd.Flags().String("state", "", "State database path")
	return cmd
}

func TestBootstrapConfigOnly(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("PEOPLESYNC_STATE_PATH", filepath.Join(tmpDir, "state.db"))

	app, err := Bootstrap(testCmd(), DefaultOptions())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()

	if app.Config == nil {
		t.Error("Config should not be nil")
	}
	if app.Store == nil {
		t.Error("Store should not be nil")
	}
	if app.Vault != nil {
		t.Error("Vault should be nil when NeedsVault is false")
	}
	if app.Auth != nil || app.People != nil {
		t.Error("Auth and People should be nil when NeedsAuth is false")
	}
}

func TestBootstrapForSync(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("PEOPLESYNC_STATE_PATH", filepath.Join(tmpDir, "state.db"))
	t.Setenv("PEOPLESYNC_VAULT_PATH", filepath.Join(tmpDir, "vault"))
	t.Setenv("PEOPLESYNC_CLIENT_ID", "cid")
	t.Setenv("PEOPLESYNC_CLIENT_SECRET", "secret")

	app, err := Bootstrap(testCmd(), ForSync())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()

	if app.Vault == nil || app.Auth == nil || app.People == nil {
		t.Error("sync bootstrap should build vault, auth, and client")
	}
}

func TestBootstrapMissingVaultPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("PEOPLESYNC_STATE_PATH", filepath.Join(tmpDir, "state.db"))

	if _, err := Bootstrap(testCmd(), Options{NeedsVault: true}); err == nil {
		t.Fatal("expected error for missing vault path")
	}
}

func TestBootstrapMissingCredentials(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("PEOPLESYNC_STATE_PATH", filepath.Join(tmpDir, "state.db"))

	if _, err := Bootstrap(testCmd(), Options{NeedsAuth: true}); err == nil {
		t.Fatal("expected error for missing client credentials")
	}
}

func TestBootstrapFlagOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	cmd := testCmd()
	statePath := filepath.Join(tmpDir, "flag-state.db")
	if err := cmd.Flags().Set("state", statePath); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("vault", filepath.Join(tmpDir, "flag-vault")); err != nil {
		t.Fatal(err)
	}

	app, err := Bootstrap(cmd, Options{NeedsVault: true})
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()

	if app.Config.StatePath != statePath {
		t.Errorf("StatePath = %q, want flag override", app.Config.StatePath)
	}
	if app.Store.Path() != statePath {
		t.Errorf("store path = %q, want flag override", app.Store.Path())
	}
}
