// Package appctx provides a shared bootstrap helper for CLI commands.
// It centralizes config loading, state-store opening, and construction
// of the vault, auth manager, and remote client to reduce boilerplate
// across commands.
package appctx

import (
	"fmt"

	"github.com/spf13/cobra"

	"peoplesync/internal/auth"
	"peoplesync/internal/config"
	"peoplesync/internal/people"
	"peoplesync/internal/state"
	"peoplesync/internal/vault"
)

// App holds the shared application context for commands.
type App struct {
	// Config is the loaded configuration
	Config *config.Config

	// Store is the opened state database
	Store *state.Store

	// Vault is the note vault (nil if NeedsVault is false)
	Vault *vault.Vault

	// Auth drives the OAuth flow (nil if NeedsAuth is false)
	Auth *auth.Manager

	// People is the remote contacts client (nil if NeedsAuth is false)
	People *people.Client
}

// Close releases resources held by the App.
// Safe to call multiple times.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
		a.Store = nil
	}
}

// Options configures the bootstrap behavior.
type Options struct {
	// NeedsVault indicates whether to open the note vault. Requires
	// vault_path to be configured.
	NeedsVault bool

	// NeedsAuth indicates whether to build the auth manager and remote
	// client. Requires client credentials to be configured.
	NeedsAuth bool
}

// DefaultOptions returns default options (config and state only).
func DefaultOptions() Options {
	return Options{}
}

// ForSync returns options that require the vault and the remote side.
func ForSync() Options {
	return Options{NeedsVault: true, NeedsAuth: true}
}

// RunFunc is the signature for command run functions.
type RunFunc func(app *App, cmd *cobra.Command, args []string) error

// WithApp wraps a command's run function with shared bootstrap logic.
// The state store is closed automatically when the wrapped function
// returns.
func WithApp(opts Options, fn RunFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := Bootstrap(cmd, opts)
		if err != nil {
			return err
		}
		defer app.Close()

		return fn(app, cmd, args)
	}
}

// Bootstrap initializes the App according to the given options.
// Callers are responsible for calling App.Close() when done.
func Bootstrap(cmd *cobra.Command, opts Options) (*App, error) {
	app := &App{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Override paths from global flags if provided
	if vaultFlag := cmd.Flag("vault"); vaultFlag != nil {
		if vaultPath := vaultFlag.Value.String(); vaultPath != "" {
			app.Config.VaultPath = vaultPath
		}
	}
	if stateFlag := cmd.Flag("state"); stateFlag != nil {
		if statePath := stateFlag.Value.String(); statePath != "" {
			app.Config.StatePath = statePath
		}
	}

	store, err := state.Open(app.Config.StatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	app.Store = store

	if opts.NeedsVault {
		if app.Config.VaultPath == "" {
			app.Close()
			return nil, fmt.Errorf("vault_path is not configured (set PEOPLESYNC_VAULT_PATH or use --vault)")
		}
		app.Vault = vault.New(app.Config.VaultPath)
	}

	if opts.NeedsAuth {
		if app.Config.ClientID == "" || app.Config.ClientSecret == "" {
			app.Close()
			return nil, fmt.Errorf("client_id and client_secret must be configured")
		}
		app.Auth = auth.NewManager(app.Config.ClientID, app.Config.ClientSecret, app.Store)
		app.People = people.NewClient()
	}

	return app, nil
}
