package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	stdsync "sync"
	"syscall"
	"time"

	"peoplesync/internal/auth"
	"peoplesync/internal/cli/appctx"
	"peoplesync/internal/config"
	"peoplesync/internal/people"
	"peoplesync/internal/state"
	"peoplesync/internal/vault"
)

// DaemonOptions configures the peoplesyncd daemon.
type DaemonOptions struct {
	// Interval between sync passes. Zero falls back to the configured
	// sync_interval_minutes.
	Interval time.Duration

	// SyncOnStartup forces an immediate pass before the first tick.
	SyncOnStartup bool

	VaultPath string
	StatePath string
}

// ServeDaemon runs periodic syncs until interrupted.
func ServeDaemon(opts DaemonOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.VaultPath != "" {
		cfg.VaultPath = opts.VaultPath
	}
	if opts.StatePath != "" {
		cfg.StatePath = opts.StatePath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	interval := opts.Interval
	if interval == 0 && cfg.SyncIntervalMinutes > 0 {
		interval = time.Duration(cfg.SyncIntervalMinutes) * time.Minute
	}
	if interval <= 0 {
		return fmt.Errorf("no sync interval configured (set sync_interval_minutes or use -interval)")
	}

	store, err := state.Open(cfg.StatePath)
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}
	defer store.Close()

	app := &appctx.App{
		Config: cfg,
		Store:  store,
		Vault:  vault.New(cfg.VaultPath),
		Auth:   auth.NewManager(cfg.ClientID, cfg.ClientSecret, store),
		People: people.NewClient(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &syncRunner{app: app}
	log.Printf("peoplesyncd: syncing every %s into %s/%s", interval, cfg.VaultPath, cfg.ContactsFolder)

	if opts.SyncOnStartup || cfg.SyncOnStartup {
		runner.run(ctx)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("peoplesyncd: shutting down")
			return nil
		case <-ticker.C:
			lastSync, err := store.LastSync()
			if err != nil {
				log.Printf("peoplesyncd: %v", err)
				continue
			}
			if !shouldSyncNow(lastSync, interval, time.Now()) {
				continue
			}
			runner.run(ctx)
		}
	}
}

// syncRunner serializes sync passes. A tick that fires while a pass is
// still running is skipped rather than queued.
type syncRunner struct {
	mu  stdsync.Mutex
	app *appctx.App
}

func (r *syncRunner) run(ctx context.Context) {
	if !r.mu.TryLock() {
		log.Printf("peoplesyncd: previous sync still running, skipping")
		return
	}
	defer r.mu.Unlock()

	stats, err := syncOnce(ctx, r.app, false, os.Stdout)
	if err != nil {
		log.Printf("peoplesyncd: sync failed: %v", err)
		return
	}
	log.Printf("peoplesyncd: synced %d contact(s) (%d created, %d updated, %d renamed, %d skipped)",
		stats.Created+stats.Updated, stats.Created, stats.Updated, stats.Renamed, stats.Skipped)
}

// shouldSyncNow reports whether enough time has passed since the last
// completed sync. A sync that has never run always qualifies.
func shouldSyncNow(lastSync time.Time, interval time.Duration, now time.Time) bool {
	if lastSync.IsZero() {
		return true
	}
	return now.Sub(lastSync) >= interval
}
