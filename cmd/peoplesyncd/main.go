package main

import (
	"flag"
	"fmt"
	"os"

	"peoplesync/internal/cli"
)

func main() {
	interval := flag.Duration("interval", 0, "Time between syncs (defaults to config sync_interval_minutes)")
	syncOnStartup := flag.Bool("sync-on-startup", false, "Run a sync immediately before the first tick")
	vaultPath := flag.String("vault", "", "Vault path override (defaults to config)")
	statePath := flag.String("state", "", "State database path override (defaults to config)")
	flag.Parse()

	opts := cli.DaemonOptions{
		Interval:      *interval,
		SyncOnStartup: *syncOnStartup,
		VaultPath:     *vaultPath,
		StatePath:     *statePath,
	}

	if err := cli.ServeDaemon(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
