package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"peoplesync/internal/cli/appctx"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show login state and sync configuration",
	Args:  cobra.NoArgs,
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runStatus),
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(app *appctx.App, cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg := app.Config

	tok, err := app.Store.Token()
	if err != nil {
		return err
	}
	switch {
	case tok == nil:
		fmt.Fprintln(out, "Login:       not logged in")
	case tok.Valid():
		fmt.Fprintln(out, "Login:       logged in")
	default:
		fmt.Fprintln(out, "Login:       logged in (token expired, will refresh)")
	}

	lastSync, err := app.Store.LastSync()
	if err != nil {
		return err
	}
	if lastSync.IsZero() {
		fmt.Fprintln(out, "Last sync:   never")
	} else {
		fmt.Fprintf(out, "Last sync:   %s\n", lastSync.Local().Format(time.RFC3339))
	}

	fmt.Fprintf(out, "Vault:       %s\n", cfg.VaultPath)
	fmt.Fprintf(out, "Folder:      %s\n", cfg.ContactsFolder)
	fmt.Fprintf(out, "Convention:  %s\n", cfg.Convention)
	if cfg.SyncLabel != "" {
		fmt.Fprintf(out, "Sync label:  %s\n", cfg.SyncLabel)
	}
	if cfg.SyncIntervalMinutes > 0 {
		fmt.Fprintf(out, "Interval:    %dm\n", cfg.SyncIntervalMinutes)
	}
	fmt.Fprintf(out, "State:       %s\n", app.Store.Path())
	return nil
}
