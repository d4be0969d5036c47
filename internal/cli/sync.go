package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"peoplesync/internal/cli/appctx"
	"peoplesync/internal/format"
	"peoplesync/internal/sync"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync contacts into the vault",
	Long: `Fetches the full contact list and reconciles it into the contacts
folder: new contacts get a note, existing notes get refreshed frontmatter,
and note bodies are never touched.

Examples:
  peoplesync sync
  peoplesync sync --dry-run
`,
	Args: cobra.NoArgs,
	RunE: appctx.WithApp(appctx.ForSync(), runSync),
}

var syncDryRun bool

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Show what would change without writing")
}

func runSync(app *appctx.App, cmd *cobra.Command, args []string) error {
	stats, err := syncOnce(cmd.Context(), app, syncDryRun, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	verb := "Synced"
	if syncDryRun {
		verb = "Would sync"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d contact(s): %d created, %d updated, %d renamed, %d skipped\n",
		verb, stats.Created+stats.Updated, stats.Created, stats.Updated, stats.Renamed, stats.Skipped)
	return nil
}

// writerConfig maps the application settings onto one sync pass.
func writerConfig(app *appctx.App) sync.Config {
	cfg := app.Config
	return sync.Config{
		Folder:         cfg.ContactsFolder,
		FilePrefix:     cfg.FileNamePrefix,
		PropertyPrefix: cfg.PropertyPrefix,
		SyncLabel:      cfg.SyncLabel,
		Convention:     format.ParseConvention(cfg.Convention),
		NoteBody:       cfg.NoteTemplate,
		OrgAsLink:      cfg.OrganizationAsLink,
		RelationAsLink: cfg.RelationAsLink,
		TrackSyncTime:  cfg.TrackSyncTime,
		RenameFiles:    cfg.RenameFiles,
		LastNameFirst:  cfg.LastNameFirst,
	}
}

// syncOnce runs a single reconciliation pass. The daemon shares it with
// the sync command.
func syncOnce(ctx context.Context, app *appctx.App, dryRun bool, out io.Writer) (*sync.Stats, error) {
	token, err := app.Auth.EnsureToken(ctx)
	if err != nil {
		return nil, err
	}

	labelMap, err := app.People.FetchGroups(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contact groups: %w", err)
	}
	contacts, err := app.People.FetchContacts(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}

	writer := sync.NewNoteWriter(app.Vault)
	if dryRun {
		writer.DryRun = true
		writer.DiffOut = out
	}

	stats, err := writer.WriteNotesForContacts(ctx, writerConfig(app), labelMap, contacts)
	if err != nil {
		return nil, err
	}

	if !dryRun {
		if err := app.Store.SetLastSync(time.Now()); err != nil {
			return nil, err
		}
	}
	return stats, nil
}
