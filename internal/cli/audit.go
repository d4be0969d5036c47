package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"peoplesync/internal/audit"
	"peoplesync/internal/cli/appctx"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report notes whose contact no longer exists",
	Long: `Compares the notes in the contacts folder against the remote
account and writes a report listing orphaned notes, i.e. notes whose
stored contact ID matches no remote contact under the configured label.`,
	Args: cobra.NoArgs,
	RunE: appctx.WithApp(appctx.ForSync(), runAudit),
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAudit(app *appctx.App, cmd *cobra.Command, args []string) error {
	token, err := app.Auth.EnsureToken(cmd.Context())
	if err != nil {
		return err
	}

	auditor := audit.New(app.People, app.Vault)
	orphans, err := auditor.Run(cmd.Context(), token, audit.Config{
		Folder:         app.Config.ContactsFolder,
		PropertyPrefix: app.Config.PropertyPrefix,
		SyncLabel:      app.Config.SyncLabel,
	})
	if err != nil {
		return err
	}

	if len(orphans) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No orphaned notes found.")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Found %d orphaned note(s).\n", len(orphans))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", audit.ReportPath)
	return nil
}
