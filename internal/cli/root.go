package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "peoplesync",
	Short: "Sync Google Contacts into a folder of markdown notes",
	Long: `peoplesync mirrors a Google Contacts account into a folder of
markdown notes. Contact data lands in each note's frontmatter while the
note body stays untouched, so the notes remain yours to edit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("vault", "", "Path to the note vault (overrides PEOPLESYNC_VAULT_PATH)")
	rootCmd.PersistentFlags().String("state", "", "Path to the state database (overrides PEOPLESYNC_STATE_PATH)")
}
