package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"peoplesync/internal/cli/appctx"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored Google token",
	Args:  cobra.NoArgs,
	RunE:  appctx.WithApp(appctx.DefaultOptions(), runLogout),
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(app *appctx.App, cmd *cobra.Command, args []string) error {
	if err := app.Store.ClearToken(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}
