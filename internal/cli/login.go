package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"peoplesync/internal/cli/appctx"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize access to the Google account",
	Long: `Prints the Google authorization URL, then prompts for the code
Google displays after you approve access. The resulting token is stored
in the state database and refreshed automatically on later runs.

Examples:
  peoplesync login
  peoplesync login --code 4/0AX4XfW...
`,
	Args: cobra.NoArgs,
	RunE: appctx.WithApp(appctx.Options{NeedsAuth: true}, runLogin),
}

var loginCode string

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginCode, "code", "", "Authorization code (skips the prompt)")
}

func runLogin(app *appctx.App, cmd *cobra.Command, args []string) error {
	code := loginCode
	if code == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Visit this URL to authorize access:\n\n  %s\n\n", app.Auth.LoginURL())
		fmt.Fprint(cmd.OutOrStdout(), "Paste the authorization code: ")

		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read authorization code: %w", err)
		}
		code = strings.TrimSpace(line)
	}
	if code == "" {
		return fmt.Errorf("no authorization code provided")
	}

	if err := app.Auth.Exchange(cmd.Context(), code); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged in.")
	return nil
}
