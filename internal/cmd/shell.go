package cmd

import (
	"webui-harness/internal/bootstrap"

	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive session",
	Long: `Start one browser session and read steps from stdin, one per line:

  open /login
  type id=user "Alice Smith"
  assert_title Dashboard

Type "help" for the shell commands. The session is released on exit.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	return runApp(cmd.Context(), bootstrap.NewApp())
}
