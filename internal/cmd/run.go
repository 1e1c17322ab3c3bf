package cmd

import (
	"webui-harness/internal/bootstrap"

	"github.com/spf13/cobra"
)

var runParallel int

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>...",
	Short: "Run scenario files",
	Long: `Run every scenario in the given YAML files. Each scenario gets a session
of its own; a scenario stops at its first failing step, and a screenshot of
the page is saved to SELENIUM_SCREENSHOT_DIR.

The command exits non-zero when any scenario fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVarP(&runParallel, "parallel", "p", 1, "number of scenarios to run at once")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	report := &bootstrap.RunReport{}
	app := bootstrap.NewRunApp(bootstrap.RunRequest{
		Paths:    args,
		Parallel: runParallel,
		Out:      cmd.OutOrStdout(),
	}, report)

	if err := runApp(cmd.Context(), app); err != nil {
		return err
	}

	if !report.Passed {
		return errScenariosFailed
	}

	return nil
}
