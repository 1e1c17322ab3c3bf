package cmd

import (
	"fmt"
	"webui-harness/internal/scenario"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scenario.yaml>...",
	Short: "Check scenario files without running them",
	Long:  `Parse the given scenario files and check every step's action and arguments. No session is started.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	scenarios, err := scenario.ParseFiles(args...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	for _, sc := range scenarios {
		fmt.Fprintf(out, "%s: %d step(s)\n", sc.Name, len(sc.Steps))
	}

	fmt.Fprintf(out, "%d scenario(s) OK\n", len(scenarios))

	return nil
}
