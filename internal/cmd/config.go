package cmd

import (
	"fmt"
	"webui-harness/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Long:  `Read and validate the configuration the way "run" and "shell" do, and print it as YAML. Secrets are masked.`,
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	conf, err := config.GetConfig()
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(conf.Redacted())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(out)

	return err
}
