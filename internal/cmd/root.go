package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"webui-harness/pkg/driver"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var rootCmd = &cobra.Command{
	Use:   "webui-harness",
	Short: "Drive browser sessions from scenario files or an interactive shell",
	Long: `webui-harness starts remote browser sessions on a Selenium grid (or a
Playwright or Chrome DevTools endpoint) and runs steps against them: from
YAML scenario files with "run", or one line at a time with "shell".

Configuration is read from the environment (SELENIUM_HOST, SELENIUM_PORT,
SELENIUM_BROWSER, ...) and an optional .env file in the working directory.`,
	SilenceUsage:      true,
	PersistentPreRunE: applyGlobalFlags,
}

var globalFlags struct {
	envFile string
	driver  string
	browser string
	baseURL string
}

// flagEnv maps a global flag to the environment variable it overrides.
var flagEnv = map[string]string{
	"driver":   "SELENIUM_DRIVER",
	"browser":  "SELENIUM_BROWSER",
	"base-url": "SELENIUM_BASE_URL",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalFlags.envFile, "env-file", "", "load environment variables from this file first")
	flags.StringVar(&globalFlags.driver, "driver", driver.WebDriver, fmt.Sprintf("session driver %v", driver.Names()))
	flags.StringVar(&globalFlags.browser, "browser", "", "browser string, e.g. *chrome or *firefox")
	flags.StringVar(&globalFlags.baseURL, "base-url", "", "base URL relative locations are resolved against")
}

func applyGlobalFlags(cmd *cobra.Command, _ []string) error {
	if globalFlags.envFile != "" {
		if err := godotenv.Load(globalFlags.envFile); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}

	for name, key := range flagEnv {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}

		if err := os.Setenv(key, flag.Value.String()); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// runApp starts app, waits for it to shut down (on its own or on a signal)
// and stops it.
func runApp(ctx context.Context, app *fx.App) error {
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()

	if err := app.Start(startCtx); err != nil {
		return err
	}

	<-app.Wait()

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()

	return app.Stop(stopCtx)
}

var errScenariosFailed = errors.New("one or more scenarios failed")
