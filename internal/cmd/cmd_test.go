package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	resetFlags(root)

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()

	return buf.String(), err
}

// resetFlags puts every flag back to its default, since the command tree is
// shared between tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}

	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)

	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "webui-harness", rootCmd.Use)

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"run", "shell", "config", "validate"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestConfigCommand(t *testing.T) {
	t.Setenv("SELENIUM_HOST", "grid.internal")
	t.Setenv("SELENIUM_PORT", "5555")
	t.Setenv("SELENIUM_BASIC_AUTH_USER", "ci")
	t.Setenv("SELENIUM_BASIC_AUTH_PASSWORD", "hunter2")

	out, err := executeCommand(rootCmd, "config")
	require.NoError(t, err)

	var printed struct {
		Selenium map[string]any `yaml:"selenium"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &printed))

	assert.Equal(t, "grid.internal", printed.Selenium["selenium_host"])
	assert.Equal(t, 5555, printed.Selenium["selenium_port"])
	assert.Equal(t, "ci", printed.Selenium["selenium_basic_auth_user"])
	assert.NotContains(t, out, "hunter2")
}

func TestConfigCommand_FlagOverrides(t *testing.T) {
	t.Setenv("SELENIUM_BROWSER", "*chrome")
	t.Setenv("SELENIUM_DRIVER", "webdriver")

	out, err := executeCommand(rootCmd, "config", "--browser", "*firefox", "--driver", "cdp")
	require.NoError(t, err)

	var printed struct {
		Selenium map[string]any `yaml:"selenium"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &printed))

	assert.Equal(t, "*firefox", printed.Selenium["selenium_browser"])
	assert.Equal(t, "cdp", printed.Selenium["selenium_driver"])
}

func TestConfigCommand_EnvFile(t *testing.T) {
	t.Setenv("SELENIUM_HOST", "")
	require.NoError(t, os.Unsetenv("SELENIUM_HOST"))

	path := writeFile(t, "grid.env", "SELENIUM_HOST=from-file.internal\n")

	out, err := executeCommand(rootCmd, "config", "--env-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "selenium_host: from-file.internal")
}

func TestConfigCommand_Invalid(t *testing.T) {
	t.Setenv("SELENIUM_DRIVER", "telnet")

	_, err := executeCommand(rootCmd, "config", "--driver", "telnet")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	path := writeFile(t, "login.yaml", `
name: login
steps:
  - open: /login
  - type: [id=user, alice]
  - assert_title: Dashboard
---
steps:
  - refresh
`)

	out, err := executeCommand(rootCmd, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "login: 3 step(s)")
	assert.Contains(t, out, "login#2: 1 step(s)")
	assert.Contains(t, out, "2 scenario(s) OK")
}

func TestValidateCommand_Invalid(t *testing.T) {
	path := writeFile(t, "broken.yaml", `
steps:
  - hover: id=menu
`)

	_, err := executeCommand(rootCmd, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown action "hover"`)
}

func TestRunCommand_RequiresFiles(t *testing.T) {
	_, err := executeCommand(rootCmd, "run")
	assert.Error(t, err)
}
