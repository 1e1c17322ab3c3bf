package scenario_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"webui-harness/internal/entity"
	"webui-harness/internal/scenario"
	"webui-harness/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginScenario = `
name: login
browser: "*firefox"
base_url: https://example.test/
timeout: 10s
steps:
  - open: /login
  - type: [id=user, alice]
  - type: [id=password, "s3cret pass"]
  - submit_and_wait: id=login-form
  - assert_title: Dashboard
  - wait_for_page_to_load: 2500
  - delete_all_cookies
  - screenshot:
`

func TestParse(t *testing.T) {
	scenarios, err := scenario.Parse(strings.NewReader(loginScenario), "login.yaml")
	require.NoError(t, err)
	require.Len(t, scenarios, 1)

	sc := scenarios[0]
	assert.Equal(t, "login", sc.Name)
	assert.Equal(t, "*firefox", sc.Browser)
	assert.Equal(t, "https://example.test/", sc.BaseURL)
	assert.Equal(t, 10*time.Second, sc.Timeout)

	want := []entity.Step{
		{Action: entity.ActionTypeOpen, Args: []string{"/login"}, Line: 7},
		{Action: entity.ActionTypeType, Args: []string{"id=user", "alice"}, Line: 8},
		{Action: entity.ActionTypeType, Args: []string{"id=password", "s3cret pass"}, Line: 9},
		{Action: entity.ActionTypeSubmitAndWait, Args: []string{"id=login-form"}, Line: 10},
		{Action: entity.ActionTypeAssertTitle, Args: []string{"Dashboard"}, Line: 11},
		{Action: entity.ActionTypeWaitForPageToLoad, Args: []string{"2500"}, Line: 12},
		{Action: entity.ActionTypeDeleteAllCookies, Line: 13},
		{Action: entity.ActionTypeScreenshot, Line: 14},
	}
	assert.Equal(t, want, sc.Steps)
}

func TestParse_MultipleDocuments(t *testing.T) {
	src := `
steps:
  - open: /
---
name: second
timeout: 1500
steps:
  - refresh
`

	scenarios, err := scenario.Parse(strings.NewReader(src), "suite/smoke.yml")
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	assert.Equal(t, "smoke", scenarios[0].Name)
	assert.Zero(t, scenarios[0].Timeout)
	assert.Equal(t, "second", scenarios[1].Name)
	assert.Equal(t, 1500*time.Millisecond, scenarios[1].Timeout)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		field   string
		message string
	}{
		{
			name:    "unknown action",
			src:     "steps:\n  - hover: id=menu\n",
			field:   "steps[0]",
			message: `unknown action "hover"`,
		},
		{
			name:    "wrong arity",
			src:     "steps:\n  - open: /\n  - type: id=user\n",
			field:   "steps[1]",
			message: "type takes 2 argument(s), got 1",
		},
		{
			name:    "two actions in one step",
			src:     "steps:\n  - {open: /, refresh: ~}\n",
			field:   "steps[0]",
			message: "exactly one action",
		},
		{
			name:    "bad timeout",
			src:     "timeout: soon\nsteps:\n  - refresh\n",
			field:   "timeout",
			message: `invalid timeout "soon"`,
		},
		{
			name:    "no steps",
			src:     "name: empty\n",
			field:   "steps",
			message: "has no steps",
		},
		{
			name:    "unknown field",
			src:     "name: x\nbrowsers: [a]\nsteps:\n  - refresh\n",
			field:   "bad.yaml",
			message: "browsers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scenario.Parse(strings.NewReader(tt.src), "bad.yaml")
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
			assert.Contains(t, err.Error(), tt.message)

			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.field, appErr.Metadata[apperr.MetaField])
		})
	}
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "login.yaml")
	require.NoError(t, os.WriteFile(path, []byte(loginScenario), 0o644))

	scenarios, err := scenario.ParseFiles(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, path, scenarios[0].Source)

	_, err = scenario.ParseFiles(filepath.Join(dir, "missing.yaml"))
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want entity.Step
	}{
		{line: "open /login", want: entity.Step{Action: entity.ActionTypeOpen, Args: []string{"/login"}}},
		{line: `type id=user "Alice Smith"`, want: entity.Step{Action: entity.ActionTypeType, Args: []string{"id=user", "Alice Smith"}}},
		{line: `TYPE name=q 'say "hi"'`, want: entity.Step{Action: entity.ActionTypeType, Args: []string{"name=q", `say "hi"`}}},
		{line: `eval document.title\ +\ 1`, want: entity.Step{Action: entity.ActionTypeEval, Args: []string{"document.title + 1"}}},
		{line: "  refresh  ", want: entity.Step{Action: entity.ActionTypeRefresh}},
		{line: `select_window ""`, want: entity.Step{Action: entity.ActionTypeSelectWindow, Args: []string{""}}},
		{line: `click "css=ul > li:first-child"`, want: entity.Step{Action: entity.ActionTypeClick, Args: []string{"css=ul > li:first-child"}}},
		{line: `eval 'a && b'`, want: entity.Step{Action: entity.ActionTypeEval, Args: []string{"a && b"}}},
		{line: "open\t/home", want: entity.Step{Action: entity.ActionTypeOpen, Args: []string{"/home"}}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			step, err := scenario.ParseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, step)
		})
	}
}

func TestParseLine_Invalid(t *testing.T) {
	for _, line := range []string{
		"",
		"   ",
		`type id=user "unterminated`,
		`type id=user 'unterminated`,
		"click",
		"fly away",
		"click css=ul > li",
		"eval a; b",
	} {
		t.Run(line, func(t *testing.T) {
			_, err := scenario.ParseLine(line)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
		})
	}
}
