package bootstrap

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
	"webui-harness/internal/config"
	"webui-harness/internal/entity"
	"webui-harness/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

func testConfig() *config.Config {
	return &config.Config{
		AppConfig: &config.AppConfig{LogLevel: "info"},
		SeleniumConfig: &config.SeleniumConfig{
			Host:      "selenium.cosmo",
			Port:      4444,
			Browser:   "*chrome",
			Driver:    "webdriver",
			TimeoutMS: 30000,
		},
	}
}

func TestAppGraphs(t *testing.T) {
	require.NoError(t, fx.ValidateApp(shellOptions()...))
	require.NoError(t, fx.ValidateApp(runOptions(RunRequest{}, &RunReport{})...))
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			conf := testConfig()
			conf.AppConfig.LogLevel = tt.level

			logger, err := newLogger(conf)
			require.NoError(t, err)

			assert.True(t, logger.Core().Enabled(tt.want))
			assert.False(t, logger.Core().Enabled(tt.want-1))
		})
	}

	conf := testConfig()
	conf.AppConfig.LogLevel = "loud"

	_, err := newLogger(conf)
	assert.Error(t, err)
}

func TestNewDriver(t *testing.T) {
	conf := testConfig()

	client, err := newDriver(conf, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.NotNil(t, client)

	conf.SeleniumConfig.Driver = "telnet"
	_, err = newDriver(conf, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestNewTraceProvider(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		lc := fxtest.NewLifecycle(t)

		tp, err := newTraceProvider(lc, testConfig(), zaptest.NewLogger(t))
		require.NoError(t, err)
		assert.Nil(t, tp)
	})

	t.Run("enabled", func(t *testing.T) {
		conf := testConfig()
		conf.AppConfig.TracingEnabled = true
		lc := fxtest.NewLifecycle(t)

		tp, err := newTraceProvider(lc, conf, zaptest.NewLogger(t))
		require.NoError(t, err)
		require.NotNil(t, tp)

		lc.RequireStart()
		lc.RequireStop()
	})
}

func TestMetricsServer(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		srv := newMetricsServer(fxtest.NewLifecycle(t), testConfig(), zaptest.NewLogger(t))
		assert.Nil(t, srv)
		assert.Empty(t, srv.Addr())
	})

	t.Run("serves metrics", func(t *testing.T) {
		conf := testConfig()
		conf.AppConfig.MetricsAddr = "127.0.0.1:0"
		lc := fxtest.NewLifecycle(t)

		srv := newMetricsServer(lc, conf, zaptest.NewLogger(t))
		require.NotNil(t, srv)

		lc.RequireStart()
		defer lc.RequireStop()

		resp, err := http.Get("http://" + srv.Addr() + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "webui_harness_sessions_active")
	})
}

type fakeScenarios struct {
	runs []*entity.Run
	err  error
	got  []entity.Scenario
}

func (f *fakeScenarios) Run(context.Context, entity.Scenario) (*entity.Run, error) {
	return nil, nil
}

func (f *fakeScenarios) RunAll(_ context.Context, scenarios []entity.Scenario, _ int) ([]*entity.Run, error) {
	f.got = scenarios

	return f.runs, f.err
}

type fakeShutdowner struct {
	done chan struct{}
}

func (f *fakeShutdowner) Shutdown(...fx.ShutdownOption) error {
	close(f.done)

	return nil
}

func TestRunScenarios(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smoke.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - open: /\n"), 0o600))

	completed := time.Now()
	scenarios := &fakeScenarios{
		runs: []*entity.Run{{Scenario: "smoke", Status: entity.RunStatusPassed, StartedAt: completed, CompletedAt: &completed}},
	}
	shutdowner := &fakeShutdowner{done: make(chan struct{})}
	report := &RunReport{}

	var out bytes.Buffer

	lc := fxtest.NewLifecycle(t)
	runScenarios(lc, shutdowner, &usecase.Service{Scenarios: scenarios},
		RunRequest{Paths: []string{path}, Parallel: 2, Out: &out}, report, zaptest.NewLogger(t))

	lc.RequireStart()

	select {
	case <-shutdowner.done:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not finish")
	}

	lc.RequireStop()

	require.Len(t, scenarios.got, 1)
	assert.Equal(t, "smoke", scenarios.got[0].Name)
	assert.True(t, report.Passed)
	assert.NoError(t, report.Err)
	assert.Contains(t, out.String(), "PASS smoke")
	assert.Contains(t, out.String(), "1 scenario(s), 1 passed, 0 failed")
}

func TestRunScenarios_ParseFailure(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	runScenarios(lc, &fakeShutdowner{done: make(chan struct{})}, &usecase.Service{Scenarios: &fakeScenarios{}},
		RunRequest{Paths: []string{filepath.Join(t.TempDir(), "missing.yaml")}, Out: io.Discard},
		&RunReport{}, zaptest.NewLogger(t))

	assert.Error(t, lc.Start(context.Background()))
}
