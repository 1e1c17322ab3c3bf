package bootstrap

import (
	"time"
	"webui-harness/internal/config"
	"webui-harness/internal/console"
	"webui-harness/internal/metrics"
	"webui-harness/internal/ports"
	"webui-harness/internal/usecase"
	"webui-harness/pkg/session"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Start includes waiting for the grid to hand out a browser.
const startTimeout = 2 * time.Minute

// NewApp builds the interactive shell: one session is set up on start and
// every console line runs against it.
func NewApp() *fx.App {
	return fx.New(shellOptions()...)
}

// NewRunApp builds the batch runner for the scenario files named by request. The
// outcome is written to report once the app has shut down.
func NewRunApp(request RunRequest, report *RunReport) *fx.App {
	return fx.New(runOptions(request, report)...)
}

func shellOptions() []fx.Option {
	return append(commonOptions(),
		fx.Provide(console.NewInterface),
		fx.Invoke(runConsole),
	)
}

func runOptions(request RunRequest, report *RunReport) []fx.Option {
	return append(commonOptions(),
		fx.Supply(request, report),
		fx.Invoke(runScenarios),
	)
}

func commonOptions() []fx.Option {
	return []fx.Option{
		fx.Provide(
			config.GetConfig,
			newLogger,
			newDriver,
			metrics.NewObserver,

			fx.Annotate(session.NewManager, fx.As(new(ports.SessionManager))),
			newSessionManagerFactory,

			usecase.NewUsecase,
		),

		fx.Invoke(
			newTraceProvider,
			newMetricsServer,
		),

		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			fxLogger := &fxevent.ZapLogger{Logger: logger.Named("fx")}
			fxLogger.UseLogLevel(zapcore.DebugLevel)

			return fxLogger
		}),

		fx.StartTimeout(startTimeout),
	}
}

func newDriver(config *config.Config, logger *zap.Logger) (session.Client, error) {
	return config.SeleniumConfig.NewClient(logger)
}

func newSessionManagerFactory(client session.Client, logger *zap.Logger, observer session.Observer) ports.SessionManagerFactory {
	return func(hooks session.Hooks) ports.SessionManager {
		return session.NewManager(session.Params{
			Client:   client,
			Logger:   logger,
			Hooks:    hooks,
			Observer: observer,
		})
	}
}
