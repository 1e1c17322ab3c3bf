package bootstrap

import (
	"context"
	"io"
	"webui-harness/internal/console"
	"webui-harness/internal/entity"
	"webui-harness/internal/scenario"
	"webui-harness/internal/usecase"
	"webui-harness/pkg/apperr"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// RunRequest names the scenario files of a batch run.
type RunRequest struct {
	Paths    []string
	Parallel int
	Out      io.Writer
}

// RunReport is filled in when a batch run ends.
type RunReport struct {
	Runs   []*entity.Run
	Passed bool
	Err    error
}

func runScenarios(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	uc *usecase.Service,
	request RunRequest,
	report *RunReport,
	logger *zap.Logger,
) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			scenarios, err := scenario.ParseFiles(request.Paths...)
			if err != nil {
				logger.Error("Failed to parse scenarios", zap.Error(err))

				return err
			}

			logger.Info("Running scenarios",
				zap.Int("scenarios", len(scenarios)),
				zap.Int("parallel", request.Parallel),
			)

			go func() {
				defer close(done)

				runs, err := uc.Scenarios.RunAll(ctx, scenarios, request.Parallel)

				for _, run := range runs {
					console.PrintRun(request.Out, run)
				}

				report.Runs = runs
				report.Err = err
				report.Passed = console.PrintSummary(request.Out, runs) && err == nil

				code := 0
				if !report.Passed {
					code = 1
				}

				if err := shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
					logger.Error("Failed to request shutdown", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()

			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return apperr.WrapWithReason("bootstrap.runScenarios", apperr.CodeTimeout, stopCtx.Err(), "shutdown_timeout")
			}
		},
	})
}
