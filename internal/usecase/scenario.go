package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"time"
	"webui-harness/internal/config"
	"webui-harness/internal/entity"
	"webui-harness/internal/metrics"
	"webui-harness/internal/ports"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/logg"
	"webui-harness/pkg/session"
	"webui-harness/pkg/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var _ ports.ScenarioRunner = (*ScenarioService)(nil)

const (
	scenarioServiceName = "ScenarioService"
	scenarioTracer      = "usecase.scenario"
)

// ScenarioService runs scenarios, each inside its own session: set up, the
// steps in order until the first failure, tear down.
type ScenarioService struct {
	config     *config.Config
	logger     *zap.Logger
	tracer     trace.Tracer
	steps      ports.StepExecutor
	newManager ports.SessionManagerFactory
	hooks      session.Hooks
}

type ScenarioServiceParams struct {
	fx.In

	Config   *config.Config
	Logger   *zap.Logger
	Steps    ports.StepExecutor
	Managers ports.SessionManagerFactory
	Hooks    session.Hooks `optional:"true"`
}

func NewScenarioService(params ScenarioServiceParams) *ScenarioService {
	return &ScenarioService{
		config:     params.Config,
		logger:     params.Logger.With(zap.String(logg.Layer, scenarioServiceName)),
		tracer:     otel.Tracer(scenarioTracer),
		steps:      params.Steps,
		newManager: params.Managers,
		hooks:      params.Hooks,
	}
}

// Run executes sc and returns its record. The returned error is the step,
// set up or teardown failure that made the run fail; the record is returned
// in either case.
func (s *ScenarioService) Run(ctx context.Context, sc entity.Scenario) (run *entity.Run, err error) {
	const op = "Run"

	run = &entity.Run{
		ID:        uuid.New(),
		Scenario:  sc.Name,
		Status:    entity.RunStatusRunning,
		StartedAt: time.Now(),
		Steps:     make([]entity.StepRecord, 0, len(sc.Steps)),
	}

	logger := s.logger.With(
		zap.String(logg.Operation, op),
		zap.String(logg.RunID, run.ID.String()),
		zap.String(logg.Scenario, sc.Name),
	)

	ctx, span := tracing.StartSpan(ctx, s.tracer, logger, op,
		attribute.String(logg.RunID, run.ID.String()),
		attribute.String(logg.Scenario, sc.Name),
		attribute.Int("steps", len(sc.Steps)))
	defer func() {
		s.finish(run, err)
		metrics.ObserveRun(string(run.Status), span.Elapsed())
		span.SetAttributes(attribute.String("status", string(run.Status)))
		span.End(err)

		if err != nil {
			logger.Warn("Scenario failed", zap.Error(err))
		} else {
			logger.Info("Scenario passed", zap.Duration("elapsed", span.Elapsed()))
		}
	}()

	sel := s.config.SeleniumConfig
	manager := s.newManager(s.hooks)

	span.AddEvent("setting up session")

	sess, err := manager.SetUp(ctx, sel.Location(), sel.SessionConfig(
		session.WithBrowser(sc.Browser),
		session.WithBaseURL(sc.BaseURL),
		session.WithTimeout(sc.Timeout),
	))
	if err != nil {
		return run, err
	}

	run.SessionID = sess.ID().String()

	defer func() {
		span.AddEvent("tearing down session")

		err = multierr.Append(err, manager.TearDown(ctx, sess))
	}()

	for i, step := range sc.Steps {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return run, apperr.Wrap(op, apperr.CodeInternal, ctxErr, map[string]any{
				apperr.MetaReason: "context_cancelled",
				apperr.MetaStage:  apperr.StageScenario,
				apperr.MetaStep:   i,
			})
		}

		record, stepErr := s.runStep(ctx, sess, run, sc, i, step)
		run.Steps = append(run.Steps, record)

		if stepErr != nil {
			code := apperr.CodeOf(stepErr)
			if code == "" {
				code = apperr.CodeInternal
			}

			return run, apperr.Wrap(op, code, fmt.Errorf("step %d (%s): %w", i+1, record.Description, stepErr), map[string]any{
				apperr.MetaReason: "step_failed",
				apperr.MetaStage:  apperr.StageScenario,
				apperr.MetaStep:   i,
				apperr.MetaLine:   step.Line,
			})
		}
	}

	return run, nil
}

// RunAll runs scenarios with at most parallel of them at a time. Every
// scenario runs to completion regardless of the others; the returned error
// combines all failures and runs keeps the input order.
func (s *ScenarioService) RunAll(ctx context.Context, scenarios []entity.Scenario, parallel int) ([]*entity.Run, error) {
	const op = "RunAll"
	logger := s.logger.With(zap.String(logg.Operation, op))

	if parallel < 1 {
		parallel = 1
	}

	logger.Info("Running scenarios", zap.Int("count", len(scenarios)), zap.Int("parallel", parallel))

	runs := make([]*entity.Run, len(scenarios))
	errs := make([]error, len(scenarios))

	var g errgroup.Group
	g.SetLimit(parallel)

	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			runs[i], errs[i] = s.Run(ctx, sc)

			return nil
		})
	}

	_ = g.Wait()

	return runs, multierr.Combine(errs...)
}

func (s *ScenarioService) runStep(
	ctx context.Context,
	sess *session.Session,
	run *entity.Run,
	sc entity.Scenario,
	index int,
	step entity.Step,
) (entity.StepRecord, error) {
	record := entity.StepRecord{
		ID:          uuid.New(),
		Action:      step.Action,
		Description: describe(step),
		Line:        step.Line,
		Timestamp:   time.Now(),
	}

	result, err := s.steps.Execute(ctx, sess, step)
	record.Elapsed = time.Since(record.Timestamp)

	if err != nil {
		record.Error = err.Error()
		record.Screenshot = s.captureFailure(ctx, sess, run, sc, index)

		return record, err
	}

	record.Success = true
	record.Result = result

	return record, nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// captureFailure saves a screenshot of the page a step failed on and returns
// its path, or "" when screenshots are disabled or capturing failed.
func (s *ScenarioService) captureFailure(ctx context.Context, sess *session.Session, run *entity.Run, sc entity.Scenario, index int) string {
	dir := s.config.SeleniumConfig.ScreenshotDir
	if dir == "" {
		return ""
	}

	name := fmt.Sprintf("%s-%s-step%02d.png", unsafeName.ReplaceAllString(sc.Name, "_"), run.ID.String()[:8], index+1)
	path := filepath.Join(dir, name)

	if err := sess.CaptureScreenshotToFile(ctx, path); err != nil {
		s.logger.Warn("Failed to capture failure screenshot", zap.String(logg.RunID, run.ID.String()), zap.Error(err))

		return ""
	}

	return path
}

func (s *ScenarioService) finish(run *entity.Run, err error) {
	completedAt := time.Now()
	run.CompletedAt = &completedAt

	if err != nil {
		run.Status = entity.RunStatusFailed
		run.Error = err.Error()

		return
	}

	run.Status = entity.RunStatusPassed
}
