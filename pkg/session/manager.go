package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/logg"
	"webui-harness/pkg/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	managerName   = "SessionManager"
	managerTracer = "session.manager"
)

// Manager wraps one test at a time with the session lifecycle: before-start
// hook, start, timeout, after-start hook, and on teardown before-stop hook,
// stop, after-stop hook. Every successful start is stopped exactly once.
type Manager struct {
	client Client
	hooks  Hooks
	logger *zap.Logger
	tracer trace.Tracer

	observer Observer

	mu       sync.Mutex
	active   *Session
	starting bool
}

type Params struct {
	fx.In

	Client   Client
	Logger   *zap.Logger
	Hooks    Hooks    `optional:"true"`
	Observer Observer `optional:"true"`
}

func NewManager(params Params) *Manager {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	observer := params.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	return &Manager{
		client:   params.Client,
		hooks:    params.Hooks,
		logger:   logger.With(zap.String(logg.Layer, managerName)),
		tracer:   otel.Tracer(managerTracer),
		observer: observer,
	}
}

// SetUp starts a session at location configured by config. A failed start is
// reported as apperr.CodeSessionStart and is not retried; in that case the
// after-start hook does not run but the after-stop hook does. If configuring
// an already started session fails, the session is torn down before SetUp
// returns. The manager's lock is not held while hooks run, so a hook may call
// TearDown.
func (m *Manager) SetUp(ctx context.Context, location ServerLocation, config SessionConfig) (_ *Session, err error) {
	const op = "SetUp"
	logger := m.logger.With(
		zap.String(logg.Operation, op),
		zap.String(logg.Host, location.Host),
		zap.Int(logg.Port, location.Port),
		zap.String(logg.Browser, config.Browser),
	)

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op,
		attribute.String(logg.Host, location.Host),
		attribute.Int(logg.Port, location.Port),
		attribute.String(logg.Browser, config.Browser))
	defer func() {
		step.End(err)
	}()

	if err := location.Validate(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := m.reserve(op); err != nil {
		return nil, err
	}
	defer m.unreserve()

	step.AddEvent("before session start")

	if err := runHook(ctx, "BeforeSessionStart", func(ctx context.Context) error {
		if m.hooks.BeforeSessionStart == nil {
			return nil
		}

		return m.hooks.BeforeSessionStart(ctx)
	}); err != nil {
		logger.Error("Hook failed", zap.String(logg.Hook, "BeforeSessionStart"), zap.Error(err))

		return nil, err
	}

	// Whatever the before-start hook provisioned is released by the after-stop
	// hook, also when no session comes up.
	var sess *Session
	defer func() {
		if sess == nil {
			err = multierr.Append(err, m.afterStop(context.WithoutCancel(ctx)))
		}
	}()

	step.AddEvent("starting remote session")
	logger.Info("Starting session", zap.String(logg.URL, config.BaseURL))

	remote, startErr := m.client.Start(ctx, location, config.Browser, config.BaseURL)
	m.observer.SessionStarted(startErr)

	if startErr != nil {
		logger.Error("Failed to start session", zap.Error(startErr))

		return nil, startError(op, location, startErr)
	}

	sess = newSession(remote, config, m.logger, m.tracer, m.observer)
	m.setActive(sess)

	logger.Info("Session started", zap.String(logg.SessionID, sess.ID().String()), zap.String("remote_id", remote.ID()))

	// Release the started session if configuring it fails or a hook exits the
	// goroutine (t.FailNow) before SetUp returns.
	configured := false
	defer func() {
		if !configured {
			err = multierr.Append(err, m.teardown(ctx, sess))
		}
	}()

	if err := m.configure(ctx, sess); err != nil {
		logger.Error("Failed to configure session, releasing it", zap.Error(err))

		return nil, err
	}

	configured = true

	return sess, nil
}

func (m *Manager) configure(ctx context.Context, s *Session) error {
	const op = "configure"

	config := s.Config()

	if err := s.SetTimeout(ctx, config.Timeout); err != nil {
		return apperr.Wrap(op, apperr.CodeSessionStart, err, map[string]any{
			apperr.MetaReason:  "set_timeout_failed",
			apperr.MetaStage:   apperr.StageConfigure,
			apperr.MetaTimeout: config.Timeout.Milliseconds(),
		})
	}

	if auth := config.BasicAuth; auth != nil {
		if err := s.AddCustomRequestHeader(ctx, "Authorization", basicAuthHeader(auth)); err != nil {
			return apperr.Wrap(op, apperr.CodeSessionStart, err, map[string]any{
				apperr.MetaReason: "basic_auth_failed",
				apperr.MetaStage:  apperr.StageConfigure,
			})
		}
	}

	return runHook(ctx, "AfterSessionStart", func(ctx context.Context) error {
		if m.hooks.AfterSessionStart == nil {
			return nil
		}

		return m.hooks.AfterSessionStart(ctx, s)
	})
}

// TearDown releases s. The stop step is attempted regardless of hook
// failures and the after-stop hook runs even when stopping failed; all
// failures are combined into the returned error. Tearing down a session that
// is not started is a no-op.
func (m *Manager) TearDown(ctx context.Context, s *Session) (err error) {
	const op = "TearDown"

	if s == nil {
		return nil
	}

	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.SessionID, s.ID().String()))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	return m.teardown(ctx, s)
}

func (m *Manager) teardown(ctx context.Context, s *Session) (errs error) {
	const op = "teardown"
	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.SessionID, s.ID().String()))

	if !s.claimTeardown() {
		logger.Debug("Session already released", zap.String("state", string(s.State())))

		return nil
	}

	// Release must happen even when the caller's context is already done.
	ctx = context.WithoutCancel(ctx)

	// Stop and the after-stop hook run deferred so that a before-stop hook
	// calling t.FailNow cannot skip them.
	defer func() {
		errs = multierr.Append(errs, m.stop(ctx, s, logger))

		errs = multierr.Append(errs, m.afterStop(ctx))

		if errs != nil {
			logger.Warn("Session teardown finished with errors", zap.Error(errs))
		} else {
			logger.Info("Session stopped")
		}
	}()

	return runHook(ctx, "BeforeSessionStop", func(ctx context.Context) error {
		if m.hooks.BeforeSessionStop == nil {
			return nil
		}

		return m.hooks.BeforeSessionStop(ctx, s)
	})
}

func (m *Manager) stop(ctx context.Context, s *Session, logger *zap.Logger) error {
	const op = "stop"

	logger.Info("Stopping session")

	released, err := s.release(ctx)
	if released {
		m.observer.SessionStopped(err)
	}

	m.mu.Lock()
	if m.active == s {
		m.active = nil
	}
	m.mu.Unlock()

	if err != nil {
		logger.Error("Failed to stop session", zap.Error(err))

		return apperr.Wrap(op, apperr.CodeSessionStop, err, map[string]any{
			apperr.MetaReason: "stop_failed",
			apperr.MetaStage:  apperr.StageStop,
		})
	}

	return nil
}

// reserve claims the manager's session slot for one SetUp.
func (m *Manager) reserve(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.starting || (m.active != nil && m.active.State() == StateStarted) {
		return apperr.Wrap(op, apperr.CodeConfiguration, errors.New("manager already owns a started session"), map[string]any{
			apperr.MetaReason: "session_active",
			apperr.MetaStage:  apperr.StageValidation,
		})
	}

	m.starting = true

	return nil
}

func (m *Manager) unreserve() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.starting = false
}

func (m *Manager) setActive(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.active = s
}

func (m *Manager) afterStop(ctx context.Context) error {
	return runHook(ctx, "AfterSessionStop", func(ctx context.Context) error {
		if m.hooks.AfterSessionStop == nil {
			return nil
		}

		return m.hooks.AfterSessionStop(ctx)
	})
}

func runHook(ctx context.Context, name string, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperr.Wrap(name, apperr.CodeHook, fmt.Errorf("panic: %v", r), map[string]any{
				apperr.MetaHook:   name,
				apperr.MetaStage:  apperr.StageHook,
				apperr.MetaReason: "hook_panicked",
			})
		}
	}()

	if err := fn(ctx); err != nil {
		return apperr.Wrap(name, apperr.CodeHook, err, map[string]any{
			apperr.MetaHook:   name,
			apperr.MetaStage:  apperr.StageHook,
			apperr.MetaReason: "hook_failed",
		})
	}

	return nil
}

func startError(op string, location ServerLocation, err error) error {
	if apperr.Is(err, apperr.CodeSessionStart) {
		return err
	}

	return apperr.Wrap(op, apperr.CodeSessionStart, err, map[string]any{
		apperr.MetaReason: "start_failed",
		apperr.MetaStage:  apperr.StageStart,
		apperr.MetaHost:   location.Host,
		apperr.MetaPort:   location.Port,
	})
}

func basicAuthHeader(auth *BasicAuth) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(auth.Username+":"+auth.Password))
}
