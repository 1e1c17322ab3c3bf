package session

import (
	"context"
	"fmt"
	"sync"
	"time"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/logg"
	"webui-harness/pkg/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const sessionName = "Session"

// Session is a live remote automation session owned by the Manager that
// started it. Commands are forwarded to the remote unchanged and run one at a
// time; once the session is stopped every command fails with a session_closed
// error.
type Session struct {
	id       uuid.UUID
	remote   Remote
	logger   *zap.Logger
	tracer   trace.Tracer
	observer Observer

	mu          sync.Mutex
	state       State
	config      SessionConfig
	tearingDown bool
}

func newSession(remote Remote, config SessionConfig, logger *zap.Logger, tracer trace.Tracer, observer Observer) *Session {
	id := uuid.New()

	return &Session{
		id:       id,
		remote:   remote,
		config:   config,
		logger:   logger.With(zap.String(logg.Layer, sessionName), zap.String(logg.SessionID, id.String())),
		tracer:   tracer,
		observer: observer,
		state:    StateStarted,
	}
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) RemoteID() string {
	return s.remote.ID()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Session) Config() SessionConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.config
}

func (s *Session) Timeout() time.Duration {
	return s.Config().Timeout
}

func call[T any](ctx context.Context, s *Session, op string, attrs []attribute.KeyValue, fn func(context.Context, Remote) (T, error)) (result T, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.logger.With(zap.String(logg.Command, op))

	ctx, step := tracing.StartSpan(ctx, s.tracer, logger, op, attrs...)
	defer func() {
		s.observer.CommandDone(op, step.Elapsed(), err)
		step.End(err)
	}()

	if s.state != StateStarted {
		return result, apperr.Wrap(op, apperr.CodeSessionClosed, fmt.Errorf("session %s is %s", s.id, s.state), map[string]any{
			apperr.MetaReason:  "session_not_started",
			apperr.MetaStage:   apperr.StageCommand,
			apperr.MetaCommand: op,
		})
	}

	return fn(ctx, s.remote)
}

func exec(ctx context.Context, s *Session, op string, attrs []attribute.KeyValue, fn func(context.Context, Remote) error) error {
	_, err := call(ctx, s, op, attrs, func(ctx context.Context, r Remote) (struct{}, error) {
		return struct{}{}, fn(ctx, r)
	})

	return err
}

func locatorAttr(locator string) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.String(logg.Locator, locator)}
}

// claimTeardown reports whether the caller is the first to tear s down.
func (s *Session) claimTeardown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStarted || s.tearingDown {
		return false
	}

	s.tearingDown = true

	return true
}

// release transitions a started session to stopped and stops the remote. It
// reports whether this call performed the transition, so a session is never
// stopped twice.
func (s *Session) release(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStarted {
		return false, nil
	}

	s.state = StateStopped

	return true, s.remote.Stop(ctx)
}

func (s *Session) Open(ctx context.Context, url string) error {
	return exec(ctx, s, "Open", []attribute.KeyValue{attribute.String(logg.URL, url)}, func(ctx context.Context, r Remote) error {
		return r.Open(ctx, url)
	})
}

func (s *Session) GoBack(ctx context.Context) error {
	return exec(ctx, s, "GoBack", nil, func(ctx context.Context, r Remote) error {
		return r.GoBack(ctx)
	})
}

func (s *Session) Refresh(ctx context.Context) error {
	return exec(ctx, s, "Refresh", nil, func(ctx context.Context, r Remote) error {
		return r.Refresh(ctx)
	})
}

func (s *Session) GetLocation(ctx context.Context) (string, error) {
	return call(ctx, s, "GetLocation", nil, func(ctx context.Context, r Remote) (string, error) {
		return r.GetLocation(ctx)
	})
}

func (s *Session) GetTitle(ctx context.Context) (string, error) {
	return call(ctx, s, "GetTitle", nil, func(ctx context.Context, r Remote) (string, error) {
		return r.GetTitle(ctx)
	})
}

func (s *Session) GetHTMLSource(ctx context.Context) (string, error) {
	return call(ctx, s, "GetHTMLSource", nil, func(ctx context.Context, r Remote) (string, error) {
		return r.GetHTMLSource(ctx)
	})
}

func (s *Session) Click(ctx context.Context, locator string) error {
	return exec(ctx, s, "Click", locatorAttr(locator), func(ctx context.Context, r Remote) error {
		return r.Click(ctx, locator)
	})
}

func (s *Session) DoubleClick(ctx context.Context, locator string) error {
	return exec(ctx, s, "DoubleClick", locatorAttr(locator), func(ctx context.Context, r Remote) error {
		return r.DoubleClick(ctx, locator)
	})
}

func (s *Session) Type(ctx context.Context, locator, value string) error {
	return exec(ctx, s, "Type", locatorAttr(locator), func(ctx context.Context, r Remote) error {
		return r.Type(ctx, locator, value)
	})
}

func (s *Session) Select(ctx context.Context, selectLocator, optionLocator string) error {
	attrs := append(locatorAttr(selectLocator), attribute.String("option", optionLocator))

	return exec(ctx, s, "Select", attrs, func(ctx context.Context, r Remote) error {
		return r.Select(ctx, selectLocator, optionLocator)
	})
}

func (s *Session) Check(ctx context.Context, locator string) error {
	return exec(ctx, s, "Check", locatorAttr(locator), func(ctx context.Context, r Remote) error {
		return r.Check(ctx, locator)
	})
}

func (s *Session) Uncheck(ctx context.Context, locator string) error {
	return exec(ctx, s, "Uncheck", locatorAttr(locator), func(ctx context.Context, r Remote) error {
		return r.Uncheck(ctx, locator)
	})
}

func (s *Session) Submit(ctx context.Context, formLocator string) error {
	return exec(ctx, s, "Submit", locatorAttr(formLocator), func(ctx context.Context, r Remote) error {
		return r.Submit(ctx, formLocator)
	})
}

func (s *Session) DragAndDropToObject(ctx context.Context, sourceLocator, targetLocator string) error {
	attrs := append(locatorAttr(sourceLocator), attribute.String("target", targetLocator))

	return exec(ctx, s, "DragAndDropToObject", attrs, func(ctx context.Context, r Remote) error {
		return r.DragAndDropToObject(ctx, sourceLocator, targetLocator)
	})
}

func (s *Session) KeyPress(ctx context.Context, locator, key string) error {
	attrs := append(locatorAttr(locator), attribute.String("key", key))

	return exec(ctx, s, "KeyPress", attrs, func(ctx context.Context, r Remote) error {
		return r.KeyPress(ctx, locator, key)
	})
}

func (s *Session) IsElementPresent(ctx context.Context, locator string) (bool, error) {
	return call(ctx, s, "IsElementPresent", locatorAttr(locator), func(ctx context.Context, r Remote) (bool, error) {
		return r.IsElementPresent(ctx, locator)
	})
}

func (s *Session) IsVisible(ctx context.Context, locator string) (bool, error) {
	return call(ctx, s, "IsVisible", locatorAttr(locator), func(ctx context.Context, r Remote) (bool, error) {
		return r.IsVisible(ctx, locator)
	})
}

func (s *Session) IsChecked(ctx context.Context, locator string) (bool, error) {
	return call(ctx, s, "IsChecked", locatorAttr(locator), func(ctx context.Context, r Remote) (bool, error) {
		return r.IsChecked(ctx, locator)
	})
}

func (s *Session) IsTextPresent(ctx context.Context, text string) (bool, error) {
	return call(ctx, s, "IsTextPresent", nil, func(ctx context.Context, r Remote) (bool, error) {
		return r.IsTextPresent(ctx, text)
	})
}

func (s *Session) GetText(ctx context.Context, locator string) (string, error) {
	return call(ctx, s, "GetText", locatorAttr(locator), func(ctx context.Context, r Remote) (string, error) {
		return r.GetText(ctx, locator)
	})
}

func (s *Session) GetValue(ctx context.Context, locator string) (string, error) {
	return call(ctx, s, "GetValue", locatorAttr(locator), func(ctx context.Context, r Remote) (string, error) {
		return r.GetValue(ctx, locator)
	})
}

func (s *Session) GetAttribute(ctx context.Context, locator, name string) (string, error) {
	attrs := append(locatorAttr(locator), attribute.String("attribute", name))

	return call(ctx, s, "GetAttribute", attrs, func(ctx context.Context, r Remote) (string, error) {
		return r.GetAttribute(ctx, locator, name)
	})
}

func (s *Session) GetSelectedLabel(ctx context.Context, selectLocator string) (string, error) {
	return call(ctx, s, "GetSelectedLabel", locatorAttr(selectLocator), func(ctx context.Context, r Remote) (string, error) {
		return r.GetSelectedLabel(ctx, selectLocator)
	})
}

func (s *Session) SelectWindow(ctx context.Context, name string) error {
	return exec(ctx, s, "SelectWindow", []attribute.KeyValue{attribute.String("window", name)}, func(ctx context.Context, r Remote) error {
		return r.SelectWindow(ctx, name)
	})
}

func (s *Session) SelectFrame(ctx context.Context, locator string) error {
	return exec(ctx, s, "SelectFrame", locatorAttr(locator), func(ctx context.Context, r Remote) error {
		return r.SelectFrame(ctx, locator)
	})
}

func (s *Session) CreateCookie(ctx context.Context, cookie Cookie) error {
	return exec(ctx, s, "CreateCookie", []attribute.KeyValue{attribute.String("cookie", cookie.Name)}, func(ctx context.Context, r Remote) error {
		return r.CreateCookie(ctx, cookie)
	})
}

func (s *Session) GetCookieByName(ctx context.Context, name string) (*Cookie, error) {
	return call(ctx, s, "GetCookieByName", []attribute.KeyValue{attribute.String("cookie", name)}, func(ctx context.Context, r Remote) (*Cookie, error) {
		return r.GetCookieByName(ctx, name)
	})
}

func (s *Session) DeleteCookie(ctx context.Context, name string) error {
	return exec(ctx, s, "DeleteCookie", []attribute.KeyValue{attribute.String("cookie", name)}, func(ctx context.Context, r Remote) error {
		return r.DeleteCookie(ctx, name)
	})
}

func (s *Session) DeleteAllVisibleCookies(ctx context.Context) error {
	return exec(ctx, s, "DeleteAllVisibleCookies", nil, func(ctx context.Context, r Remote) error {
		return r.DeleteAllVisibleCookies(ctx)
	})
}

func (s *Session) GetEval(ctx context.Context, script string) (any, error) {
	return call(ctx, s, "GetEval", nil, func(ctx context.Context, r Remote) (any, error) {
		return r.GetEval(ctx, script)
	})
}

func (s *Session) CaptureScreenshot(ctx context.Context) ([]byte, error) {
	return call(ctx, s, "CaptureScreenshot", nil, func(ctx context.Context, r Remote) ([]byte, error) {
		return r.CaptureScreenshot(ctx)
	})
}

func (s *Session) AddCustomRequestHeader(ctx context.Context, name, value string) error {
	return exec(ctx, s, "AddCustomRequestHeader", []attribute.KeyValue{attribute.String("header", name)}, func(ctx context.Context, r Remote) error {
		return r.AddCustomRequestHeader(ctx, name, value)
	})
}

// SetTimeout changes the remote timeout and, on success, the default used by
// the page-load waits of this session.
func (s *Session) SetTimeout(ctx context.Context, timeout time.Duration) error {
	err := exec(ctx, s, "SetTimeout", []attribute.KeyValue{attribute.Int64(apperr.MetaTimeout, timeout.Milliseconds())}, func(ctx context.Context, r Remote) error {
		return r.SetTimeout(ctx, timeout)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.config.Timeout = timeout
	s.mu.Unlock()

	return nil
}
