// Package seltest wires the session lifecycle into Go tests. Suite is a
// testify suite whose every test method runs inside its own remote session;
// Start does the same for a plain test function.
package seltest

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"webui-harness/pkg/logg"
	"webui-harness/pkg/session"
	"webui-harness/pkg/settings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type options struct {
	settings      *settings.Selenium
	location      *session.ServerLocation
	screenshotDir *string
	client        session.Client
	hooks         session.Hooks
	session       []session.ConfigOption
	logger        *zap.Logger
}

type Option func(*options)

// WithSettings replaces the SELENIUM_* settings read from the environment.
func WithSettings(sel *settings.Selenium) Option {
	return func(o *options) {
		o.settings = sel
	}
}

// WithLocation overrides the Selenium server the session is requested from.
func WithLocation(location session.ServerLocation) Option {
	return func(o *options) {
		o.location = &location
	}
}

// WithScreenshotDir sets where a failed test's screenshot goes. An empty dir
// disables failure screenshots.
func WithScreenshotDir(dir string) Option {
	return func(o *options) {
		o.screenshotDir = &dir
	}
}

// WithClient replaces the client selected by SELENIUM_DRIVER.
func WithClient(client session.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

func WithHooks(hooks session.Hooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithSessionOptions overrides the session configuration for this test only.
func WithSessionOptions(opts ...session.ConfigOption) Option {
	return func(o *options) {
		o.session = append(o.session, opts...)
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Start sets up a session for t and registers its teardown with t.Cleanup.
// A failed set up fails the test immediately.
func Start(t testing.TB, opts ...Option) *session.Session {
	t.Helper()

	h, err := newHarness(t, opts...)
	if err != nil {
		t.Fatalf("seltest: %v", err)
	}

	t.Cleanup(func() {
		h.tearDown(t)
	})

	if err := h.setUp(); err != nil {
		t.Fatalf("seltest: set up session: %v", err)
	}

	return h.session
}

type harness struct {
	location      session.ServerLocation
	config        session.SessionConfig
	screenshotDir string
	manager       *session.Manager
	session       *session.Session
	logger        *zap.Logger
}

func newHarness(t testing.TB, opts ...Option) (*harness, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = zaptest.NewLogger(t)
	}

	sel := o.settings
	if sel == nil {
		_ = godotenv.Load()

		loaded, err := settings.LoadSelenium()
		if err != nil {
			return nil, err
		}

		sel = loaded
	}

	if o.client == nil {
		client, err := sel.NewClient(o.logger)
		if err != nil {
			return nil, err
		}

		o.client = client
	}

	h := &harness{
		location:      sel.Location(),
		config:        sel.SessionConfig(o.session...),
		screenshotDir: sel.ScreenshotDir,
		manager: session.NewManager(session.Params{
			Client: o.client,
			Logger: o.logger,
			Hooks:  o.hooks,
		}),
		logger: o.logger.With(zap.String(logg.Scenario, t.Name())),
	}

	if o.location != nil {
		h.location = *o.location
	}

	if o.screenshotDir != nil {
		h.screenshotDir = *o.screenshotDir
	}

	return h, nil
}

func (h *harness) setUp() error {
	sess, err := h.manager.SetUp(context.Background(), h.location, h.config)
	if err != nil {
		return err
	}

	h.session = sess

	return nil
}

// tearDown releases the session. Teardown failures are reported with Errorf
// so they never hide the failure that ended the test body.
func (h *harness) tearDown(t testing.TB) {
	if h.session == nil {
		return
	}

	ctx := context.Background()

	if t.Failed() && h.screenshotDir != "" {
		path := filepath.Join(h.screenshotDir, screenshotName(t.Name()))

		if err := h.session.CaptureScreenshotToFile(ctx, path); err != nil {
			h.logger.Warn("Failed to capture failure screenshot", zap.Error(err))
		} else {
			t.Logf("seltest: screenshot saved to %s", path)
		}
	}

	if err := h.manager.TearDown(ctx, h.session); err != nil {
		t.Errorf("seltest: tear down session: %v", err)
	}

	h.session = nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func screenshotName(testName string) string {
	return unsafeName.ReplaceAllString(testName, "_") + ".png"
}
