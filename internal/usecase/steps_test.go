package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
	"webui-harness/internal/config"
	"webui-harness/internal/entity"
	"webui-harness/internal/ports"
	"webui-harness/internal/usecase"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/session"
	"webui-harness/pkg/session/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type harness struct {
	ctrl     *gomock.Controller
	conf     *config.Config
	logger   *zap.Logger
	client   *mocks.MockClient
	managers ports.SessionManagerFactory
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	logger := zaptest.NewLogger(t)

	return &harness{
		ctrl: ctrl,
		conf: &config.Config{
			AppConfig: &config.AppConfig{LogLevel: "debug"},
			SeleniumConfig: &config.SeleniumConfig{
				Host:          "selenium.cosmo",
				Port:          4444,
				Browser:       "*chrome",
				Driver:        "webdriver",
				BaseURL:       "https://example.test/",
				TimeoutMS:     30000,
				ScreenshotDir: t.TempDir(),
			},
		},
		logger: logger,
		client: client,
		managers: func(hooks session.Hooks) ports.SessionManager {
			return session.NewManager(session.Params{Client: client, Logger: logger, Hooks: hooks})
		},
	}
}

func (h *harness) newRemote() *mocks.MockRemote {
	remote := mocks.NewMockRemote(h.ctrl)
	remote.EXPECT().ID().Return("remote-1").AnyTimes()

	return remote
}

// startSession sets up a session over a fresh mock remote and releases it when
// the test ends.
func (h *harness) startSession(t *testing.T) (*mocks.MockRemote, *session.Session) {
	t.Helper()

	remote := h.newRemote()
	h.client.EXPECT().Start(gomock.Any(), gomock.Any(), "*chrome", "https://example.test/").Return(remote, nil)
	remote.EXPECT().SetTimeout(gomock.Any(), 30*time.Second).Return(nil)

	manager := h.managers(session.Hooks{})
	sel := h.conf.SeleniumConfig

	sess, err := manager.SetUp(context.Background(), sel.Location(), sel.SessionConfig())
	require.NoError(t, err)

	t.Cleanup(func() {
		remote.EXPECT().Stop(gomock.Any()).Return(nil)
		assert.NoError(t, manager.TearDown(context.Background(), sess))
	})

	return remote, sess
}

func (h *harness) steps() *usecase.StepService {
	return usecase.NewStepService(usecase.StepServiceParams{Config: h.conf, Logger: h.logger})
}

func step(action entity.ActionType, args ...string) entity.Step {
	return entity.Step{Action: action, Args: args}
}

func TestStepService_Execute(t *testing.T) {
	anyCtx := gomock.Any()

	tests := []struct {
		name   string
		step   entity.Step
		expect func(r *mocks.MockRemote)
		want   string
	}{
		{
			name:   "open",
			step:   step(entity.ActionTypeOpen, "/login"),
			expect: func(r *mocks.MockRemote) { r.EXPECT().Open(anyCtx, "/login").Return(nil) },
			want:   "Opened /login",
		},
		{
			name:   "type",
			step:   step(entity.ActionTypeType, "id=user", "alice"),
			expect: func(r *mocks.MockRemote) { r.EXPECT().Type(anyCtx, "id=user", "alice").Return(nil) },
			want:   "Typed",
		},
		{
			name: "click and wait",
			step: step(entity.ActionTypeClickAndWait, "link=Next"),
			expect: func(r *mocks.MockRemote) {
				gomock.InOrder(
					r.EXPECT().Click(anyCtx, "link=Next").Return(nil),
					r.EXPECT().WaitForPageToLoad(anyCtx, 30*time.Second).Return(nil),
				)
			},
			want: "Clicked and page loaded",
		},
		{
			name:   "wait with explicit timeout",
			step:   step(entity.ActionTypeWaitForPageToLoad, "2500"),
			expect: func(r *mocks.MockRemote) { r.EXPECT().WaitForPageToLoad(anyCtx, 2500*time.Millisecond).Return(nil) },
			want:   "Page loaded",
		},
		{
			name: "create cookie",
			step: step(entity.ActionTypeCreateCookie, "theme", "dark"),
			expect: func(r *mocks.MockRemote) {
				r.EXPECT().CreateCookie(anyCtx, session.Cookie{Name: "theme", Value: "dark"}).Return(nil)
			},
			want: "Cookie created",
		},
		{
			name:   "eval",
			step:   step(entity.ActionTypeEval, "return 6*7"),
			expect: func(r *mocks.MockRemote) { r.EXPECT().GetEval(anyCtx, "return 6*7").Return(42, nil) },
			want:   "42",
		},
		{
			name:   "assert title",
			step:   step(entity.ActionTypeAssertTitle, "Dashboard"),
			expect: func(r *mocks.MockRemote) { r.EXPECT().GetTitle(anyCtx).Return("Dashboard", nil) },
			want:   `Title is "Dashboard"`,
		},
		{
			name:   "assert text on page",
			step:   step(entity.ActionTypeAssertText, "Welcome back"),
			expect: func(r *mocks.MockRemote) { r.EXPECT().IsTextPresent(anyCtx, "Welcome back").Return(true, nil) },
			want:   "OK",
		},
		{
			name:   "assert element text",
			step:   step(entity.ActionTypeAssertText, "id=greeting", "Hi alice"),
			expect: func(r *mocks.MockRemote) { r.EXPECT().GetText(anyCtx, "id=greeting").Return("Hi alice", nil) },
			want:   `Text of id=greeting is "Hi alice"`,
		},
		{
			name: "assert location",
			step: step(entity.ActionTypeAssertLocation, "/home"),
			expect: func(r *mocks.MockRemote) {
				r.EXPECT().GetLocation(anyCtx).Return("https://example.test/home", nil)
			},
			want: "Location is https://example.test/home",
		},
		{
			name:   "assert not present",
			step:   step(entity.ActionTypeAssertNotPresent, "id=error"),
			expect: func(r *mocks.MockRemote) { r.EXPECT().IsElementPresent(anyCtx, "id=error").Return(false, nil) },
			want:   "OK",
		},
		{
			name: "assert cookie",
			step: step(entity.ActionTypeAssertCookie, "theme", "dark"),
			expect: func(r *mocks.MockRemote) {
				r.EXPECT().GetCookieByName(anyCtx, "theme").Return(&session.Cookie{Name: "theme", Value: "dark"}, nil)
			},
			want: `Cookie theme is "dark"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			remote, sess := h.startSession(t)
			tt.expect(remote)

			got, err := h.steps().Execute(context.Background(), sess, tt.step)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStepService_ExecuteFailures(t *testing.T) {
	t.Run("assertion mismatch", func(t *testing.T) {
		h := newHarness(t)
		remote, sess := h.startSession(t)
		remote.EXPECT().GetTitle(gomock.Any()).Return("Login", nil)

		_, err := h.steps().Execute(context.Background(), sess, step(entity.ActionTypeAssertTitle, "Dashboard"))
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.CodeAssertion))
		assert.Contains(t, err.Error(), `title is "Login", want "Dashboard"`)
	})

	t.Run("missing cookie", func(t *testing.T) {
		h := newHarness(t)
		remote, sess := h.startSession(t)
		remote.EXPECT().GetCookieByName(gomock.Any(), "sid").Return(nil, nil)

		_, err := h.steps().Execute(context.Background(), sess, step(entity.ActionTypeAssertCookie, "sid"))
		assert.True(t, apperr.Is(err, apperr.CodeAssertion))
	})

	t.Run("command error is kept", func(t *testing.T) {
		h := newHarness(t)
		remote, sess := h.startSession(t)
		remote.EXPECT().Click(gomock.Any(), "id=missing").
			Return(apperr.CommandError("Click", errors.New("no such element"), "id=missing"))

		_, err := h.steps().Execute(context.Background(), sess, step(entity.ActionTypeClick, "id=missing"))
		assert.True(t, apperr.IsCommandError(err))
		assert.False(t, apperr.Is(err, apperr.CodeAssertion))
	})

	t.Run("invalid steps never reach the remote", func(t *testing.T) {
		h := newHarness(t)
		_, sess := h.startSession(t)

		for _, st := range []entity.Step{
			step(entity.ActionTypeType, "id=user"),
			step("hover", "id=menu"),
			step(entity.ActionTypeWaitForPageToLoad, "soon"),
		} {
			_, err := h.steps().Execute(context.Background(), sess, st)
			assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument), "step %v", st)
		}
	})

	t.Run("no session", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.steps().Execute(context.Background(), nil, step(entity.ActionTypeRefresh))
		assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
	})
}

func TestStepService_Screenshot(t *testing.T) {
	h := newHarness(t)
	remote, sess := h.startSession(t)
	remote.EXPECT().CaptureScreenshot(gomock.Any()).Return([]byte("png"), nil)

	path, err := h.steps().Execute(context.Background(), sess, step(entity.ActionTypeScreenshot, "home.png"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(h.conf.SeleniumConfig.ScreenshotDir, "home.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
}

func TestStepService_Describe(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, `type id=user "Alice Smith"`, h.steps().Describe(step(entity.ActionTypeType, "id=user", "Alice Smith")))
	assert.Equal(t, `select_window ""`, h.steps().Describe(step(entity.ActionTypeSelectWindow, "")))
	assert.Equal(t, "refresh", h.steps().Describe(step(entity.ActionTypeRefresh)))
}
