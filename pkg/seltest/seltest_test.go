package seltest_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"
	"webui-harness/pkg/seltest"
	"webui-harness/pkg/session"
	"webui-harness/pkg/session/mocks"
	"webui-harness/pkg/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

func testSettings() *settings.Selenium {
	return &settings.Selenium{
		Host:      "selenium.cosmo",
		Port:      4444,
		Browser:   "*chrome",
		Driver:    "webdriver",
		BaseURL:   "https://example.test/",
		TimeoutMS: 30000,
	}
}

func TestStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	remote := mocks.NewMockRemote(ctrl)
	remote.EXPECT().ID().Return("remote-1").AnyTimes()

	location := session.ServerLocation{Host: "selenium.cosmo", Port: 4444}

	gomock.InOrder(
		client.EXPECT().Start(gomock.Any(), location, "*chrome", "https://example.test/").Return(remote, nil),
		remote.EXPECT().SetTimeout(gomock.Any(), 5*time.Second).Return(nil),
		remote.EXPECT().Open(gomock.Any(), "/login").Return(nil),
		remote.EXPECT().Stop(gomock.Any()).Return(nil),
	)

	var stopped bool

	t.Run("body", func(t *testing.T) {
		s := seltest.Start(t,
			seltest.WithSettings(testSettings()),
			seltest.WithClient(client),
			seltest.WithSessionOptions(session.WithTimeout(5*time.Second)),
			seltest.WithHooks(session.Hooks{
				AfterSessionStop: func(context.Context) error {
					stopped = true
					return nil
				},
			}),
		)

		assert.Equal(t, session.StateStarted, s.State())
		require.NoError(t, s.Open(context.Background(), "/login"))
	})

	assert.True(t, stopped, "session must be released when the test ends")
}

type loginSuite struct {
	seltest.Suite

	remote  *mocks.MockRemote
	started int
}

func (s *loginSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	client := mocks.NewMockClient(ctrl)

	s.started = 0
	s.remote = mocks.NewMockRemote(ctrl)
	s.remote.EXPECT().ID().Return("remote-1").AnyTimes()

	client.EXPECT().Start(gomock.Any(), gomock.Any(), "*firefox", "https://login.example.test/").Return(s.remote, nil)
	s.remote.EXPECT().SetTimeout(gomock.Any(), 30*time.Second).Return(nil)
	s.remote.EXPECT().Stop(gomock.Any()).Return(nil)

	s.Client = client
	s.Options = []session.ConfigOption{
		session.WithBrowser("*firefox"),
		session.WithBaseURL("https://login.example.test/"),
	}
	s.Hooks = session.Hooks{
		AfterSessionStart: func(context.Context, *session.Session) error {
			s.started++
			return nil
		},
	}

	s.Suite.SetupTest()
}

func (s *loginSuite) TestTitle() {
	s.remote.EXPECT().GetTitle(gomock.Any()).Return("Sign in", nil)

	title, err := s.S().GetTitle(context.Background())
	s.Require().NoError(err)
	s.Equal("Sign in", title)
	s.Equal(1, s.started)
}

func (s *loginSuite) TestSessionPerTest() {
	s.Equal(session.StateStarted, s.S().State())
	s.Equal(1, s.started)
}

func TestSuite(t *testing.T) {
	t.Setenv("SELENIUM_SCREENSHOT_DIR", "")

	suite.Run(t, new(loginSuite))
}

// recordingTB stands in for the test of a body that fails. It records what
// the body and the teardown report, and runs the body like the testing
// package runs a test function.
type recordingTB struct {
	testing.TB

	mu       sync.Mutex
	failed   bool
	messages []string
	cleanups []func()
}

func (r *recordingTB) Fail() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failed = true
}

func (r *recordingTB) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.failed
}

func (r *recordingTB) FailNow() {
	r.Fail()
	runtime.Goexit()
}

func (r *recordingTB) Errorf(format string, args ...any) {
	r.mu.Lock()
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
	r.mu.Unlock()

	r.Fail()
}

func (r *recordingTB) Error(args ...any) {
	r.Errorf("%s", fmt.Sprint(args...))
}

func (r *recordingTB) Fatalf(format string, args ...any) {
	r.Errorf(format, args...)
	runtime.Goexit()
}

func (r *recordingTB) Fatal(args ...any) {
	r.Error(args...)
	runtime.Goexit()
}

func (r *recordingTB) Cleanup(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cleanups = append(r.cleanups, fn)
}

// run calls body on its own goroutine and then runs the registered cleanups
// in reverse order, whether body returned, exited or panicked.
func (r *recordingTB) run(body func(tb testing.TB)) (panicked any) {
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer func() {
			if panicked = recover(); panicked != nil {
				r.Fail()
			}
		}()

		body(r)
	}()

	<-done

	for i := len(r.cleanups) - 1; i >= 0; i-- {
		r.cleanups[i]()
	}

	return panicked
}

func TestStart_FailingBodyStopsSessionOnce(t *testing.T) {
	tests := []struct {
		name      string
		body      func(tb testing.TB)
		wantPanic any
	}{
		{name: "FailNow", body: func(tb testing.TB) { tb.FailNow() }},
		{name: "Fatal", body: func(tb testing.TB) { tb.Fatal("dashboard not reached") }},
		{name: "Fatalf", body: func(tb testing.TB) { tb.Fatalf("title = %q", "Error") }},
		{name: "panic", body: func(testing.TB) { panic("assignment to entry in nil map") }, wantPanic: "assignment to entry in nil map"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockClient(ctrl)
			remote := mocks.NewMockRemote(ctrl)
			remote.EXPECT().ID().Return("remote-1").AnyTimes()

			client.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(remote, nil).Times(1)
			remote.EXPECT().SetTimeout(gomock.Any(), gomock.Any()).Return(nil)
			remote.EXPECT().CaptureScreenshot(gomock.Any()).Return([]byte("png"), nil)
			remote.EXPECT().Stop(gomock.Any()).Return(nil).Times(1)

			dir := t.TempDir()
			released := 0
			reached := false

			tb := &recordingTB{TB: t}
			panicked := tb.run(func(tb testing.TB) {
				seltest.Start(tb,
					seltest.WithSettings(testSettings()),
					seltest.WithClient(client),
					seltest.WithScreenshotDir(dir),
					seltest.WithHooks(session.Hooks{
						AfterSessionStop: func(context.Context) error {
							released++
							return nil
						},
					}),
				)

				tt.body(tb)
				reached = true
			})

			assert.Equal(t, tt.wantPanic, panicked)
			assert.False(t, reached)
			assert.True(t, tb.Failed())
			assert.Equal(t, 1, released)

			for _, msg := range tb.messages {
				assert.NotContains(t, msg, "tear down session")
			}

			screenshots, err := filepath.Glob(filepath.Join(dir, "*.png"))
			require.NoError(t, err)
			assert.Len(t, screenshots, 1)
		})
	}
}

func TestStart_TeardownErrorKeepsBodyFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	remote := mocks.NewMockRemote(ctrl)
	remote.EXPECT().ID().Return("remote-1").AnyTimes()

	grid := session.ServerLocation{Host: "grid.internal", Port: 5555}

	client.EXPECT().Start(gomock.Any(), grid, "*chrome", "https://example.test/").Return(remote, nil)
	remote.EXPECT().SetTimeout(gomock.Any(), gomock.Any()).Return(nil)
	remote.EXPECT().Stop(gomock.Any()).Return(errors.New("invalid session id")).Times(1)

	tb := &recordingTB{TB: t}
	tb.run(func(tb testing.TB) {
		seltest.Start(tb,
			seltest.WithSettings(testSettings()),
			seltest.WithLocation(grid),
			seltest.WithClient(client),
			seltest.WithScreenshotDir(""),
		)

		tb.Errorf("title = %q, want %q", "Error", "Dashboard")
	})

	assert.True(t, tb.Failed())
	require.Len(t, tb.messages, 2)
	assert.Equal(t, `title = "Error", want "Dashboard"`, tb.messages[0])
	assert.Contains(t, tb.messages[1], "tear down session")
	assert.Contains(t, tb.messages[1], "invalid session id")
}

func TestStart_SetUpFailureFailsTest(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().
		Start(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("dial tcp: connection refused"))

	reached := false

	tb := &recordingTB{TB: t}
	tb.run(func(tb testing.TB) {
		seltest.Start(tb, seltest.WithSettings(testSettings()), seltest.WithClient(client))
		reached = true
	})

	assert.False(t, reached)
	assert.True(t, tb.Failed())
	require.Len(t, tb.messages, 1)
	assert.Contains(t, tb.messages[0], "set up session")
}
