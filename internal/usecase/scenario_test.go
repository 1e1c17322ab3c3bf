package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
	"webui-harness/internal/entity"
	"webui-harness/internal/usecase"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func (h *harness) scenarios() *usecase.ScenarioService {
	return usecase.NewScenarioService(usecase.ScenarioServiceParams{
		Config:   h.conf,
		Logger:   h.logger,
		Steps:    h.steps(),
		Managers: h.managers,
	})
}

var login = entity.Scenario{
	Name:    "login",
	Browser: "*firefox",
	Timeout: 5 * time.Second,
	Steps: []entity.Step{
		{Action: entity.ActionTypeOpen, Args: []string{"/login"}, Line: 3},
		{Action: entity.ActionTypeType, Args: []string{"id=user", "alice"}, Line: 4},
		{Action: entity.ActionTypeSubmitAndWait, Args: []string{"id=login-form"}, Line: 5},
		{Action: entity.ActionTypeAssertTitle, Args: []string{"Dashboard"}, Line: 6},
	},
}

func TestScenarioService_RunPasses(t *testing.T) {
	h := newHarness(t)
	remote := h.newRemote()
	anyCtx := gomock.Any()

	gomock.InOrder(
		h.client.EXPECT().Start(anyCtx, gomock.Any(), "*firefox", "https://example.test/").Return(remote, nil),
		remote.EXPECT().SetTimeout(anyCtx, 5*time.Second).Return(nil),
		remote.EXPECT().Open(anyCtx, "/login").Return(nil),
		remote.EXPECT().Type(anyCtx, "id=user", "alice").Return(nil),
		remote.EXPECT().Submit(anyCtx, "id=login-form").Return(nil),
		remote.EXPECT().WaitForPageToLoad(anyCtx, 5*time.Second).Return(nil),
		remote.EXPECT().GetTitle(anyCtx).Return("Dashboard", nil),
		remote.EXPECT().Stop(anyCtx).Return(nil),
	)

	run, err := h.scenarios().Run(context.Background(), login)
	require.NoError(t, err)

	assert.Equal(t, entity.RunStatusPassed, run.Status)
	assert.Equal(t, "login", run.Scenario)
	assert.NotEmpty(t, run.SessionID)
	require.NotNil(t, run.CompletedAt)
	require.Len(t, run.Steps, 4)

	for _, rec := range run.Steps {
		assert.True(t, rec.Success, rec.Description)
	}

	assert.Equal(t, "submit_and_wait id=login-form", run.Steps[2].Description)
	assert.Equal(t, `Title is "Dashboard"`, run.Steps[3].Result)
}

func TestScenarioService_RunStopsAtFirstFailure(t *testing.T) {
	h := newHarness(t)
	remote := h.newRemote()
	anyCtx := gomock.Any()

	gomock.InOrder(
		h.client.EXPECT().Start(anyCtx, gomock.Any(), "*firefox", "https://example.test/").Return(remote, nil),
		remote.EXPECT().SetTimeout(anyCtx, 5*time.Second).Return(nil),
		remote.EXPECT().Open(anyCtx, "/login").Return(nil),
		remote.EXPECT().Type(anyCtx, "id=user", "alice").
			Return(apperr.CommandError("Type", errors.New("element not interactable"), "id=user")),
		remote.EXPECT().CaptureScreenshot(anyCtx).Return([]byte("png"), nil),
		remote.EXPECT().Stop(anyCtx).Return(nil),
	)

	run, err := h.scenarios().Run(context.Background(), login)
	require.Error(t, err)
	assert.True(t, apperr.IsCommandError(err))
	assert.Equal(t, "step_failed", apperr.Reason(err))

	assert.Equal(t, entity.RunStatusFailed, run.Status)
	assert.Contains(t, run.Error, "element not interactable")
	require.Len(t, run.Steps, 2)

	failed, ok := run.Failed()
	require.True(t, ok)
	assert.Equal(t, 4, failed.Line)
	assert.FileExists(t, failed.Screenshot)
}

func TestScenarioService_RunSetUpFailure(t *testing.T) {
	h := newHarness(t)
	h.client.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("dial tcp: connection refused"))

	run, err := h.scenarios().Run(context.Background(), login)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeSessionStart))
	assert.Equal(t, entity.RunStatusFailed, run.Status)
	assert.Empty(t, run.Steps)
	assert.Empty(t, run.SessionID)
}

func TestScenarioService_RunTearDownFailure(t *testing.T) {
	h := newHarness(t)
	remote := h.newRemote()

	h.client.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(remote, nil)
	remote.EXPECT().SetTimeout(gomock.Any(), gomock.Any()).Return(nil)
	remote.EXPECT().Refresh(gomock.Any()).Return(nil)
	remote.EXPECT().Stop(gomock.Any()).Return(errors.New("session already gone"))

	run, err := h.scenarios().Run(context.Background(), entity.Scenario{
		Name:  "refresh",
		Steps: []entity.Step{{Action: entity.ActionTypeRefresh}},
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeSessionStop))
	assert.Equal(t, entity.RunStatusFailed, run.Status)
	require.Len(t, run.Steps, 1)
	assert.True(t, run.Steps[0].Success)
}

func TestScenarioService_RunAll(t *testing.T) {
	h := newHarness(t)
	h.conf.SeleniumConfig.ScreenshotDir = ""

	var started atomic.Int32

	h.client.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(3).
		DoAndReturn(func(context.Context, session.ServerLocation, string, string) (session.Remote, error) {
			started.Add(1)

			remote := h.newRemote()
			remote.EXPECT().SetTimeout(gomock.Any(), gomock.Any()).Return(nil)
			remote.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil)
			remote.EXPECT().GetTitle(gomock.Any()).Return("Home", nil).MaxTimes(1)
			remote.EXPECT().Stop(gomock.Any()).Return(nil)

			return remote, nil
		})

	scenario := func(name, title string) entity.Scenario {
		return entity.Scenario{
			Name: name,
			Steps: []entity.Step{
				{Action: entity.ActionTypeOpen, Args: []string{"/"}},
				{Action: entity.ActionTypeAssertTitle, Args: []string{title}},
			},
		}
	}

	runs, err := h.scenarios().RunAll(context.Background(), []entity.Scenario{
		scenario("first", "Home"),
		scenario("second", "Away"),
		scenario("third", "Home"),
	}, 2)

	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeAssertion))
	assert.EqualValues(t, 3, started.Load())

	require.Len(t, runs, 3)
	assert.Equal(t, "first", runs[0].Scenario)
	assert.Equal(t, entity.RunStatusPassed, runs[0].Status)
	assert.Equal(t, entity.RunStatusFailed, runs[1].Status)
	assert.Equal(t, entity.RunStatusPassed, runs[2].Status)
}
