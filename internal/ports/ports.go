package ports

import (
	"context"
	"webui-harness/internal/entity"
	"webui-harness/pkg/session"
)

// SessionManager is satisfied by *session.Manager.
type SessionManager interface {
	SetUp(ctx context.Context, location session.ServerLocation, config session.SessionConfig) (*session.Session, error)
	TearDown(ctx context.Context, s *session.Session) error
}

// SessionManagerFactory returns a manager with its own active-session slot, so
// that scenarios running in parallel do not share one.
type SessionManagerFactory func(hooks session.Hooks) SessionManager

type StepExecutor interface {
	Execute(ctx context.Context, s *session.Session, step entity.Step) (result string, err error)
}

type ScenarioRunner interface {
	Run(ctx context.Context, scenario entity.Scenario) (*entity.Run, error)
	RunAll(ctx context.Context, scenarios []entity.Scenario, parallel int) ([]*entity.Run, error)
}
