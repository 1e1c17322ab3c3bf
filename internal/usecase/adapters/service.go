package adapters

import (
	"context"
	"webui-harness/internal/entity"
	"webui-harness/pkg/session"
)

type StepService interface {
	Execute(ctx context.Context, s *session.Session, step entity.Step) (string, error)
	Describe(step entity.Step) string
}

type ScenarioService interface {
	Run(ctx context.Context, scenario entity.Scenario) (*entity.Run, error)
	RunAll(ctx context.Context, scenarios []entity.Scenario, parallel int) ([]*entity.Run, error)
}

type SessionService interface {
	SetUp(ctx context.Context, location session.ServerLocation, config session.SessionConfig) (*session.Session, error)
	TearDown(ctx context.Context, s *session.Session) error
}
