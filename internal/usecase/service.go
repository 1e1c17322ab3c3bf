package usecase

import (
	"webui-harness/internal/config"
	"webui-harness/internal/ports"
	"webui-harness/internal/usecase/adapters"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	Steps     adapters.StepService
	Scenarios adapters.ScenarioService
	Sessions  adapters.SessionService
}

type Params struct {
	fx.In

	Logger   *zap.Logger
	Config   *config.Config
	Sessions ports.SessionManager
	Managers ports.SessionManagerFactory
}

func NewUsecase(params Params) *Service {
	factory := newServiceFactory(params)
	steps := factory.CreateStepService()

	return &Service{
		Steps:     steps,
		Scenarios: factory.CreateScenarioService(steps),
		Sessions:  factory.CreateSessionService(),
	}
}
