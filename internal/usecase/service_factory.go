package usecase

import (
	"webui-harness/internal/ports"
	"webui-harness/internal/usecase/adapters"
)

type serviceFactory struct {
	deps Params
}

func newServiceFactory(deps Params) *serviceFactory {
	return &serviceFactory{
		deps: deps,
	}
}

func (f *serviceFactory) CreateStepService() *StepService {
	return NewStepService(StepServiceParams{
		Config: f.deps.Config,
		Logger: f.deps.Logger,
	})
}

func (f *serviceFactory) CreateScenarioService(steps ports.StepExecutor) adapters.ScenarioService {
	return NewScenarioService(ScenarioServiceParams{
		Config:   f.deps.Config,
		Logger:   f.deps.Logger,
		Steps:    steps,
		Managers: f.deps.Managers,
	})
}

func (f *serviceFactory) CreateSessionService() adapters.SessionService {
	return f.deps.Sessions
}
