package bootstrap

import (
	"webui-harness/internal/config"
	"webui-harness/pkg/apperr"

	"go.uber.org/zap"
)

func newLogger(config *config.Config) (*zap.Logger, error) {
	const op = "bootstrap.newLogger"

	zapConfig := zap.NewProductionConfig()
	if config.AppConfig.Debug {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.DisableStacktrace = true

	level, err := zap.ParseAtomicLevel(config.AppConfig.LogLevel)
	if err != nil {
		return nil, apperr.ConfigurationError(op, "LogLevel", err)
	}

	zapConfig.Level = level

	return zapConfig.Build(zap.Fields(zap.String("service", serviceName)))
}
