package bootstrap

import (
	"context"
	"webui-harness/internal/config"
	"webui-harness/internal/console"
	"webui-harness/internal/usecase"
	"webui-harness/pkg/logg"
	"webui-harness/pkg/session"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func runConsole(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	consoleInterface *console.Interface,
	uc *usecase.Service,
	config *config.Config,
	logger *zap.Logger,
) {
	var sess *session.Session

	sel := config.SeleniumConfig

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting console interface...",
				zap.String(logg.Driver, sel.Driver),
				zap.String(logg.Browser, sel.Browser),
				zap.String(logg.Host, sel.Host),
				zap.Int(logg.Port, sel.Port),
			)

			var err error

			sess, err = uc.Sessions.SetUp(ctx, sel.Location(), sel.SessionConfig())
			if err != nil {
				logger.Error("Failed to set up session", zap.Error(err))

				return err
			}

			logger.Info("Session started", zap.String(logg.SessionID, sess.ID().String()))

			go func() {
				if err := consoleInterface.Start(sess); err != nil {
					logger.Error("Console interface error", zap.Error(err))
				}

				if err := shutdowner.Shutdown(); err != nil {
					logger.Error("Failed to request shutdown", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down console...")

			if err := consoleInterface.Stop(); err != nil {
				logger.Error("Failed to stop console", zap.Error(err))
			}

			if sess == nil {
				return nil
			}

			if err := uc.Sessions.TearDown(ctx, sess); err != nil {
				logger.Error("Failed to tear down session", zap.Error(err))

				return err
			}

			return nil
		},
	})
}
